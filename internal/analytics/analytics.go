// Package analytics derives read-only talent-market statistics from a
// finalized CompanyJobSet. Analyze is referentially transparent: the
// same job set always yields an identical Summary, so callers
// recompute on demand instead of caching.
package analytics

import (
	"fmt"
	"sort"

	"talentai-engine/internal/domain"
)

// DefaultTopN bounds the highest-paid ranking.
const DefaultTopN = 10

// histogram bucket bounds in absolute dollars; the last bucket is
// open-ended.
var bucketBounds = []int{0, 50_000, 100_000, 150_000, 200_000, 250_000}

type AvgSalary struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type DeptSalary struct {
	Department string `json:"department"`
	Average    int    `json:"average"`
	Count      int    `json:"count"`
}

type RankedJob struct {
	Title      string `json:"title"`
	Department string `json:"department"`
	URL        string `json:"url"`
	Min        int    `json:"min"`
	Max        int    `json:"max"`
}

type Summary struct {
	TotalJobs       int            `json:"total_jobs"`
	Departments     map[string]int `json:"departments"`
	Locations       map[string]int `json:"locations"`
	Seniority       map[string]int `json:"seniority_levels"`
	WorkArrangement map[string]int `json:"work_arrangement"`

	WithSalary     int       `json:"with_salary"`
	WithoutSalary  int       `json:"without_salary"`
	DisclosureRate float64   `json:"disclosure_rate"`
	AvgSalary      *AvgSalary `json:"avg_salary,omitempty"`

	SalaryHistogram []Bucket       `json:"salary_histogram"`
	AvgSalaryByDept map[string]int `json:"avg_salary_by_dept"`
	TopDepartments  []DeptSalary   `json:"top_departments"`
	TopPaying       []RankedJob    `json:"top_paying_jobs"`
}

// Analyze never fails: an empty set yields zeroed fields, not an
// error. Postings without salary feed the counts and the disclosure
// denominator but are excluded from every salary statistic.
func Analyze(set *domain.CompanyJobSet) Summary {
	return AnalyzeTopN(set, DefaultTopN)
}

func AnalyzeTopN(set *domain.CompanyJobSet, topN int) Summary {
	if topN <= 0 {
		topN = DefaultTopN
	}

	s := Summary{
		Departments:     map[string]int{},
		Locations:       map[string]int{},
		Seniority:       map[string]int{},
		WorkArrangement: map[string]int{},
		AvgSalaryByDept: map[string]int{},
		SalaryHistogram: emptyHistogram(),
	}
	if set == nil {
		return s
	}
	s.TotalJobs = len(set.Jobs)

	var sumMin, sumMax int
	deptSums := map[string]int{}
	deptCounts := map[string]int{}
	var deptOrder []string

	for _, j := range set.Jobs {
		if _, seen := s.Departments[j.Department]; !seen {
			deptOrder = append(deptOrder, j.Department)
		}
		s.Departments[j.Department]++
		s.Locations[j.Location]++
		s.Seniority[string(j.Seniority)]++
		s.WorkArrangement[string(j.Work)]++

		if j.Salary == nil {
			s.WithoutSalary++
			continue
		}
		s.WithSalary++
		sumMin += j.Salary.Min
		sumMax += j.Salary.Max

		s.SalaryHistogram[bucketIndex(j.Salary.Midpoint())].Count++
		deptSums[j.Department] += j.Salary.Midpoint()
		deptCounts[j.Department]++
	}

	if s.TotalJobs > 0 {
		s.DisclosureRate = float64(s.WithSalary) / float64(s.TotalJobs) * 100
	}
	if s.WithSalary > 0 {
		s.AvgSalary = &AvgSalary{Min: sumMin / s.WithSalary, Max: sumMax / s.WithSalary}
	}

	// per-department averages; zero-salaried departments report 0 and
	// stay out of the ranking
	for _, d := range deptOrder {
		if deptCounts[d] == 0 {
			s.AvgSalaryByDept[d] = 0
			continue
		}
		s.AvgSalaryByDept[d] = deptSums[d] / deptCounts[d]
		s.TopDepartments = append(s.TopDepartments, DeptSalary{
			Department: d,
			Average:    deptSums[d] / deptCounts[d],
			Count:      deptCounts[d],
		})
	}
	sort.SliceStable(s.TopDepartments, func(i, k int) bool {
		return s.TopDepartments[i].Average > s.TopDepartments[k].Average
	})
	if len(s.TopDepartments) > topN {
		s.TopDepartments = s.TopDepartments[:topN]
	}

	s.TopPaying = topPaying(set.Jobs, topN)
	return s
}

// topPaying ranks salaried postings by max desc, then min desc, then
// listing order. Postings without salary are excluded entirely.
func topPaying(jobs []domain.JobPosting, topN int) []RankedJob {
	var ranked []RankedJob
	for _, j := range jobs {
		if j.Salary == nil {
			continue
		}
		ranked = append(ranked, RankedJob{
			Title:      j.Title,
			Department: j.Department,
			URL:        j.URL,
			Min:        j.Salary.Min,
			Max:        j.Salary.Max,
		})
	}
	sort.SliceStable(ranked, func(i, k int) bool {
		if ranked[i].Max != ranked[k].Max {
			return ranked[i].Max > ranked[k].Max
		}
		return ranked[i].Min > ranked[k].Min
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

func emptyHistogram() []Bucket {
	buckets := make([]Bucket, 0, len(bucketBounds))
	for i, lo := range bucketBounds {
		if i+1 < len(bucketBounds) {
			buckets = append(buckets, Bucket{Label: fmt.Sprintf("$%dk-$%dk", lo/1000, bucketBounds[i+1]/1000)})
		} else {
			buckets = append(buckets, Bucket{Label: fmt.Sprintf("$%dk+", lo/1000)})
		}
	}
	return buckets
}

func bucketIndex(midpoint int) int {
	for i := len(bucketBounds) - 1; i >= 0; i-- {
		if midpoint >= bucketBounds[i] {
			return i
		}
	}
	return 0
}
