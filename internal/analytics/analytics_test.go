package analytics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"talentai-engine/internal/domain"
)

func job(title, dept, loc string, sen domain.Seniority, work domain.WorkArrangement, sal *domain.SalaryRange) domain.JobPosting {
	return domain.JobPosting{
		Title:      title,
		Department: dept,
		Location:   loc,
		Seniority:  sen,
		Work:       work,
		Salary:     sal,
		URL:        "https://example.com/jobs/" + title,
	}
}

func sal(min, max int) *domain.SalaryRange {
	return &domain.SalaryRange{Min: min, Max: max, Currency: "USD"}
}

func testSet() *domain.CompanyJobSet {
	return &domain.CompanyJobSet{
		Company: "acme",
		Jobs: []domain.JobPosting{
			job("Staff Engineer", "Engineering", "Remote", domain.SeniorityStaff, domain.WorkRemote, sal(200000, 260000)),
			job("Senior Engineer", "Engineering", "Remote", domain.SenioritySenior, domain.WorkRemote, sal(160000, 200000)),
			job("Engineer", "Engineering", "New York", domain.SeniorityMid, domain.WorkOnsite, nil),
			job("Product Manager", "Product", "New York", domain.SeniorityMid, domain.WorkOnsite, sal(140000, 180000)),
			job("Designer", "Design", "Berlin", domain.SeniorityMid, domain.WorkHybrid, nil),
			job("Recruiter", "People", domain.NotSpecified, domain.SeniorityMid, domain.WorkUnknown, nil),
			job("Account Executive", "Sales", "London", domain.SeniorityMid, domain.WorkOnsite, nil),
			job("Counsel", "Legal", "New York", domain.SenioritySenior, domain.WorkOnsite, nil),
			job("Data Scientist", "Data & Analytics", "Remote", domain.SenioritySenior, domain.WorkRemote, nil),
			job("Support Specialist", "Customer Support", "Remote", domain.SeniorityEntry, domain.WorkRemote, nil),
		},
	}
}

func TestAnalyzeCounts(t *testing.T) {
	s := Analyze(testSet())

	require.Equal(t, 10, s.TotalJobs)
	require.Equal(t, 3, s.WithSalary)
	require.Equal(t, 7, s.WithoutSalary)
	require.InDelta(t, 30.0, s.DisclosureRate, 0.001)

	require.Equal(t, 3, s.Departments["Engineering"])
	require.Equal(t, 1, s.Departments["Product"])
	require.Equal(t, 3, s.Locations["New York"])
	require.Equal(t, 4, s.Locations["Remote"])
	require.Equal(t, 3, s.Seniority[string(domain.SenioritySenior)])
	require.Equal(t, 4, s.WorkArrangement[string(domain.WorkRemote)])

	total := 0
	for _, n := range s.Departments {
		total += n
	}
	require.Equal(t, s.TotalJobs, total)
}

func TestAnalyzeSalaryStats(t *testing.T) {
	s := Analyze(testSet())

	// (200000+160000+140000)/3 and (260000+200000+180000)/3
	require.NotNil(t, s.AvgSalary)
	require.Equal(t, 166666, s.AvgSalary.Min)
	require.Equal(t, 213333, s.AvgSalary.Max)

	// midpoints 230k, 180k, 160k
	counts := map[string]int{}
	for _, b := range s.SalaryHistogram {
		counts[b.Label] = b.Count
	}
	require.Equal(t, 2, counts["$150k-$200k"])
	require.Equal(t, 1, counts["$200k-$250k"])
	require.Equal(t, 0, counts["$0k-$50k"])

	histTotal := 0
	for _, b := range s.SalaryHistogram {
		histTotal += b.Count
	}
	require.Equal(t, s.WithSalary, histTotal)
}

func TestAnalyzeDeptAverages(t *testing.T) {
	s := Analyze(testSet())

	// Engineering: (230000+180000)/2, Product: 160000
	require.Equal(t, 205000, s.AvgSalaryByDept["Engineering"])
	require.Equal(t, 160000, s.AvgSalaryByDept["Product"])

	// zero-salaried departments report 0 and stay out of the ranking
	require.Equal(t, 0, s.AvgSalaryByDept["Design"])
	require.Len(t, s.TopDepartments, 2)
	require.Equal(t, "Engineering", s.TopDepartments[0].Department)
	require.Equal(t, "Product", s.TopDepartments[1].Department)
	require.Equal(t, 2, s.TopDepartments[0].Count)
}

func TestAnalyzeTopPaying(t *testing.T) {
	s := Analyze(testSet())

	require.Len(t, s.TopPaying, 3)
	require.Equal(t, "Staff Engineer", s.TopPaying[0].Title)
	require.Equal(t, "Senior Engineer", s.TopPaying[1].Title)
	require.Equal(t, "Product Manager", s.TopPaying[2].Title)
	require.Equal(t, 260000, s.TopPaying[0].Max)
}

func TestAnalyzeTopNTruncates(t *testing.T) {
	s := AnalyzeTopN(testSet(), 1)
	require.Len(t, s.TopPaying, 1)
	require.Len(t, s.TopDepartments, 1)
	require.Equal(t, "Staff Engineer", s.TopPaying[0].Title)
}

func TestAnalyzeTieBreaksByListingOrder(t *testing.T) {
	set := &domain.CompanyJobSet{Jobs: []domain.JobPosting{
		job("First", "Engineering", "Remote", domain.SeniorityMid, domain.WorkRemote, sal(100000, 150000)),
		job("Second", "Engineering", "Remote", domain.SeniorityMid, domain.WorkRemote, sal(100000, 150000)),
	}}
	s := Analyze(set)
	require.Equal(t, "First", s.TopPaying[0].Title)
	require.Equal(t, "Second", s.TopPaying[1].Title)
}

func TestAnalyzeEmptySet(t *testing.T) {
	s := Analyze(&domain.CompanyJobSet{})

	require.Equal(t, 0, s.TotalJobs)
	require.Equal(t, 0.0, s.DisclosureRate)
	require.Nil(t, s.AvgSalary)
	require.NotNil(t, s.Departments)
	require.Empty(t, s.TopPaying)
	require.Len(t, s.SalaryHistogram, 6)
	for _, b := range s.SalaryHistogram {
		require.Equal(t, 0, b.Count)
	}
}

func TestAnalyzeNilSet(t *testing.T) {
	s := Analyze(nil)
	require.Equal(t, 0, s.TotalJobs)
	require.NotNil(t, s.Locations)
}

func TestAnalyzeDeterministic(t *testing.T) {
	a := Analyze(testSet())
	b := Analyze(testSet())
	require.Equal(t, a, b)
}
