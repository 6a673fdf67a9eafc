package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"talentai-engine/internal/domain"
)

func detailJob(url string) domain.JobPosting {
	return domain.JobPosting{
		Title:      "Engineer",
		Location:   domain.NotSpecified,
		Department: "Engineering",
		URL:        url,
	}
}

func TestEnrichDetailsConcurrencyCeiling(t *testing.T) {
	var inFlight, peak atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cur := inFlight.Add(1)
		for {
			p := peak.Load()
			if cur <= p || peak.CompareAndSwap(p, cur) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		inFlight.Add(-1)
		fmt.Fprint(w, `<html><body><p>Compensation: $100k - $150k</p></body></html>`)
	}))
	defer srv.Close()

	opts := testOptions()
	opts.DetailWorkers = 3
	r := NewRunner(opts)

	jobs := make([]domain.JobPosting, 0, 10)
	for i := 0; i < 10; i++ {
		jobs = append(jobs, detailJob(fmt.Sprintf("%s/jobs/%d", srv.URL, i)))
	}

	patches := r.enrichDetails(context.Background(), jobs)
	require.Len(t, patches, 10)
	require.LessOrEqual(t, peak.Load(), int32(3))
}

func TestEnrichDetailsFetchCap(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, `<html><body><p>Salary: $100k</p></body></html>`)
	}))
	defer srv.Close()

	opts := testOptions()
	opts.DetailFetchMax = 2
	r := NewRunner(opts)

	jobs := make([]domain.JobPosting, 0, 5)
	for i := 0; i < 5; i++ {
		jobs = append(jobs, detailJob(fmt.Sprintf("%s/jobs/%d", srv.URL, i)))
	}

	patches := r.enrichDetails(context.Background(), jobs)
	require.Len(t, patches, 2)
	require.Equal(t, int32(2), calls.Load())
}

func TestEnrichDetailsSkipsSalariedJobs(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, `<html><body><p>Salary: $100k</p></body></html>`)
	}))
	defer srv.Close()

	r := NewRunner(testOptions())

	withSalary := detailJob(srv.URL + "/jobs/0")
	withSalary.Salary = &domain.SalaryRange{Min: 1, Max: 2, Currency: "USD"}
	jobs := []domain.JobPosting{withSalary, detailJob(srv.URL + "/jobs/1")}

	patches := r.enrichDetails(context.Background(), jobs)
	require.Len(t, patches, 1)
	require.Equal(t, int32(1), calls.Load())
}

func TestEnrichDetailsFailedFetchLeavesJobIntact(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := NewRunner(testOptions())
	jobs := []domain.JobPosting{detailJob(srv.URL + "/jobs/0")}

	patches := r.enrichDetails(context.Background(), jobs)
	require.Empty(t, patches)

	applyPatches(jobs, patches)
	require.Nil(t, jobs[0].Salary)
	require.Equal(t, domain.NotSpecified, jobs[0].Location)
}

func TestEnrichDetailsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var once sync.Once
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		once.Do(cancel)
		fmt.Fprint(w, `<html><body><p>Salary: $100k</p></body></html>`)
	}))
	defer srv.Close()

	opts := testOptions()
	opts.DetailWorkers = 1
	r := NewRunner(opts)

	jobs := make([]domain.JobPosting, 0, 50)
	for i := 0; i < 50; i++ {
		jobs = append(jobs, detailJob(fmt.Sprintf("%s/jobs/%d", srv.URL, i)))
	}

	// must return promptly with whatever completed, not hang
	patches := r.enrichDetails(ctx, jobs)
	require.Less(t, len(patches), 50)
}

func TestApplyPatches(t *testing.T) {
	jobs := []domain.JobPosting{
		{
			Title:      "Engineer",
			Location:   domain.NotSpecified,
			Department: domain.NotSpecified,
			Work:       domain.WorkUnknown,
			URL:        "https://acme.com/jobs/1",
		},
		{
			Title:    "Designer",
			Location: "Berlin",
			Work:     domain.WorkOnsite,
			URL:      "https://acme.com/jobs/2",
		},
	}

	applyPatches(jobs, map[string]patch{
		"https://acme.com/jobs/1": {
			url:        "https://acme.com/jobs/1",
			salary:     &domain.SalaryRange{Min: 100000, Max: 150000, Currency: "USD"},
			location:   "Remote",
			department: "Engineering",
		},
	})

	require.NotNil(t, jobs[0].Salary)
	require.Equal(t, "Remote", jobs[0].Location)
	require.Equal(t, "Engineering", jobs[0].Department)
	// recomputed from the recovered location
	require.Equal(t, domain.WorkRemote, jobs[0].Work)

	// untouched posting stays untouched
	require.Nil(t, jobs[1].Salary)
	require.Equal(t, "Berlin", jobs[1].Location)
}

func TestParseDetailPrefersCompensationSection(t *testing.T) {
	body := []byte(`
<html><body>
<p>Our 401k plan beats the $5,000 signing bonus at other shops.</p>
<section><h4>Compensation</h4><p>The salary range is $150,000 - $190,000.</p></section>
</body></html>`)

	p, ok := parseDetail(detailJob("https://acme.com/jobs/1"), body)
	require.True(t, ok)
	require.NotNil(t, p.salary)
	require.Equal(t, 150000, p.salary.Min)
	require.Equal(t, 190000, p.salary.Max)
}

func TestParseDetailRecoversLabeledLocation(t *testing.T) {
	body := []byte(`
<html><body>
<p>Location: Austin, TX</p>
<p>Salary: $120,000 - $140,000</p>
</body></html>`)

	p, ok := parseDetail(detailJob("https://acme.com/jobs/1"), body)
	require.True(t, ok)
	require.Equal(t, "Austin, TX", p.location)
	require.NotNil(t, p.salary)
}
