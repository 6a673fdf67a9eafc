package scrape

import (
	"bytes"
	"context"
	"log"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"talentai-engine/internal/domain"
	"talentai-engine/internal/scrape/normalize"
	"talentai-engine/internal/scrape/salary"
)

// patch carries what a detail page recovered for one posting, keyed
// by URL. Workers never touch the job slice; the orchestrator merges
// patches after pool drain, so listing order survives any fetch
// completion order.
type patch struct {
	url        string
	salary     *domain.SalaryRange
	location   string
	department string
}

// enrichDetails fetches detail pages for postings still missing a
// salary, capped at DetailFetchMax postings and DetailWorkers
// simultaneous fetches. A posting whose fetch fails keeps its
// pre-fetch state; cancellation stops issuing new fetches.
func (r *Runner) enrichDetails(ctx context.Context, jobs []domain.JobPosting) map[string]patch {
	var queue []domain.JobPosting
	for _, j := range jobs {
		if j.Salary == nil && j.URL != "" {
			queue = append(queue, j)
			if len(queue) >= r.opts.DetailFetchMax {
				break
			}
		}
	}
	if len(queue) == 0 {
		return nil
	}

	workers := r.opts.DetailWorkers
	if workers > len(queue) {
		workers = len(queue)
	}

	workCh := make(chan domain.JobPosting)
	patchCh := make(chan patch, len(queue))

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for job := range workCh {
				body, err := r.client.GetWithRetry(ctx, job.URL, r.opts.DetailRetries, r.opts.DetailBackoff)
				if err != nil {
					log.Printf("[detail] url=%s err=%v", job.URL, err)
					continue
				}
				if p, ok := parseDetail(job, body); ok {
					patchCh <- p
				}
			}
		}()
	}

	go func() {
		defer close(workCh)
		for _, job := range queue {
			select {
			case <-ctx.Done():
				return
			case workCh <- job:
			}
		}
	}()

	wg.Wait()
	close(patchCh)

	out := make(map[string]patch, len(queue))
	for p := range patchCh {
		out[p.url] = p
	}
	return out
}

func applyPatches(jobs []domain.JobPosting, patches map[string]patch) {
	for i := range jobs {
		p, ok := patches[jobs[i].URL]
		if !ok {
			continue
		}
		if jobs[i].Salary == nil && p.salary != nil {
			jobs[i].Salary = p.salary
		}
		if jobs[i].Location == domain.NotSpecified && p.location != "" {
			jobs[i].Location = p.location
			if jobs[i].Work == domain.WorkUnknown {
				jobs[i].Work = normalize.WorkArrangementOf(jobs[i].Title, p.location, "")
			}
		}
		if jobs[i].Department == domain.NotSpecified && p.department != "" {
			jobs[i].Department = p.department
		}
	}
}

var compensationMarkers = []string{"compensation", "salary", "pay range", "wage", "remuneration"}

// parseDetail re-runs the salary parser (and, when absent, location
// and department) against the full detail page. Compensation-looking
// sections are scanned before the whole body so boilerplate numbers
// elsewhere on the page don't win.
func parseDetail(job domain.JobPosting, body []byte) (patch, bool) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return patch{}, false
	}

	p := patch{url: job.URL}

	doc.Find("p, li, dl, div, section").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		low := strings.ToLower(text)
		for _, m := range compensationMarkers {
			if strings.Contains(low, m) {
				if sal := salary.Parse(text); sal != nil {
					p.salary = sal
					return false
				}
			}
		}
		return true
	})
	rawText := doc.Find("body").Text()
	if p.salary == nil {
		p.salary = salary.Parse(normalize.CleanText(rawText))
	}

	if job.Location == domain.NotSpecified {
		// raw text keeps line breaks, which delimit "Location:" labels
		p.location = findLocation(doc, rawText)
	}
	if job.Department == domain.NotSpecified {
		if d := normalize.Department(detailDepartmentHint(doc), job.Title); d != domain.NotSpecified {
			p.department = d
		}
	}

	if p.salary == nil && p.location == "" && p.department == "" {
		return patch{}, false
	}
	return p, true
}

func findLocation(doc *goquery.Document, bodyText string) string {
	for _, sel := range []string{
		".location",
		".job__location",
		"[data-testid='job-location']",
		"[data-testid='location']",
		"[class*='location']",
	} {
		if t := normalize.CleanText(doc.Find(sel).First().Text()); t != "" {
			return t
		}
	}
	return locationFromLabeledText(bodyText)
}

// locationFromLabeledText extracts after "Location:"-style labels in
// plain text.
func locationFromLabeledText(s string) string {
	low := strings.ToLower(s)
	for _, lab := range []string{"location:", "locations:", "job location:"} {
		i := strings.Index(low, lab)
		if i < 0 {
			continue
		}
		rest := strings.TrimSpace(s[i+len(lab):])
		for _, cut := range []string{"\n", "\r", " | ", " · "} {
			if j := strings.Index(rest, cut); j >= 0 {
				rest = rest[:j]
			}
		}
		rest = normalize.CleanText(rest)
		if rest != "" && len(rest) <= 80 {
			return rest
		}
	}
	return ""
}

func detailDepartmentHint(doc *goquery.Document) string {
	for _, sel := range []string{
		"[class*='department']",
		"[data-testid='department']",
		".posting-categories .department",
	} {
		if t := normalize.CleanText(doc.Find(sel).First().Text()); t != "" {
			return t
		}
	}
	return ""
}
