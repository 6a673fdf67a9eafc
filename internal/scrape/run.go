// Package scrape sequences one company's pipeline: detect the
// platform, walk the listing pages, normalize stubs, enrich missing
// salaries from detail pages, and hand back an ordered CompanyJobSet.
package scrape

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"talentai-engine/internal/domain"
	"talentai-engine/internal/scrape/fetch"
	"talentai-engine/internal/scrape/generic"
	"talentai-engine/internal/scrape/normalize"
	"talentai-engine/internal/scrape/platform"
)

// ErrUnsupportedPlatform means the page yielded nothing for the
// detected strategy AND the generic fallback. A board with zero
// openings is not this error.
var ErrUnsupportedPlatform = errors.New("no viable extraction strategy")

type Options struct {
	UserAgent      string
	RequestTimeout time.Duration
	DetailWorkers  int
	DetailFetchMax int
	DetailRetries  int
	DetailBackoff  time.Duration
	MaxPages       int
	HostRPS        float64
	HostBurst      int
}

func (o *Options) fill() {
	if o.DetailWorkers <= 0 {
		o.DetailWorkers = 20
	}
	if o.DetailFetchMax <= 0 {
		o.DetailFetchMax = 20
	}
	if o.DetailRetries < 0 {
		o.DetailRetries = 2
	}
	if o.DetailBackoff <= 0 {
		o.DetailBackoff = 500 * time.Millisecond
	}
	if o.MaxPages <= 0 {
		o.MaxPages = 10
	}
}

type Runner struct {
	client *fetch.Client
	opts   Options
}

func NewRunner(opts Options) *Runner {
	opts.fill()
	return &Runner{
		client: fetch.NewClient(fetch.Options{
			UserAgent: opts.UserAgent,
			Timeout:   opts.RequestTimeout,
			HostRPS:   opts.HostRPS,
			HostBurst: opts.HostBurst,
		}),
		opts: opts,
	}
}

// Run scrapes one company. The initial fetch is mandatory: a fetch
// failure there aborts with the cause. Once listing extraction
// succeeds the result is always usable, even under cancellation.
func (r *Runner) Run(ctx context.Context, companyURL, nameHint string) (*domain.CompanyJobSet, error) {
	body, err := r.client.Get(ctx, companyURL)
	if err != nil {
		return nil, fmt.Errorf("initial listing fetch: %w", err)
	}

	plat := platform.Detect(companyURL, body)
	strat := ForPlatform(plat)
	log.Printf("[scrape] url=%s platform=%s", companyURL, plat)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedPlatform, err)
	}

	stubs := r.collectStubs(ctx, strat, companyURL, doc)
	if len(stubs) == 0 && plat != domain.PlatformUnknown && plat != domain.PlatformCustom {
		// strategy came up dry; try the generic walk before giving up
		stubs = dedupe(generic.Strategy{Tag: plat}.ExtractStubs(doc, companyURL))
	}
	if len(stubs) == 0 && !parseable(doc) {
		return nil, ErrUnsupportedPlatform
	}

	jobs := make([]domain.JobPosting, 0, len(stubs))
	for _, stub := range stubs {
		jobs = append(jobs, normalize.Stub(stub, plat))
	}

	patches := r.enrichDetails(ctx, jobs)
	applyPatches(jobs, patches)

	set := &domain.CompanyJobSet{
		Company:   deriveCompanyName(companyURL, nameHint),
		SourceURL: companyURL,
		Platform:  plat,
		ScrapedAt: time.Now().UTC(),
		Jobs:      jobs,
	}
	log.Printf("[scrape] company=%q jobs=%d enriched=%d", set.Company, len(jobs), len(patches))
	return set, nil
}

// Target names one tracked company for batch scraping.
type Target struct {
	Name string
	URL  string
}

// RunAll scrapes several companies concurrently, each by an
// independent Run with no shared mutable state. One company's
// failure never cancels the siblings.
func (r *Runner) RunAll(ctx context.Context, targets []Target, limit int) []*domain.CompanyJobSet {
	if limit <= 0 {
		limit = 4
	}

	results := make([]*domain.CompanyJobSet, len(targets))
	var g errgroup.Group
	g.SetLimit(limit)

	for i, t := range targets {
		i, t := i, t
		g.Go(func() error {
			set, err := r.Run(ctx, t.URL, t.Name)
			if err != nil {
				log.Printf("[scrape] company=%q err=%v", t.Name, err)
				return nil
			}
			results[i] = set
			return nil
		})
	}
	_ = g.Wait()

	out := results[:0]
	for _, s := range results {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

// collectStubs walks listing pages until no new stubs appear or the
// page ceiling is hit. Discovery order is preserved; URLs repeat
// across pages only once.
func (r *Runner) collectStubs(ctx context.Context, strat Strategy, baseURL string, doc *goquery.Document) []domain.JobStub {
	seen := map[string]bool{}
	var stubs []domain.JobStub

	add := func(batch []domain.JobStub) int {
		added := 0
		for _, s := range batch {
			if s.URL == "" || seen[s.URL] {
				continue
			}
			seen[s.URL] = true
			stubs = append(stubs, s)
			added++
		}
		return added
	}

	add(strat.ExtractStubs(doc, baseURL))

	pageURL := baseURL
	for page := 1; page < r.opts.MaxPages; page++ {
		next := strat.NextPage(doc, pageURL, page)
		if next == "" || next == pageURL {
			break
		}
		body, err := r.client.Get(ctx, next)
		if err != nil {
			log.Printf("[scrape] page=%d url=%s err=%v", page+1, next, err)
			break
		}
		nextDoc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
		if err != nil {
			break
		}
		if add(strat.ExtractStubs(nextDoc, baseURL)) == 0 {
			break
		}
		doc, pageURL = nextDoc, next
	}
	return stubs
}

func dedupe(batch []domain.JobStub) []domain.JobStub {
	seen := map[string]bool{}
	out := batch[:0]
	for _, s := range batch {
		if s.URL == "" || seen[s.URL] {
			continue
		}
		seen[s.URL] = true
		out = append(out, s)
	}
	return out
}

// parseable reports whether the document has any link structure at
// all; a page without it cannot be extracted by any strategy.
func parseable(doc *goquery.Document) bool {
	return doc.Find("a[href]").Length() > 0 || doc.Find("script").Length() > 0
}

func deriveCompanyName(companyURL, hint string) string {
	if h := strings.TrimSpace(hint); h != "" {
		return h
	}
	u, err := url.Parse(companyURL)
	if err != nil {
		return "unknown"
	}
	host := strings.ToLower(strings.TrimPrefix(u.Host, "www."))

	// board hosts carry the company as the first path segment
	if strings.HasSuffix(host, "greenhouse.io") || strings.HasSuffix(host, "ashbyhq.com") {
		for _, seg := range strings.Split(u.Path, "/") {
			if seg = strings.TrimSpace(seg); seg != "" {
				return seg
			}
		}
	}
	if i := strings.IndexByte(host, '.'); i > 0 {
		return host[:i]
	}
	if host != "" {
		return host
	}
	return "unknown"
}
