package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"talentai-engine/internal/analytics"
	"talentai-engine/internal/config"
	"talentai-engine/internal/domain"
	"talentai-engine/internal/events"
	"talentai-engine/internal/scrape"
	"talentai-engine/internal/store"
)

type ScrapeHandler struct {
	DB           *sql.DB
	CfgVal       *atomic.Value // config.Config
	ScrapeStatus *atomic.Value // httpapi.ScrapeStatus
	Hub          *events.Hub
	RunScrape    func(ctx context.Context, cfg config.Config, url, name string) (*domain.CompanyJobSet, error)
}

type scrapeRequest struct {
	URL  string `json:"url"`
	Name string `json:"name,omitempty"`
}

type scrapeResponse struct {
	Company   string              `json:"company"`
	SourceURL string              `json:"source_url"`
	Platform  domain.Platform     `json:"platform"`
	ScrapedAt time.Time           `json:"scraped_at"`
	Jobs      []domain.JobPosting `json:"jobs"`
	Analytics analytics.Summary   `json:"analytics"`
}

func (h ScrapeHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := h.ScrapeStatus.Load().(ScrapeStatus)
	writeJSON(w, st)
}

// Run scrapes one board synchronously and responds with the job set
// plus its analytics. Only one run at a time.
func (h ScrapeHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req scrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	u, err := url.Parse(req.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_url", "url must be absolute")
		return
	}

	st := h.ScrapeStatus.Load().(ScrapeStatus)
	if st.Running {
		WriteError(w, r, http.StatusConflict, "already_running", "a scrape is already running")
		return
	}

	now := time.Now().Format(time.RFC3339)
	h.ScrapeStatus.Store(ScrapeStatus{
		LastRunAt: now,
		Running:   true,
		LastOkAt:  st.LastOkAt,
	})

	runID := uuid.NewString()
	h.Hub.Publish(events.MakeEvent(runID, "scrape_started", 1, map[string]any{"url": req.URL}))

	cfg := h.CfgVal.Load().(config.Config)
	set, err := h.RunScrape(r.Context(), cfg, req.URL, req.Name)

	next := h.ScrapeStatus.Load().(ScrapeStatus)
	next.Running = false
	next.LastRunAt = time.Now().Format(time.RFC3339)
	if err != nil {
		next.LastError = err.Error()
		h.ScrapeStatus.Store(next)
		h.Hub.Publish(events.MakeEvent(runID, "scrape_failed", 1, map[string]any{"url": req.URL, "error": err.Error()}))
		if errors.Is(err, scrape.ErrUnsupportedPlatform) {
			WriteError(w, r, http.StatusUnprocessableEntity, "unsupported_platform", err.Error())
			return
		}
		WriteError(w, r, http.StatusBadGateway, "scrape_failed", err.Error())
		return
	}

	next.LastError = ""
	next.LastOkAt = next.LastRunAt
	next.LastCompany = set.Company
	next.LastJobs = len(set.Jobs)
	h.ScrapeStatus.Store(next)

	if err := store.SaveSnapshot(h.DB, *set); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_failed", err.Error())
		return
	}

	sum := analytics.AnalyzeTopN(set, cfg.Analytics.TopN)
	h.Hub.Publish(events.MakeEvent(runID, "scrape_finished", 1, map[string]any{
		"company": set.Company,
		"jobs":    len(set.Jobs),
	}))

	writeJSON(w, scrapeResponse{
		Company:   set.Company,
		SourceURL: set.SourceURL,
		Platform:  set.Platform,
		ScrapedAt: set.ScrapedAt,
		Jobs:      set.Jobs,
		Analytics: sum,
	})
}
