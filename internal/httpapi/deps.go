package httpapi

import (
	"context"
	"database/sql"
	"sync/atomic"

	"talentai-engine/internal/config"
	"talentai-engine/internal/domain"
	"talentai-engine/internal/events"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	// Atomic stores
	CfgVal       *atomic.Value // stores config.Config
	ScrapeStatus *atomic.Value // stores httpapi.ScrapeStatus

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Scrape entrypoint (inject for testability)
	RunScrape func(ctx context.Context, cfg config.Config, url, name string) (*domain.CompanyJobSet, error)
}
