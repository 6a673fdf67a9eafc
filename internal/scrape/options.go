package scrape

import (
	"time"

	"talentai-engine/internal/config"
)

func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		UserAgent:      cfg.Scrape.UserAgent,
		RequestTimeout: time.Duration(cfg.Scrape.RequestTimeoutSeconds) * time.Second,
		DetailWorkers:  cfg.Scrape.DetailWorkers,
		DetailFetchMax: cfg.Scrape.DetailFetchMax,
		DetailRetries:  cfg.Scrape.DetailRetries,
		MaxPages:       cfg.Scrape.MaxPages,
		HostRPS:        cfg.Scrape.HostRPS,
		HostBurst:      cfg.Scrape.HostBurst,
	}
}
