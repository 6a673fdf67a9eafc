package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"talentai-engine/internal/config"
	"talentai-engine/internal/domain"
	"talentai-engine/internal/events"
	"talentai-engine/internal/httpapi"
	"talentai-engine/internal/scheduler"
	"talentai-engine/internal/scrape"
	"talentai-engine/internal/store"
)

var serveDataDir *string

func init() {
	serveDataDir = serveCmd.Flags().String("data-dir", "", "Directory for the database and user config (default $TALENTAI_DATA_DIR or .)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve [--data-dir <dir>]",
	Short: "Runs the HTTP engine: scrape endpoint, stored snapshots, analytics, SSE.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context(), *serveDataDir)
	},
}

func runServe(ctx context.Context, dataDir string) error {
	if dataDir == "" {
		dataDir = os.Getenv("TALENTAI_DATA_DIR")
	}
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	// One engine per data dir; a second instance would race on sqlite
	// and the user config.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("data dir lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("data dir %s is already in use by another engine", dataDir)
	}
	defer func() { _ = lock.Unlock() }()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		return fmt.Errorf("config bootstrap: %w", err)
	}

	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		return config.Load(userCfgPath)
	}
	cfg, err := loadCfg()
	if err != nil {
		return fmt.Errorf("config load (%s): %w", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	dbPath := filepath.Join(dataDir, "talentai.db")
	db, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	hub := events.NewHub()

	var scrapeStatus atomic.Value
	scrapeStatus.Store(httpapi.ScrapeStatus{})

	runScrape := func(ctx context.Context, cfg config.Config, url, name string) (*domain.CompanyJobSet, error) {
		return scrape.NewRunner(scrape.OptionsFromConfig(cfg)).Run(ctx, url, name)
	}

	mux := httpapi.NewMux(httpapi.Deps{
		DB:           db,
		Hub:          hub,
		CfgVal:       &cfgVal,
		ScrapeStatus: &scrapeStatus,
		UserCfgPath:  userCfgPath,
		LoadCfg:      loadCfg,
		RunScrape:    runScrape,
	})
	handler := httpapi.Chain(mux,
		httpapi.RequestID,
		httpapi.Recover,
		httpapi.AccessLog,
		httpapi.Cors,
	)

	if cfg.Tracking.RefreshSeconds > 0 && len(cfg.Tracking.Companies) > 0 {
		interval := time.Duration(cfg.Tracking.RefreshSeconds) * time.Second
		go scheduler.Every(ctx, interval, "tracking", func(ctx context.Context) error {
			return refreshTracked(ctx, db, &cfgVal, hub)
		})
	}

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	log.Printf("[engine] listening on http://%s (db=%s)", addr, dbPath)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutCtx)
}

// refreshTracked re-scrapes every tracked company and stores the
// snapshots. Reads the config fresh each cycle so edits apply without
// a restart.
func refreshTracked(ctx context.Context, db *sql.DB, cfgVal *atomic.Value, hub *events.Hub) error {
	cfg := cfgVal.Load().(config.Config)
	if len(cfg.Tracking.Companies) == 0 {
		return nil
	}

	targets := make([]scrape.Target, 0, len(cfg.Tracking.Companies))
	for _, c := range cfg.Tracking.Companies {
		targets = append(targets, scrape.Target{Name: c.Name, URL: c.URL})
	}

	runner := scrape.NewRunner(scrape.OptionsFromConfig(cfg))
	sets := runner.RunAll(ctx, targets, 4)

	for _, set := range sets {
		if err := store.SaveSnapshot(db, *set); err != nil {
			log.Printf("[tracking] company=%q save err=%v", set.Company, err)
			continue
		}
		hub.Publish(events.MakeEvent("", "snapshot_refreshed", 1, map[string]any{
			"company": set.Company,
			"jobs":    len(set.Jobs),
		}))
	}
	log.Printf("[tracking] refreshed=%d of=%d", len(sets), len(targets))
	return nil
}
