package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"talentai-engine/internal/analytics"
	"talentai-engine/internal/config"
	"talentai-engine/internal/domain"
	"talentai-engine/internal/scrape"
)

var (
	scrapeName    *string
	scrapeCfgPath *string
)

func init() {
	scrapeName = scrapeCmd.Flags().String("name", "", "Company name to use instead of deriving it from the URL.")
	scrapeCfgPath = scrapeCmd.Flags().String("config", "", "Config file to read scrape knobs from (optional).")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape <board-url> [--name <company>] [--config <path>]",
	Short: "Scrapes one job board and prints the job set plus analytics as JSON.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var cfg config.Config
		if *scrapeCfgPath != "" {
			loaded, err := config.Load(*scrapeCfgPath)
			if err != nil {
				return fmt.Errorf("config load (%s): %w", *scrapeCfgPath, err)
			}
			cfg = loaded
		}

		runner := scrape.NewRunner(scrape.OptionsFromConfig(cfg))
		set, err := runner.Run(cmd.Context(), args[0], *scrapeName)
		if err != nil {
			return err
		}

		out := struct {
			Company   string              `json:"company"`
			SourceURL string              `json:"source_url"`
			Platform  domain.Platform     `json:"platform"`
			ScrapedAt time.Time           `json:"scraped_at"`
			Jobs      []domain.JobPosting `json:"jobs"`
			Analytics analytics.Summary   `json:"analytics"`
		}{
			Company:   set.Company,
			SourceURL: set.SourceURL,
			Platform:  set.Platform,
			ScrapedAt: set.ScrapedAt,
			Jobs:      set.Jobs,
			Analytics: analytics.AnalyzeTopN(set, cfg.Analytics.TopN),
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}
