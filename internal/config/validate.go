package config

import (
	"errors"
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus everything a
// UI should surface before saving.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	seen := map[string]bool{}
	var companies []TrackedCompany
	for _, c := range out.Tracking.Companies {
		c.Name = strings.TrimSpace(c.Name)
		c.URL = strings.TrimSpace(c.URL)
		if c.URL == "" {
			res.addWarn("tracking company %q has no url; dropped", c.Name)
			continue
		}
		if seen[strings.ToLower(c.URL)] {
			continue
		}
		seen[strings.ToLower(c.URL)] = true
		companies = append(companies, c)
	}
	out.Tracking.Companies = companies

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}
	if out.Scrape.RequestTimeoutSeconds <= 0 {
		res.addErr("scrape.request_timeout_seconds must be > 0")
	}
	if out.Scrape.DetailWorkers <= 0 {
		res.addErr("scrape.detail_workers must be > 0")
	} else if out.Scrape.DetailWorkers > 64 {
		res.addWarn("scrape.detail_workers is very high (%d); boards may throttle you.", out.Scrape.DetailWorkers)
	}
	if out.Scrape.DetailFetchMax < 0 {
		res.addErr("scrape.detail_fetch_max must be >= 0")
	}
	if out.Scrape.DetailRetries < 0 {
		res.addErr("scrape.detail_retries must be >= 0")
	}
	if out.Scrape.MaxPages <= 0 {
		res.addErr("scrape.max_pages must be > 0")
	}
	if out.Scrape.HostRPS <= 0 {
		res.addErr("scrape.host_rps must be > 0")
	}
	if out.Tracking.RefreshSeconds < 0 {
		res.addErr("tracking.refresh_seconds must be >= 0 (0 disables)")
	} else if out.Tracking.RefreshSeconds > 0 && out.Tracking.RefreshSeconds < 60 {
		res.addWarn("tracking.refresh_seconds is very low (%d); boards may rate-limit.", out.Tracking.RefreshSeconds)
	}
	if out.Analytics.TopN < 0 {
		res.addErr("analytics.top_n must be >= 0")
	}

	return out, res
}

// Validate is the hard gate used before persisting.
func Validate(cfg Config) error {
	_, res := NormalizeAndValidate(cfg)
	if !res.OK() {
		return errors.New("config validation failed:\n- " + strings.Join(res.Errors, "\n- "))
	}
	return nil
}
