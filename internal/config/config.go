package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type TrackedCompany struct {
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url" json:"url"`
}

type Config struct {
	App struct {
		Port int `yaml:"port" json:"port"`
	} `yaml:"app" json:"app"`

	Scrape struct {
		UserAgent             string  `yaml:"user_agent" json:"user_agent"`
		RequestTimeoutSeconds int     `yaml:"request_timeout_seconds" json:"request_timeout_seconds"`
		DetailWorkers         int     `yaml:"detail_workers" json:"detail_workers"`
		DetailFetchMax        int     `yaml:"detail_fetch_max" json:"detail_fetch_max"`
		DetailRetries         int     `yaml:"detail_retries" json:"detail_retries"`
		MaxPages              int     `yaml:"max_pages" json:"max_pages"`
		HostRPS               float64 `yaml:"host_rps" json:"host_rps"`
		HostBurst             int     `yaml:"host_burst" json:"host_burst"`
	} `yaml:"scrape" json:"scrape"`

	Tracking struct {
		RefreshSeconds int              `yaml:"refresh_seconds" json:"refresh_seconds"`
		Companies      []TrackedCompany `yaml:"companies" json:"companies"`
	} `yaml:"tracking" json:"tracking"`

	Analytics struct {
		TopN int `yaml:"top_n" json:"top_n"`
	} `yaml:"analytics" json:"analytics"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
