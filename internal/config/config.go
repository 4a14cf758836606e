// Package config loads ufcpred settings by layering defaults, an optional
// YAML file, and UFCPRED_-prefixed environment variables.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all tunables. The recent-form window and the dataset feature
// list are deliberately configuration, not code: the pipeline's design does
// not depend on their specific values.
type Config struct {
	DBPath string `koanf:"db_path"`

	// RecentWindow is N for last-N recent-form profiles.
	RecentWindow int `koanf:"recent_window"`

	// FeatureFields limits which profile fields become dataset columns.
	// Empty means all fields.
	FeatureFields []string `koanf:"feature_fields"`

	Scrape ScrapeConfig `koanf:"scrape"`
}

// ScrapeConfig controls the ufcstats.com ingestion client.
type ScrapeConfig struct {
	BaseURL     string `koanf:"base_url"`
	DelayMs     int    `koanf:"delay_ms"`
	Concurrency int    `koanf:"concurrency"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		DBPath:       filepath.Join(userHome(), ".ufcpred", "ufcpred.db"),
		RecentWindow: 3,
		Scrape: ScrapeConfig{
			BaseURL:     "http://www.ufcstats.com",
			DelayMs:     500,
			Concurrency: 4,
		},
	}
}

// Load builds a Config. Precedence (low -> high):
//  1. defaults
//  2. YAML file named by UFCPRED_CONFIG, if set
//  3. env vars (UFCPRED_RECENT_WINDOW, UFCPRED_DB_PATH, ...)
func Load() (*Config, error) {
	cfg := *Defaults()

	k := koanf.New(".")

	if path := os.Getenv("UFCPRED_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	envProvider := env.Provider("UFCPRED_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "UFCPRED_"))
		// UFCPRED_SCRAPE_BASE_URL -> scrape.base_url
		if rest, ok := strings.CutPrefix(s, "scrape_"); ok {
			return "scrape." + rest
		}
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.RecentWindow < 1 {
		return nil, errors.New("recent_window must be >= 1")
	}
	if cfg.Scrape.Concurrency < 1 {
		cfg.Scrape.Concurrency = 1
	}
	return &cfg, nil
}

func userHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
