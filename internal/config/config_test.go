package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("UFCPRED_CONFIG", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RecentWindow != 3 {
		t.Errorf("recent window %d, want 3", cfg.RecentWindow)
	}
	if cfg.Scrape.BaseURL != "http://www.ufcstats.com" {
		t.Errorf("base url %s", cfg.Scrape.BaseURL)
	}
	if cfg.DBPath == "" {
		t.Error("default db path empty")
	}
	if len(cfg.FeatureFields) != 0 {
		t.Errorf("default feature fields should be empty, got %v", cfg.FeatureFields)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("UFCPRED_CONFIG", "")
	t.Setenv("UFCPRED_RECENT_WINDOW", "5")
	t.Setenv("UFCPRED_DB_PATH", "/tmp/other.db")
	t.Setenv("UFCPRED_SCRAPE_BASE_URL", "http://localhost:9999")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RecentWindow != 5 {
		t.Errorf("recent window %d, want 5", cfg.RecentWindow)
	}
	if cfg.DBPath != "/tmp/other.db" {
		t.Errorf("db path %s", cfg.DBPath)
	}
	if cfg.Scrape.BaseURL != "http://localhost:9999" {
		t.Errorf("scrape base url %s, want env override", cfg.Scrape.BaseURL)
	}
	// Untouched keys keep their defaults.
	if cfg.Scrape.DelayMs != 500 {
		t.Errorf("delay %d, want default 500", cfg.Scrape.DelayMs)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ufcpred.yaml")
	yaml := "recent_window: 4\nfeature_fields:\n  - win_rate\n  - control_ratio\nscrape:\n  delay_ms: 100\n"
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	t.Setenv("UFCPRED_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RecentWindow != 4 {
		t.Errorf("recent window %d, want 4 from file", cfg.RecentWindow)
	}
	if len(cfg.FeatureFields) != 2 || cfg.FeatureFields[0] != "win_rate" {
		t.Errorf("feature fields %v", cfg.FeatureFields)
	}
	if cfg.Scrape.DelayMs != 100 {
		t.Errorf("delay %d, want 100 from file", cfg.Scrape.DelayMs)
	}

	// Env still beats the file.
	t.Setenv("UFCPRED_RECENT_WINDOW", "7")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RecentWindow != 7 {
		t.Errorf("recent window %d, want env to beat file", cfg.RecentWindow)
	}
}

func TestLoadRejectsBadWindow(t *testing.T) {
	t.Setenv("UFCPRED_CONFIG", "")
	t.Setenv("UFCPRED_RECENT_WINDOW", "0")

	if _, err := Load(); err == nil {
		t.Error("expected error for recent_window 0")
	}
}
