// Package cmd wires the ufcpred CLI commands.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/a-bakhtine/UFC-predictor/internal/config"
	"github.com/a-bakhtine/UFC-predictor/internal/model"
	"github.com/a-bakhtine/UFC-predictor/internal/storage"
)

var (
	cfg     *config.Config
	cfgOnce sync.Once
	dbPath  string
)

// loadedConfig loads the configuration once. Command init functions run in
// file-name order, so flag defaults must pull config through here rather than
// read cfg directly.
func loadedConfig() *config.Config {
	cfgOnce.Do(func() {
		c, err := config.Load()
		if err != nil {
			fmt.Fprintln(os.Stderr, "config:", err)
			os.Exit(1)
		}
		cfg = c
	})
	return cfg
}

var rootCmd = &cobra.Command{
	Use:   "ufcpred",
	Short: "UFC fight data and winner-prediction tool",
	Long: "Scrape ufcstats.com fight records, compute leakage-free fighter profiles,\n" +
		"materialize matchup training datasets, and predict fight winners.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", loadedConfig().DBPath, "path to SQLite database")

	rootCmd.AddCommand(scrapeCmd)
	rootCmd.AddCommand(datasetCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(dropCmd)
}

// openDB opens the fight store, creating its parent directory if needed.
func openDB() (*storage.DB, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return db, nil
}

// resolveFighter turns a user-supplied id or name fragment into exactly one
// fighter, listing the candidates when the term is ambiguous.
func resolveFighter(db *storage.DB, term string) (*model.Fighter, error) {
	matches, err := db.FindFighters(term)
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no fighter matches %q", term)
	case 1:
		return &matches[0], nil
	}
	fmt.Fprintf(os.Stderr, "%q matches %d fighters:\n", term, len(matches))
	for _, m := range matches {
		fmt.Fprintf(os.Stderr, "  %s  %s\n", m.ID, m.Name)
	}
	return nil, fmt.Errorf("ambiguous fighter %q", term)
}

// parseAsOf parses a --date flag value; empty means tomorrow, so that fights
// up to and including today count as history.
func parseAsOf(s string) (time.Time, error) {
	if s == "" {
		return time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 1), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}
