package cmd

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/a-bakhtine/UFC-predictor/internal/scraper"
)

var (
	scrapeLimit   int
	scrapeDelayMs int
	scrapeRefresh bool
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape completed events from ufcstats.com into the database",
	Long: `Fetch the completed-events listing, then every event page and its
fight-details pages, and store fighters, fight records, and per-fighter stat
lines. Ingestion is idempotent: re-scraping an event replaces its rows.

Example:
  ufcpred scrape --limit 20`,
	Args: cobra.NoArgs,
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().IntVar(&scrapeLimit, "limit", 0, "max events to scrape, newest first (0 = all)")
	scrapeCmd.Flags().IntVar(&scrapeDelayMs, "delay-ms", 0, "per-request delay in ms (0 = use config)")
	scrapeCmd.Flags().BoolVar(&scrapeRefresh, "refresh", false, "re-scrape events whose fights are already stored")
}

func runScrape(cmd *cobra.Command, _ []string) error {
	cfg := loadedConfig()
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	delay := time.Duration(cfg.Scrape.DelayMs) * time.Millisecond
	if scrapeDelayMs > 0 {
		delay = time.Duration(scrapeDelayMs) * time.Millisecond
	}
	client := scraper.New(cfg.Scrape.BaseURL, delay)

	ctx := cmd.Context()
	urls, err := client.CompletedEventURLs(ctx, scrapeLimit)
	if err != nil {
		return fmt.Errorf("list events: %w", err)
	}

	totalFights, totalKnown := 0, 0
	for i, url := range urls {
		log.Info().Int("event", i+1).Int("of", len(urls)).Str("url", url).Msg("scraping")

		data, err := client.ScrapeEvent(ctx, url)
		if err != nil {
			return fmt.Errorf("scrape %s: %w", url, err)
		}

		known := 0
		for _, f := range data.Fights {
			exists, err := db.FightExists(f.ID)
			if err != nil {
				return err
			}
			if exists {
				known++
			}
		}
		if known == len(data.Fights) && len(data.Fights) > 0 && !scrapeRefresh {
			log.Info().Str("url", url).Msg("all fights already stored, skipping insert")
			totalKnown += known
			continue
		}

		if err := db.InsertFighters(data.Fighters); err != nil {
			return fmt.Errorf("store fighters: %w", err)
		}
		if err := db.InsertFights(data.Fights); err != nil {
			return fmt.Errorf("store fights: %w", err)
		}
		if err := db.InsertStatLines(data.StatLines); err != nil {
			return fmt.Errorf("store stat lines: %w", err)
		}
		totalFights += len(data.Fights)
		totalKnown += known
	}

	log.Info().
		Int("events", len(urls)).
		Int("fights_stored", totalFights).
		Int("fights_already_known", totalKnown).
		Msg("scrape complete")
	return nil
}
