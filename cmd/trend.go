package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/a-bakhtine/UFC-predictor/internal/report"
)

var trendCmd = &cobra.Command{
	Use:   "trend <fighter>",
	Short: "Show a fighter's chronological fight-by-fight record",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrend,
}

func runTrend(_ *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	f, err := resolveFighter(db, args[0])
	if err != nil {
		return err
	}
	asOf, err := parseAsOf("")
	if err != nil {
		return err
	}

	history, err := db.GetFightHistory(f.ID, asOf)
	if err != nil {
		return err
	}

	report.PrintTrend(os.Stdout, *f, history)
	return nil
}
