package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/a-bakhtine/UFC-predictor/internal/matchup"
)

var (
	dsOut         string
	dsConcurrency int
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Materialize the matchup training dataset as CSV",
	Long: `Build one training row per decisive fight side (each fight yields the
original example plus its mirror) using only information available strictly
before the fight's event date, and write the result as CSV.

Rebuilding over an unchanged database produces byte-identical output.

Example:
  ufcpred dataset --out dataset.csv`,
	Args: cobra.NoArgs,
	RunE: runDataset,
}

func init() {
	datasetCmd.Flags().StringVar(&dsOut, "out", "", "output file path (stdout if omitted)")
	datasetCmd.Flags().IntVar(&dsConcurrency, "concurrency", runtime.NumCPU(), "parallel per-fight assembly workers")
}

func runDataset(cmd *cobra.Command, _ []string) error {
	cfg := loadedConfig()
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	asm := matchup.NewAssembler(db, cfg.RecentWindow, cfg.FeatureFields)
	mat := matchup.NewMaterializer(db, asm, dsConcurrency)

	ds, err := mat.Build(cmd.Context())
	if err != nil {
		return fmt.Errorf("build dataset: %w", err)
	}
	if len(ds.Examples) == 0 {
		return fmt.Errorf("no decisive fights stored; run \"ufcpred scrape\" first")
	}

	out := os.Stdout
	if dsOut != "" {
		f, err := os.Create(dsOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", dsOut, err)
		}
		defer f.Close()
		out = f
	}
	if err := ds.WriteCSV(out); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	if dsOut != "" {
		fmt.Fprintf(os.Stderr, "Wrote %d rows x %d columns to %s\n",
			len(ds.Examples), len(ds.Columns), dsOut)
	}
	return nil
}
