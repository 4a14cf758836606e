package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/a-bakhtine/UFC-predictor/internal/features"
	"github.com/a-bakhtine/UFC-predictor/internal/model"
	"github.com/a-bakhtine/UFC-predictor/internal/report"
)

var profileDate string

var profileCmd = &cobra.Command{
	Use:   "profile <fighter>",
	Short: "Show a fighter's aggregated career and recent-form profile",
	Long: `Compute a fighter's point-in-time profile from stored fights strictly
before the as-of date.

Example:
  ufcpred profile "Alexander Volkanovski" --date 2023-02-12`,
	Args: cobra.ExactArgs(1),
	RunE: runProfile,
}

func init() {
	profileCmd.Flags().StringVar(&profileDate, "date", "", "as-of date YYYY-MM-DD (default: now)")
}

func runProfile(_ *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	f, err := resolveFighter(db, args[0])
	if err != nil {
		return err
	}
	asOf, err := parseAsOf(profileDate)
	if err != nil {
		return err
	}

	agg := features.New(db)
	career, err := agg.Profile(f.ID, asOf, model.Career)
	if err != nil {
		return err
	}
	recent, err := agg.Profile(f.ID, asOf, model.LastN(loadedConfig().RecentWindow))
	if err != nil {
		return err
	}

	report.PrintProfiles(os.Stdout, *f, career, recent)
	return nil
}
