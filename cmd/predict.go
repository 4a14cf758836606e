package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/a-bakhtine/UFC-predictor/internal/classifier"
	"github.com/a-bakhtine/UFC-predictor/internal/matchup"
	"github.com/a-bakhtine/UFC-predictor/internal/model"
	"github.com/a-bakhtine/UFC-predictor/internal/report"
)

var (
	predictModel string
	predictDate  string
)

var predictCmd = &cobra.Command{
	Use:   "predict <fighter1> <fighter2>",
	Short: "Predict the winner of a hypothetical matchup",
	Long: `Resolve both fighters by id or name fragment, build their current
profiles from stored fights, and score the matchup with a trained model.

Example:
  ufcpred predict "Jon Jones" "Stipe Miocic"`,
	Args: cobra.ExactArgs(2),
	RunE: runPredict,
}

func init() {
	defaultModel := filepath.Join(filepath.Dir(loadedConfig().DBPath), "model.json")
	predictCmd.Flags().StringVar(&predictModel, "model", defaultModel, "trained model path")
	predictCmd.Flags().StringVar(&predictDate, "date", "", "as-of date YYYY-MM-DD (default: now)")
}

func runPredict(_ *cobra.Command, args []string) error {
	clf, err := classifier.Load(predictModel)
	if err != nil {
		return fmt.Errorf("load model (run \"ufcpred train\" first): %w", err)
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	f1, err := resolveFighter(db, args[0])
	if err != nil {
		return err
	}
	f2, err := resolveFighter(db, args[1])
	if err != nil {
		return err
	}
	if f1.ID == f2.ID {
		return fmt.Errorf("both terms resolve to %s", f1.Name)
	}

	asOf, err := parseAsOf(predictDate)
	if err != nil {
		return err
	}

	cfg := loadedConfig()
	asm := matchup.NewAssembler(db, cfg.RecentWindow, cfg.FeatureFields)
	ref := model.FightRecord{EventDate: asOf}
	side1, err := asm.SideFeatures(f1.ID, ref)
	if err != nil {
		return err
	}
	side2, err := asm.SideFeatures(f2.ID, ref)
	if err != nil {
		return err
	}

	vec, err := diffVector(clf.FeatureNames, side1, side2)
	if err != nil {
		return err
	}
	prob, err := clf.PredictProba(vec)
	if err != nil {
		return err
	}

	report.PrintPrediction(os.Stdout, *f1, *f2, prob)
	return nil
}

// diffVector computes side1 - side2 in the model's own feature order. A
// feature the model expects but the sides lack means the model was trained
// under a different feature configuration and cannot score this matchup.
func diffVector(featureNames []string, side1, side2 []model.Feature) ([]float64, error) {
	diffs := make(map[string]float64, len(side1))
	for i := range side1 {
		if i >= len(side2) || side1[i].Name != side2[i].Name {
			return nil, fmt.Errorf("sides disagree on feature schema: %w", matchup.ErrSchemaDrift)
		}
		diffs["diff_"+side1[i].Name] = side1[i].Value - side2[i].Value
	}

	vec := make([]float64, len(featureNames))
	for i, name := range featureNames {
		v, ok := diffs[name]
		if !ok {
			return nil, fmt.Errorf("model expects feature %q not present in current configuration", name)
		}
		vec[i] = v
	}
	return vec, nil
}
