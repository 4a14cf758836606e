package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/a-bakhtine/UFC-predictor/internal/classifier"
	"github.com/a-bakhtine/UFC-predictor/internal/matchup"
)

var (
	trainOut      string
	trainEpochs   int
	trainLR       float64
	trainTestFrac float64
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the baseline winner model on stored fights",
	Long: `Materialize the matchup dataset, split it chronologically into train and
test portions, fit a logistic-regression model on the diff features, report
held-out accuracy and log-loss, and save the model as JSON.

The split is by time, not at random: the test portion is the most recent
fights, so evaluation never scores a model on fights older than its training
data. Mirror pairs always land on the same side of the split.

Example:
  ufcpred train --out model.json`,
	Args: cobra.NoArgs,
	RunE: runTrain,
}

func init() {
	defaultModel := filepath.Join(filepath.Dir(loadedConfig().DBPath), "model.json")
	trainCmd.Flags().StringVar(&trainOut, "out", defaultModel, "model output path")
	trainCmd.Flags().IntVar(&trainEpochs, "epochs", classifier.DefaultTrainConfig().Epochs, "gradient-descent epochs")
	trainCmd.Flags().Float64Var(&trainLR, "lr", classifier.DefaultTrainConfig().LearningRate, "learning rate")
	trainCmd.Flags().Float64Var(&trainTestFrac, "test-frac", 0.2, "fraction of most-recent rows held out for evaluation")
}

func runTrain(cmd *cobra.Command, _ []string) error {
	if trainTestFrac < 0 || trainTestFrac >= 1 {
		return fmt.Errorf("test-frac must be in [0, 1)")
	}

	cfg := loadedConfig()
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	asm := matchup.NewAssembler(db, cfg.RecentWindow, cfg.FeatureFields)
	mat := matchup.NewMaterializer(db, asm, runtime.NumCPU())

	ds, err := mat.Build(cmd.Context())
	if err != nil {
		return fmt.Errorf("build dataset: %w", err)
	}
	names, x, y := ds.DiffMatrix()
	if len(x) == 0 {
		return fmt.Errorf("no decisive fights stored; run \"ufcpred scrape\" first")
	}

	// Rows are in (event date, fight id, mirror) order and mirrors are
	// adjacent, so an even split index keeps each pair on one side.
	split := len(x) - int(float64(len(x))*trainTestFrac)
	if split%2 != 0 {
		split--
	}
	if split < 2 {
		return fmt.Errorf("only %d rows: not enough to train", len(x))
	}

	trainCfg := classifier.TrainConfig{
		Epochs:       trainEpochs,
		LearningRate: trainLR,
		L2:           classifier.DefaultTrainConfig().L2,
	}
	clf, err := classifier.Train(names, x[:split], y[:split], trainCfg)
	if err != nil {
		return fmt.Errorf("train: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Trained on %d rows (%d features, %d epochs)\n",
		split, len(names), trainEpochs)

	if split < len(x) {
		metrics, err := clf.Evaluate(x[split:], y[split:])
		if err != nil {
			return fmt.Errorf("evaluate: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Held-out (most recent %d rows): accuracy %.3f, log-loss %.3f\n",
			metrics.Rows, metrics.Accuracy, metrics.LogLoss)
	}

	if dir := filepath.Dir(trainOut); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create model directory: %w", err)
		}
	}
	if err := clf.Save(trainOut); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Saved model to %s\n", trainOut)
	return nil
}
