package classifier

import (
	"math"
	"path/filepath"
	"strings"
	"testing"
)

// separable builds a trivially separable 1-feature set: positive x means
// label 1.
func separable() ([]string, [][]float64, []int) {
	names := []string{"diff_career_win_rate"}
	var x [][]float64
	var y []int
	for i := 1; i <= 20; i++ {
		v := float64(i) / 10
		x = append(x, []float64{v}, []float64{-v})
		y = append(y, 1, 0)
	}
	return names, x, y
}

func TestTrainLearnsSeparableData(t *testing.T) {
	names, x, y := separable()
	m, err := Train(names, x, y, DefaultTrainConfig())
	if err != nil {
		t.Fatalf("Train: %v", err)
	}

	metrics, err := m.Evaluate(x, y)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if metrics.Accuracy < 0.99 {
		t.Errorf("accuracy %.3f on separable data", metrics.Accuracy)
	}
	if metrics.LogLoss > 0.5 {
		t.Errorf("log-loss %.3f too high", metrics.LogLoss)
	}

	pHigh, err := m.PredictProba([]float64{2.0})
	if err != nil {
		t.Fatalf("PredictProba: %v", err)
	}
	pLow, _ := m.PredictProba([]float64{-2.0})
	if pHigh <= 0.5 || pLow >= 0.5 {
		t.Errorf("p(+2)=%.3f p(-2)=%.3f, want >0.5 and <0.5", pHigh, pLow)
	}
}

func TestTrainDeterministic(t *testing.T) {
	names, x, y := separable()
	m1, err := Train(names, x, y, DefaultTrainConfig())
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	m2, err := Train(names, x, y, DefaultTrainConfig())
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	for i := range m1.Weights {
		if m1.Weights[i] != m2.Weights[i] {
			t.Errorf("weight %d differs across identical runs", i)
		}
	}
	if m1.Bias != m2.Bias {
		t.Error("bias differs across identical runs")
	}
}

func TestTrainRejectsBadInput(t *testing.T) {
	names := []string{"a"}

	if _, err := Train(names, nil, nil, DefaultTrainConfig()); err == nil {
		t.Error("expected error for empty training set")
	}

	// Single class.
	_, err := Train(names, [][]float64{{1}, {2}}, []int{1, 1}, DefaultTrainConfig())
	if err == nil || !strings.Contains(err.Error(), "single-class") {
		t.Errorf("expected single-class error, got %v", err)
	}

	// Ragged row.
	_, err = Train(names, [][]float64{{1, 2}}, []int{1}, DefaultTrainConfig())
	if err == nil {
		t.Error("expected error for row/schema width mismatch")
	}

	// Bad label.
	_, err = Train(names, [][]float64{{1}, {2}}, []int{1, 2}, DefaultTrainConfig())
	if err == nil {
		t.Error("expected error for non-binary label")
	}
}

func TestZeroVarianceFeature(t *testing.T) {
	names := []string{"informative", "constant"}
	x := [][]float64{{1, 5}, {-1, 5}, {2, 5}, {-2, 5}}
	y := []int{1, 0, 1, 0}

	m, err := Train(names, x, y, DefaultTrainConfig())
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	p, err := m.PredictProba([]float64{3, 5})
	if err != nil {
		t.Fatalf("PredictProba: %v", err)
	}
	if math.IsNaN(p) || math.IsInf(p, 0) {
		t.Fatalf("constant column produced p=%v", p)
	}
	if p <= 0.5 {
		t.Errorf("p=%.3f, want >0.5 for positive informative feature", p)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	names, x, y := separable()
	m, err := Train(names, x, y, DefaultTrainConfig())
	if err != nil {
		t.Fatalf("Train: %v", err)
	}

	path := filepath.Join(t.TempDir(), "model.json")
	if err := m.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.FeatureNames) != 1 || loaded.FeatureNames[0] != names[0] {
		t.Errorf("feature names lost: %v", loaded.FeatureNames)
	}

	p1, _ := m.PredictProba([]float64{0.7})
	p2, err := loaded.PredictProba([]float64{0.7})
	if err != nil {
		t.Fatalf("PredictProba after load: %v", err)
	}
	if p1 != p2 {
		t.Errorf("prediction drifted through save/load: %g vs %g", p1, p2)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing model file")
	}
}

func TestPredictProbaDimensionCheck(t *testing.T) {
	names, x, y := separable()
	m, err := Train(names, x, y, DefaultTrainConfig())
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	if _, err := m.PredictProba([]float64{1, 2}); err == nil {
		t.Error("expected error for wrong vector width")
	}
}
