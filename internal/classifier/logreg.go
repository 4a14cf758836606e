// Package classifier implements the baseline winner model: logistic
// regression over diff_* features, trained with full-batch gradient descent.
// Training is deterministic for a fixed dataset (no shuffling, fixed
// initialization), matching the pipeline's reproducibility requirement.
package classifier

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"
)

// Model is a trained logistic-regression model plus the feature schema it
// expects. Inputs are standardized with the stored per-feature mean/std.
type Model struct {
	FeatureNames []string  `json:"feature_names"`
	Weights      []float64 `json:"weights"`
	Bias         float64   `json:"bias"`
	Means        []float64 `json:"means"`
	Stds         []float64 `json:"stds"`

	TrainedAt    string  `json:"trained_at"`
	TrainRows    int     `json:"train_rows"`
	Epochs       int     `json:"epochs"`
	LearningRate float64 `json:"learning_rate"`
}

// TrainConfig holds the optimizer settings.
type TrainConfig struct {
	Epochs       int
	LearningRate float64
	L2           float64
}

// DefaultTrainConfig mirrors a max_iter=1000 sklearn baseline closely enough
// for this feature scale.
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{Epochs: 1000, LearningRate: 0.1, L2: 1e-4}
}

// Train fits a model on the given rows. y values must be 0 or 1.
func Train(names []string, x [][]float64, y []int, cfg TrainConfig) (*Model, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("no training rows")
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("%d rows but %d labels", len(x), len(y))
	}
	nFeat := len(names)
	for i, row := range x {
		if len(row) != nFeat {
			return nil, fmt.Errorf("row %d has %d features, schema has %d", i, len(row), nFeat)
		}
	}
	pos := 0
	for _, label := range y {
		if label != 0 && label != 1 {
			return nil, fmt.Errorf("labels must be 0/1, got %d", label)
		}
		pos += label
	}
	if pos == 0 || pos == len(y) {
		return nil, fmt.Errorf("single-class training set (%d/%d positive): cannot fit a binary classifier", pos, len(y))
	}

	means, stds := standardization(x)
	z := make([][]float64, len(x))
	for i, row := range x {
		z[i] = standardize(row, means, stds)
	}

	m := &Model{
		FeatureNames: names,
		Weights:      make([]float64, nFeat),
		Means:        means,
		Stds:         stds,
		TrainedAt:    time.Now().UTC().Format(time.RFC3339),
		TrainRows:    len(x),
		Epochs:       cfg.Epochs,
		LearningRate: cfg.LearningRate,
	}

	n := float64(len(z))
	gradW := make([]float64, nFeat)
	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		for j := range gradW {
			gradW[j] = 0
		}
		gradB := 0.0
		for i, row := range z {
			err := sigmoid(dot(m.Weights, row)+m.Bias) - float64(y[i])
			for j, v := range row {
				gradW[j] += err * v
			}
			gradB += err
		}
		for j := range m.Weights {
			m.Weights[j] -= cfg.LearningRate * (gradW[j]/n + cfg.L2*m.Weights[j])
		}
		m.Bias -= cfg.LearningRate * gradB / n
	}
	return m, nil
}

// PredictProba returns P(label=1) for a raw (unstandardized) feature vector.
func (m *Model) PredictProba(vec []float64) (float64, error) {
	if len(vec) != len(m.Weights) {
		return 0, fmt.Errorf("vector has %d features, model expects %d", len(vec), len(m.Weights))
	}
	z := standardize(vec, m.Means, m.Stds)
	return sigmoid(dot(m.Weights, z) + m.Bias), nil
}

// Metrics summarizes model performance on a labeled set.
type Metrics struct {
	Rows     int
	Accuracy float64
	LogLoss  float64
}

// Evaluate scores the model against labeled rows.
func (m *Model) Evaluate(x [][]float64, y []int) (Metrics, error) {
	if len(x) == 0 {
		return Metrics{}, fmt.Errorf("no evaluation rows")
	}
	correct := 0
	loss := 0.0
	const eps = 1e-12
	for i, row := range x {
		p, err := m.PredictProba(row)
		if err != nil {
			return Metrics{}, err
		}
		pred := 0
		if p >= 0.5 {
			pred = 1
		}
		if pred == y[i] {
			correct++
		}
		if y[i] == 1 {
			loss -= math.Log(math.Max(p, eps))
		} else {
			loss -= math.Log(math.Max(1-p, eps))
		}
	}
	n := float64(len(x))
	return Metrics{
		Rows:     len(x),
		Accuracy: float64(correct) / n,
		LogLoss:  loss / n,
	}, nil
}

// Save writes the model as indented JSON.
func (m *Model) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Load reads a model saved by Save.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse model %s: %w", path, err)
	}
	if len(m.Weights) != len(m.FeatureNames) {
		return nil, fmt.Errorf("model %s: %d weights for %d features", path, len(m.Weights), len(m.FeatureNames))
	}
	return &m, nil
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func dot(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

// standardization computes per-column mean and std; zero-variance columns
// get std 1 so they standardize to 0 instead of dividing by zero.
func standardization(x [][]float64) (means, stds []float64) {
	nFeat := len(x[0])
	means = make([]float64, nFeat)
	stds = make([]float64, nFeat)
	n := float64(len(x))
	for _, row := range x {
		for j, v := range row {
			means[j] += v
		}
	}
	for j := range means {
		means[j] /= n
	}
	for _, row := range x {
		for j, v := range row {
			d := v - means[j]
			stds[j] += d * d
		}
	}
	for j := range stds {
		stds[j] = math.Sqrt(stds[j] / n)
		if stds[j] == 0 {
			stds[j] = 1
		}
	}
	return means, stds
}

func standardize(row, means, stds []float64) []float64 {
	z := make([]float64, len(row))
	for j, v := range row {
		z[j] = (v - means[j]) / stds[j]
	}
	return z
}
