// Package classifier implements multinomial logistic regression over a fixed
// label set, trained by full-batch gradient descent.
package classifier

import (
	"fmt"
	"math"
	"sort"

	"github.com/DavidFitoussiSf/qconsf-mlops/internal/domain"
)

// Config holds the gradient descent solver settings.
type Config struct {
	LearningRate float64
	Tolerance    float64
	MaxEpochs    int
	L2           float64
}

func (c Config) withDefaults() Config {
	if c.LearningRate <= 0 {
		c.LearningRate = 0.1
	}
	if c.Tolerance <= 0 {
		c.Tolerance = 0.001
	}
	if c.MaxEpochs <= 0 {
		c.MaxEpochs = 500
	}
	return c
}

// Softmax is a multinomial logistic regression model. The zero value is an
// untrained model; Fit or Reconstruct must run before any predict call.
// After training the model is read-only and safe for concurrent use.
type Softmax struct {
	labels     []string    // canonical (sorted) order, fixed after fit
	weights    [][]float64 // [len(labels)][dim]
	intercepts []float64   // [len(labels)]
	dim        int
}

// Fit trains the model on (feature vector, label) pairs. The label set becomes
// the sorted distinct labels seen in training. Training is deterministic:
// zero initialization, full-batch updates, fixed iteration order.
func (m *Softmax) Fit(features [][]float32, labels []string, cfg Config) error {
	if len(features) == 0 {
		return domain.ErrEmptyTrainingSet
	}
	if len(features) != len(labels) {
		return fmt.Errorf("%w: %d features, %d labels", domain.ErrLengthMismatch, len(features), len(labels))
	}

	dim := len(features[0])
	for i, f := range features {
		if len(f) != dim {
			return fmt.Errorf("%w: feature %d has %d components, expected %d", domain.ErrDimensionMismatch, i, len(f), dim)
		}
	}

	classes := distinctSorted(labels)
	classIdx := make(map[string]int, len(classes))
	for i, c := range classes {
		classIdx[c] = i
	}

	n := len(features)
	k := len(classes)

	x := make([][]float64, n)
	y := make([]int, n)
	for i := range features {
		x[i] = toFloat64(features[i])
		y[i] = classIdx[labels[i]]
	}

	cfg = cfg.withDefaults()
	weights := make([][]float64, k)
	for c := range weights {
		weights[c] = make([]float64, dim)
	}
	intercepts := make([]float64, k)

	gradW := make([][]float64, k)
	for c := range gradW {
		gradW[c] = make([]float64, dim)
	}
	gradB := make([]float64, k)

	prevLoss := math.Inf(1)
	for epoch := 0; epoch < cfg.MaxEpochs; epoch++ {
		for c := range gradW {
			clear(gradW[c])
		}
		clear(gradB)

		loss := 0.0
		for i := range x {
			probs := softmax(logits(x[i], weights, intercepts))
			loss -= math.Log(math.Max(probs[y[i]], 1e-300))

			for c := range probs {
				delta := probs[c]
				if c == y[i] {
					delta -= 1
				}
				for j, v := range x[i] {
					gradW[c][j] += delta * v
				}
				gradB[c] += delta
			}
		}
		loss /= float64(n)

		if cfg.L2 > 0 {
			for c := range weights {
				for _, w := range weights[c] {
					loss += cfg.L2 * w * w / (2 * float64(n))
				}
			}
		}

		inv := 1 / float64(n)
		for c := range weights {
			for j := range weights[c] {
				g := gradW[c][j] * inv
				if cfg.L2 > 0 {
					g += cfg.L2 * weights[c][j] * inv
				}
				weights[c][j] -= cfg.LearningRate * g
			}
			intercepts[c] -= cfg.LearningRate * gradB[c] * inv
		}

		if math.Abs(prevLoss-loss) < cfg.Tolerance {
			break
		}
		prevLoss = loss
	}

	m.labels = classes
	m.weights = weights
	m.intercepts = intercepts
	m.dim = dim
	return nil
}

// PredictProba returns the probability distribution over the trained label
// set for one feature vector. Values are non-negative and sum to 1.
func (m *Softmax) PredictProba(x []float32) (map[string]float64, error) {
	if !m.Trained() {
		return nil, domain.ErrNotTrained
	}
	if len(x) != m.dim {
		return nil, fmt.Errorf("%w: got %d components, expected %d", domain.ErrDimensionMismatch, len(x), m.dim)
	}

	probs := softmax(logits(toFloat64(x), m.weights, m.intercepts))
	out := make(map[string]float64, len(m.labels))
	for i, label := range m.labels {
		out[label] = probs[i]
	}
	return out, nil
}

// Predict returns the highest-probability label for one feature vector.
func (m *Softmax) Predict(x []float32) (string, error) {
	probs, err := m.PredictProba(x)
	if err != nil {
		return "", err
	}
	return domain.Top(probs), nil
}

// Classes returns the trained label set in canonical order.
func (m *Softmax) Classes() []string {
	out := make([]string, len(m.labels))
	copy(out, m.labels)
	return out
}

// Trained reports whether the model has parameters.
func (m *Softmax) Trained() bool { return len(m.labels) > 0 }

// Dim returns the expected feature dimension.
func (m *Softmax) Dim() int { return m.dim }

// Weights returns the learned weight matrix, one row per label.
func (m *Softmax) Weights() [][]float64 { return m.weights }

// Intercepts returns the learned intercepts, one per label.
func (m *Softmax) Intercepts() []float64 { return m.intercepts }

// Reconstruct builds a trained model from persisted parameters.
func Reconstruct(labels []string, weights [][]float64, intercepts []float64, dim int) (*Softmax, error) {
	if len(labels) == 0 || dim <= 0 {
		return nil, fmt.Errorf("%w: empty label set or non-positive dimension", domain.ErrModelIncompatible)
	}
	if len(weights) != len(labels) || len(intercepts) != len(labels) {
		return nil, fmt.Errorf("%w: %d labels, %d weight rows, %d intercepts",
			domain.ErrModelIncompatible, len(labels), len(weights), len(intercepts))
	}
	for i, row := range weights {
		if len(row) != dim {
			return nil, fmt.Errorf("%w: weight row %d has %d components, expected %d",
				domain.ErrModelIncompatible, i, len(row), dim)
		}
	}
	return &Softmax{labels: labels, weights: weights, intercepts: intercepts, dim: dim}, nil
}

func logits(x []float64, weights [][]float64, intercepts []float64) []float64 {
	out := make([]float64, len(weights))
	for c, row := range weights {
		sum := intercepts[c]
		for j, w := range row {
			sum += w * x[j]
		}
		out[c] = sum
	}
	return out
}

// softmax computes a numerically stable softmax in place.
func softmax(z []float64) []float64 {
	maxZ := z[0]
	for _, v := range z[1:] {
		if v > maxZ {
			maxZ = v
		}
	}
	sum := 0.0
	for i, v := range z {
		e := math.Exp(v - maxZ)
		z[i] = e
		sum += e
	}
	for i := range z {
		z[i] /= sum
	}
	return z
}

func distinctSorted(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	var out []string
	for _, l := range labels {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = float64(f)
	}
	return out
}
