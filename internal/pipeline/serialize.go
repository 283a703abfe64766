package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/DavidFitoussiSf/qconsf-mlops/internal/classifier"
	"github.com/DavidFitoussiSf/qconsf-mlops/internal/domain"
	"github.com/DavidFitoussiSf/qconsf-mlops/internal/embedding"
)

// formatVersion guards against loading blobs written by an incompatible build.
const formatVersion = 1

// blob is the on-disk representation of a fitted pipeline: featurizer config
// plus classifier parameters and the learned label set. The word-vector table
// itself is not embedded; it is reloaded from its own file and validated
// against Dimensions at load time.
type blob struct {
	Version    int         `json:"version"`
	Dimensions int         `json:"dimensions"`
	Labels     []string    `json:"labels"`
	Weights    [][]float64 `json:"weights"`
	Intercepts []float64   `json:"intercepts"`
}

// Save serializes the fitted pipeline to path. Fails if the pipeline has not
// been trained.
func (p *Pipeline) Save(path string) error {
	if !p.Trained() {
		return domain.ErrNotTrained
	}

	b := blob{
		Version:    formatVersion,
		Dimensions: p.clf.Dim(),
		Labels:     p.clf.Classes(),
		Weights:    p.clf.Weights(),
		Intercepts: p.clf.Intercepts(),
	}

	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshal pipeline: %w", err)
	}
	if err := os.WriteFile(filepath.Clean(path), data, 0o600); err != nil {
		return fmt.Errorf("write pipeline: %w", err)
	}
	return nil
}

// Load deserializes a fitted pipeline from path, binding it to the given
// word-vector table. Errors are propagated, never swallowed: a missing file,
// malformed JSON, or a blob whose shape disagrees with the table all fail.
func Load(path string, table *embedding.Table) (*Pipeline, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read pipeline: %w", err)
	}

	var b blob
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrModelIncompatible, err)
	}
	if b.Version != formatVersion {
		return nil, fmt.Errorf("%w: format version %d, expected %d", domain.ErrModelIncompatible, b.Version, formatVersion)
	}
	if b.Dimensions != table.Dim() {
		return nil, fmt.Errorf("%w: pipeline dimension %d, word-vector table dimension %d",
			domain.ErrModelIncompatible, b.Dimensions, table.Dim())
	}

	clf, err := classifier.Reconstruct(b.Labels, b.Weights, b.Intercepts, b.Dimensions)
	if err != nil {
		return nil, fmt.Errorf("reconstruct classifier: %w", err)
	}

	return &Pipeline{
		feat: embedding.NewFeaturizer(table),
		clf:  clf,
	}, nil
}
