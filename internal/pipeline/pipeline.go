// Package pipeline composes the word-vector featurizer and the softmax
// classifier into one trainable, persistable unit.
package pipeline

import (
	"fmt"

	"github.com/DavidFitoussiSf/qconsf-mlops/internal/classifier"
	"github.com/DavidFitoussiSf/qconsf-mlops/internal/domain"
	"github.com/DavidFitoussiSf/qconsf-mlops/internal/embedding"
)

// Pipeline owns the featurizer (with its word-vector table reference) and the
// classifier parameters. Fit is the only mutation point; after Fit or Load
// the pipeline is read-only and safe for concurrent predict calls.
type Pipeline struct {
	feat *embedding.Featurizer
	clf  *classifier.Softmax
}

// New creates an untrained pipeline over a loaded word-vector table.
func New(table *embedding.Table) *Pipeline {
	return &Pipeline{
		feat: embedding.NewFeaturizer(table),
		clf:  &classifier.Softmax{},
	}
}

// Fit featurizes all documents and trains the classifier on the resulting
// (feature vector, label) pairs.
func (p *Pipeline) Fit(docs, labels []string, cfg classifier.Config) error {
	if len(docs) == 0 {
		return domain.ErrEmptyTrainingSet
	}
	if len(docs) != len(labels) {
		return fmt.Errorf("%w: %d documents, %d labels", domain.ErrLengthMismatch, len(docs), len(labels))
	}

	features := p.feat.Transform(docs)
	if err := p.clf.Fit(features, labels, cfg); err != nil {
		return fmt.Errorf("fit classifier: %w", err)
	}
	return nil
}

// PredictLabel returns the single highest-probability label for one document.
func (p *Pipeline) PredictLabel(doc string) (string, error) {
	label, err := p.clf.Predict(p.feat.TransformOne(doc))
	if err != nil {
		return "", fmt.Errorf("predict: %w", err)
	}
	return label, nil
}

// PredictProba returns the probability distribution over the trained label
// set for one document.
func (p *Pipeline) PredictProba(doc string) (map[string]float64, error) {
	probs, err := p.clf.PredictProba(p.feat.TransformOne(doc))
	if err != nil {
		return nil, fmt.Errorf("predict proba: %w", err)
	}
	return probs, nil
}

// Classes returns the trained label set in canonical order.
func (p *Pipeline) Classes() []string { return p.clf.Classes() }

// Trained reports whether the pipeline can serve predictions.
func (p *Pipeline) Trained() bool { return p.clf.Trained() }

// Dim returns the feature vector dimension.
func (p *Pipeline) Dim() int { return p.feat.Dim() }
