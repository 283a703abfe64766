package predict

import (
	"context"

	"github.com/DavidFitoussiSf/qconsf-mlops/internal/domain"
)

// Pipeline serves predictions from a fitted model.
type Pipeline interface {
	PredictProba(doc string) (map[string]float64, error)
	Classes() []string
	Trained() bool
}

// Cache stores predictions keyed by document text.
type Cache interface {
	Get(ctx context.Context, docText string) (domain.Prediction, bool)
	Put(ctx context.Context, docText string, pred domain.Prediction)
}
