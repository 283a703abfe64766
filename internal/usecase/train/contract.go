package train

import "github.com/DavidFitoussiSf/qconsf-mlops/internal/classifier"

// Pipeline is the trainable side of the prediction pipeline.
type Pipeline interface {
	Fit(docs, labels []string, cfg classifier.Config) error
	PredictLabel(doc string) (string, error)
	Classes() []string
	Save(path string) error
}
