// Package train fits the classification pipeline on a labeled dataset and
// persists the result for the serving process.
package train

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/DavidFitoussiSf/qconsf-mlops/internal/classifier"
)

// Report summarizes a completed training run.
type Report struct {
	Examples         int
	Labels           []string
	TrainingAccuracy float64
	Duration         time.Duration
}

// Service runs offline training.
type Service struct {
	pipeline Pipeline
	logger   *zap.Logger
}

// New creates a training service.
func New(pipeline Pipeline, logger *zap.Logger) *Service {
	return &Service{pipeline: pipeline, logger: logger}
}

// Train fits the pipeline on the dataset, measures training accuracy, and
// saves the fitted pipeline to outPath.
func (s *Service) Train(ctx context.Context, ds Dataset, cfg classifier.Config, outPath string) (Report, error) {
	start := time.Now()

	s.logger.Info("Starting training run",
		zap.Int("examples", ds.Len()),
		zap.String("output", outPath),
	)

	if err := s.pipeline.Fit(ds.Docs, ds.Labels, cfg); err != nil {
		return Report{}, fmt.Errorf("fit pipeline: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	accuracy, err := s.trainingAccuracy(ds)
	if err != nil {
		return Report{}, err
	}

	if err := s.pipeline.Save(outPath); err != nil {
		return Report{}, fmt.Errorf("save pipeline: %w", err)
	}

	report := Report{
		Examples:         ds.Len(),
		Labels:           s.pipeline.Classes(),
		TrainingAccuracy: accuracy,
		Duration:         time.Since(start),
	}

	s.logger.Info("Training run complete",
		zap.Int("examples", report.Examples),
		zap.Strings("labels", report.Labels),
		zap.Float64("training_accuracy", report.TrainingAccuracy),
		zap.Duration("duration", report.Duration),
	)

	return report, nil
}

func (s *Service) trainingAccuracy(ds Dataset) (float64, error) {
	correct := 0
	for i, doc := range ds.Docs {
		label, err := s.pipeline.PredictLabel(doc)
		if err != nil {
			return 0, fmt.Errorf("evaluate example %d: %w", i, err)
		}
		if label == ds.Labels[i] {
			correct++
		}
	}
	return float64(correct) / float64(ds.Len()), nil
}
