// Package predict runs model inference for incoming articles.
package predict

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/DavidFitoussiSf/qconsf-mlops/internal/domain"
	logpkg "github.com/DavidFitoussiSf/qconsf-mlops/internal/logger"
	"github.com/DavidFitoussiSf/qconsf-mlops/internal/metrics"
)

// Service classifies articles through the shared read-only pipeline.
type Service struct {
	pipeline Pipeline
	cache    Cache // nil when caching is disabled
	logger   *zap.Logger
}

// New creates a prediction service.
func New(pipeline Pipeline, logger *zap.Logger) *Service {
	return &Service{pipeline: pipeline, logger: logger}
}

// WithCache attaches an optional prediction cache.
func (s *Service) WithCache(cache Cache) *Service {
	s.cache = cache
	return s
}

// Predict classifies one article: the model consumes title + description,
// source and URL are carried for logging only. Emits one structured record
// per inference with the request, prediction, and latency in milliseconds.
func (s *Service) Predict(ctx context.Context, article domain.Article) (domain.Prediction, error) {
	start := time.Now()

	if !s.pipeline.Trained() {
		metrics.PredictionsTotal.WithLabelValues("", "error").Inc()
		return domain.Prediction{}, domain.ErrNotTrained
	}

	docText := article.DocumentText()

	if s.cache != nil {
		if pred, ok := s.cache.Get(ctx, docText); ok {
			s.logInference(ctx, article, pred, start, true)
			metrics.PredictionsTotal.WithLabelValues(pred.Label, "ok").Inc()
			return pred, nil
		}
	}

	probs, err := s.pipeline.PredictProba(docText)
	if err != nil {
		metrics.PredictionsTotal.WithLabelValues("", "error").Inc()
		return domain.Prediction{}, fmt.Errorf("predict proba: %w", err)
	}

	pred := domain.Prediction{
		Label:  domain.Top(probs),
		Scores: probs,
	}

	if s.cache != nil {
		s.cache.Put(ctx, docText, pred)
	}

	metrics.InferenceDuration.Observe(time.Since(start).Seconds())
	metrics.PredictionsTotal.WithLabelValues(pred.Label, "ok").Inc()
	s.logInference(ctx, article, pred, start, false)

	return pred, nil
}

// Classes returns the label set served by the loaded pipeline.
func (s *Service) Classes() []string {
	return s.pipeline.Classes()
}

func (s *Service) logInference(
	ctx context.Context, article domain.Article, pred domain.Prediction, start time.Time, cacheHit bool,
) {
	// Prefer the per-request logger (carries request_id); fall back to the
	// service logger outside an HTTP request.
	reqLogger := s.logger
	if l := logpkg.FromContext(ctx); l.Core().Enabled(zap.InfoLevel) {
		reqLogger = l
	}
	reqLogger.Info("prediction",
		zap.Time("timestamp", start),
		zap.String("source", article.Source),
		zap.String("url", article.URL),
		zap.String("title", article.Title),
		zap.String("description", article.Description),
		zap.String("label", pred.Label),
		zap.Any("scores", pred.Scores),
		zap.Int64("latency_ms", time.Since(start).Milliseconds()),
		zap.Bool("cache_hit", cacheHit),
	)
}
