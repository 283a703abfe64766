// Package predcache caches predictions in a key-value store, keyed by a hash
// of the document text. Entries expire after a configurable TTL.
package predcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/DavidFitoussiSf/qconsf-mlops/internal/db"
	"github.com/DavidFitoussiSf/qconsf-mlops/internal/domain"
)

const cacheKeyPrefix = "newsclassifier:pred_cache:"

// store is the consumer interface for the prediction cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Cache stores predictions in a key-value store. Store failures degrade to a
// cache miss, never to a request failure.
type Cache struct {
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a prediction cache.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(s store, ttl time.Duration, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *Cache {
	return &Cache{
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Get returns the cached prediction for the document text, if present.
func (c *Cache) Get(ctx context.Context, docText string) (domain.Prediction, bool) {
	key := c.cacheKey(docText)

	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached prediction", zap.String("key", key), zap.Error(err))
		}
		c.incCache("miss")
		return domain.Prediction{}, false
	}

	var pred domain.Prediction
	if err := json.Unmarshal(data, &pred); err != nil {
		c.logger.Warn("Failed to parse cached prediction", zap.String("key", key), zap.Error(err))
		c.incCache("miss")
		return domain.Prediction{}, false
	}

	c.incCache("hit")
	return pred, true
}

// Put stores a prediction for the document text.
func (c *Cache) Put(ctx context.Context, docText string, pred domain.Prediction) {
	data, err := json.Marshal(pred)
	if err != nil {
		c.logger.Warn("Failed to marshal prediction for cache", zap.Error(err))
		return
	}
	key := c.cacheKey(docText)
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache prediction", zap.String("key", key), zap.Error(err))
	}
}

func (c *Cache) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *Cache) cacheKey(docText string) string {
	h := sha256.Sum256([]byte(docText))
	return cacheKeyPrefix + hex.EncodeToString(h[:])
}
