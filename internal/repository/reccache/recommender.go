// Package reccache caches recommendation lists in a key-value store behind
// a circuit breaker. Cache failures never fail a request.
package reccache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/Dai-S2/PI---1-MLOps/internal/db"
	"github.com/Dai-S2/PI---1-MLOps/internal/domain"
	"github.com/Dai-S2/PI---1-MLOps/internal/metrics"
)

const cacheKeyPrefix = "movies:rec:"

// store is the consumer interface for the recommendation cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Config tunes the cache entry lifetime and the circuit breaker.
type Config struct {
	TTL              time.Duration
	FailureThreshold uint32        // consecutive failures that open the breaker
	OpenTimeout      time.Duration // time spent open before a trial request
}

// DefaultConfig returns a one-day TTL and a breaker that opens after five
// consecutive failures for thirty seconds.
func DefaultConfig() Config {
	return Config{TTL: 24 * time.Hour, FailureThreshold: 5, OpenTimeout: 30 * time.Second}
}

// CachedRecommender caches recommendations of an inner recommender.
// Entries are namespaced by the index fingerprint, so a rebuilt corpus
// never serves stale lists.
type CachedRecommender struct {
	inner     domain.Recommender
	store     store
	namespace string
	ttl       time.Duration
	breaker   *gobreaker.CircuitBreaker[[]byte]
	logger    *zap.Logger
}

// New creates a caching decorator.
func New(
	inner domain.Recommender,
	s store,
	fingerprint uint64,
	cfg Config,
	logger *zap.Logger,
) *CachedRecommender {
	def := DefaultConfig()
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = def.OpenTimeout
	}

	c := &CachedRecommender{
		inner:     inner,
		store:     s,
		namespace: cacheKeyPrefix + strconv.FormatUint(fingerprint, 16) + ":",
		ttl:       cfg.TTL,
		logger:    logger,
	}
	c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "recommend-cache",
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, db.ErrKeyNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.RecommendCacheBreakerState.Set(breakerStateValue(to))
			logger.Warn("Cache circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return c
}

// Recommend returns a cached list or calls the inner recommender.
// Errors from the inner recommender are never cached.
func (c *CachedRecommender) Recommend(ctx context.Context, title string) ([]string, error) {
	key := c.cacheKey(title)

	if titles, ok := c.getFromCache(ctx, key); ok {
		return titles, nil
	}

	titles, err := c.inner.Recommend(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}

	c.putToCache(ctx, key, titles)
	return titles, nil
}

// State reports the circuit breaker state.
func (c *CachedRecommender) State() gobreaker.State {
	return c.breaker.State()
}

func (c *CachedRecommender) cacheKey(title string) string {
	return c.namespace + strconv.FormatUint(xxhash.Sum64String(title), 16)
}

func (c *CachedRecommender) getFromCache(ctx context.Context, key string) ([]string, bool) {
	data, err := c.breaker.Execute(func() ([]byte, error) {
		return c.store.Get(ctx, key)
	})
	switch {
	case err == nil:
	case errors.Is(err, db.ErrKeyNotFound):
		incCache("miss")
		return nil, false
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		incCache("open")
		return nil, false
	default:
		incCache("error")
		c.logger.Warn("Failed to get cached recommendation", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	var titles []string
	if err := json.Unmarshal(data, &titles); err != nil {
		incCache("error")
		c.logger.Warn("Failed to parse cached recommendation", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	incCache("hit")
	return titles, true
}

func (c *CachedRecommender) putToCache(ctx context.Context, key string, titles []string) {
	data, err := json.Marshal(titles)
	if err != nil {
		c.logger.Warn("Failed to encode recommendation", zap.String("key", key), zap.Error(err))
		return
	}
	_, err = c.breaker.Execute(func() ([]byte, error) {
		return nil, c.store.SetWithTTL(ctx, key, data, c.ttl)
	})
	if err != nil && !errors.Is(err, gobreaker.ErrOpenState) {
		c.logger.Warn("Failed to cache recommendation", zap.String("key", key), zap.Error(err))
	}
}

func incCache(result string) {
	metrics.RecommendCacheTotal.WithLabelValues(result).Inc()
}

func breakerStateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
