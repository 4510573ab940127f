package reccache

import (
	"context"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Dai-S2/PI---1-MLOps/internal/db"
	"github.com/Dai-S2/PI---1-MLOps/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterRecommendMetrics()
	os.Exit(m.Run())
}

type mockRecommender struct {
	titles []string
	err    error
	calls  int
}

func (m *mockRecommender) Recommend(_ context.Context, _ string) ([]string, error) {
	m.calls++
	return m.titles, m.err
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn    func(ctx context.Context, key string) ([]byte, error)
	setFn    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	getCalls int
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.getCalls++
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func newTestCachedRecommender(t *testing.T, inner *mockRecommender) (*CachedRecommender, *mockKVStore) {
	t.Helper()
	ms := &mockKVStore{}
	cfg := Config{TTL: time.Hour, FailureThreshold: 2, OpenTimeout: time.Minute}
	return New(inner, ms, 0xabc, cfg, zap.NewNop()), ms
}
