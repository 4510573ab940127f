package reccache

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/Dai-S2/PI---1-MLOps/internal/db"
	"github.com/Dai-S2/PI---1-MLOps/internal/domain"
)

func TestRecommend_CacheMiss(t *testing.T) {
	inner := &mockRecommender{titles: []string{"Toy Story 2", "Jumanji"}}
	c, ms := newTestCachedRecommender(t, inner)

	var setKey string
	var setValue []byte
	var setTTL time.Duration
	ms.setFn = func(_ context.Context, key string, value []byte, ttl time.Duration) error {
		setKey, setValue, setTTL = key, value, ttl
		return nil
	}

	got, err := c.Recommend(context.Background(), "Toy Story")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, inner.titles) {
		t.Errorf("got %v", got)
	}
	if !strings.HasPrefix(setKey, "movies:rec:abc:") {
		t.Errorf("key %q not namespaced by fingerprint", setKey)
	}
	if string(setValue) != `["Toy Story 2","Jumanji"]` {
		t.Errorf("cached value = %s", setValue)
	}
	if setTTL != time.Hour {
		t.Errorf("ttl = %v", setTTL)
	}
}

func TestRecommend_CacheHit(t *testing.T) {
	inner := &mockRecommender{titles: []string{"inner"}}
	c, ms := newTestCachedRecommender(t, inner)

	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return []byte(`["Heat","Casino"]`), nil
	}

	got, err := c.Recommend(context.Background(), "Toy Story")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"Heat", "Casino"}) {
		t.Errorf("expected cached titles, got %v", got)
	}
	if inner.calls != 0 {
		t.Errorf("inner called %d times on a hit", inner.calls)
	}
}

func TestRecommend_InnerErrorNotCached(t *testing.T) {
	inner := &mockRecommender{err: domain.NewSubjectError(domain.ErrMovieNotIndexed, "Nope")}
	c, ms := newTestCachedRecommender(t, inner)

	setCalled := false
	ms.setFn = func(_ context.Context, _ string, _ []byte, _ time.Duration) error {
		setCalled = true
		return nil
	}

	_, err := c.Recommend(context.Background(), "Nope")
	if !errors.Is(err, domain.ErrMovieNotIndexed) {
		t.Fatalf("expected ErrMovieNotIndexed, got %v", err)
	}
	if domain.SubjectOf(err) != "Nope" {
		t.Errorf("subject lost through the decorator: %q", domain.SubjectOf(err))
	}
	if setCalled {
		t.Error("errors must not be cached")
	}
}

func TestRecommend_StoreErrorFallsBack(t *testing.T) {
	inner := &mockRecommender{titles: []string{"Heat"}}
	c, ms := newTestCachedRecommender(t, inner)

	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return nil, &db.Error{Op: db.OpGet, Err: errors.New("connection refused")}
	}

	got, err := c.Recommend(context.Background(), "Toy Story")
	if err != nil {
		t.Fatalf("cache failure must not fail the request: %v", err)
	}
	if inner.calls != 1 || len(got) != 1 {
		t.Errorf("expected inner result, got %v after %d calls", got, inner.calls)
	}
}

func TestRecommend_CorruptEntryFallsBack(t *testing.T) {
	inner := &mockRecommender{titles: []string{"Heat"}}
	c, ms := newTestCachedRecommender(t, inner)

	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return []byte("not json"), nil
	}

	got, err := c.Recommend(context.Background(), "Toy Story")
	if err != nil || inner.calls != 1 || got[0] != "Heat" {
		t.Errorf("expected fallback to inner, got %v, %v", got, err)
	}
}

func TestRecommend_BreakerOpensAndSkipsStore(t *testing.T) {
	inner := &mockRecommender{titles: []string{"Heat"}}
	c, ms := newTestCachedRecommender(t, inner)

	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return nil, errors.New("timeout")
	}
	ms.setFn = func(_ context.Context, _ string, _ []byte, _ time.Duration) error {
		return errors.New("timeout")
	}

	// One Get and one Set failure per request; the threshold is 2.
	if _, err := c.Recommend(context.Background(), "Toy Story"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.State() != gobreaker.StateOpen {
		t.Fatalf("expected open breaker, got %v", c.State())
	}

	callsBefore := ms.getCalls
	if _, err := c.Recommend(context.Background(), "Toy Story"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ms.getCalls != callsBefore {
		t.Error("store should not be called while the breaker is open")
	}
	if inner.calls != 2 {
		t.Errorf("inner calls = %d, want 2", inner.calls)
	}
}

func TestRecommend_MissesDoNotTripBreaker(t *testing.T) {
	inner := &mockRecommender{titles: []string{"Heat"}}
	c, _ := newTestCachedRecommender(t, inner)

	for i := 0; i < 5; i++ {
		if _, err := c.Recommend(context.Background(), "Toy Story"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if c.State() != gobreaker.StateClosed {
		t.Errorf("cache misses must not open the breaker, state %v", c.State())
	}
}

func TestCacheKey_DependsOnFingerprintAndTitle(t *testing.T) {
	a := New(&mockRecommender{}, &mockKVStore{}, 1, DefaultConfig(), zap.NewNop())
	b := New(&mockRecommender{}, &mockKVStore{}, 2, DefaultConfig(), zap.NewNop())

	if a.cacheKey("Heat") == b.cacheKey("Heat") {
		t.Error("different fingerprints must give different keys")
	}
	if a.cacheKey("Heat") == a.cacheKey("heat") {
		t.Error("titles are matched exactly, keys must differ by case")
	}
	if a.cacheKey("Heat") != a.cacheKey("Heat") {
		t.Error("keys must be stable")
	}
}

func TestBreakerStateValue(t *testing.T) {
	tests := []struct {
		state gobreaker.State
		want  float64
	}{
		{gobreaker.StateClosed, 0},
		{gobreaker.StateHalfOpen, 1},
		{gobreaker.StateOpen, 2},
	}
	for _, tt := range tests {
		if got := breakerStateValue(tt.state); got != tt.want {
			t.Errorf("breakerStateValue(%v) = %v, want %v", tt.state, got, tt.want)
		}
	}
}
