package recommend

import (
	"context"
	"errors"
	"os"
	"reflect"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Dai-S2/PI---1-MLOps/internal/domain"
	"github.com/Dai-S2/PI---1-MLOps/internal/domain/movie"
	"github.com/Dai-S2/PI---1-MLOps/internal/domain/search/result"
	"github.com/Dai-S2/PI---1-MLOps/internal/metrics"
	"github.com/Dai-S2/PI---1-MLOps/internal/repository/similarity"
)

func TestMain(m *testing.M) {
	metrics.RegisterRecommendMetrics()
	os.Exit(m.Run())
}

type mockIndex struct {
	results   []result.Result
	found     bool
	lastTitle string
	lastK     int
	size      int
	vocab     int
}

func (m *mockIndex) Recommend(title string, k int) ([]result.Result, bool) {
	m.lastTitle = title
	m.lastK = k
	return m.results, m.found
}

func (m *mockIndex) Len() int { return m.size }

func (m *mockIndex) VocabularySize() int { return m.vocab }

func TestRecommend_Titles(t *testing.T) {
	idx := &mockIndex{
		found:   true,
		results: []result.Result{result.New(6, "Toy Story 2", 0.4), result.New(3, "Heat", 0.1)},
	}
	svc := New(idx, 0)

	before := testutil.ToFloat64(metrics.RecommendRequestsTotal.WithLabelValues("ok"))
	got, err := svc.Recommend(context.Background(), "Toy Story")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"Toy Story 2", "Heat"}) {
		t.Errorf("got %v", got)
	}
	if idx.lastK != DefaultTopK || idx.lastTitle != "Toy Story" {
		t.Errorf("index queried with %q, k=%d", idx.lastTitle, idx.lastK)
	}
	if after := testutil.ToFloat64(metrics.RecommendRequestsTotal.WithLabelValues("ok")); after != before+1 {
		t.Errorf("ok counter = %f, want %f", after, before+1)
	}
}

func TestRecommend_NotFound(t *testing.T) {
	svc := New(&mockIndex{}, 3)

	_, err := svc.Recommend(context.Background(), "Toy Story 3")
	if !errors.Is(err, domain.ErrMovieNotIndexed) {
		t.Fatalf("expected ErrMovieNotIndexed, got %v", err)
	}
	if domain.SubjectOf(err) != "Toy Story 3" {
		t.Errorf("subject = %q", domain.SubjectOf(err))
	}
}

func TestRecommend_CustomTopK(t *testing.T) {
	idx := &mockIndex{found: true}
	svc := New(idx, 3)
	if svc.TopK() != 3 {
		t.Errorf("TopK = %d", svc.TopK())
	}
	got, err := svc.Recommend(context.Background(), "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx.lastK != 3 || len(got) != 0 {
		t.Errorf("k=%d, got %v", idx.lastK, got)
	}
}

func TestReadyAndStats(t *testing.T) {
	svc := New(&mockIndex{size: 10, vocab: 120}, 0)
	if !svc.Ready() {
		t.Error("expected ready")
	}
	if docs, vocab := svc.Stats(); docs != 10 || vocab != 120 {
		t.Errorf("Stats = %d, %d", docs, vocab)
	}
	if New(&mockIndex{}, 0).Ready() {
		t.Error("empty index should not be ready")
	}
}

func TestRecommend_RealIndexExcludesQuery(t *testing.T) {
	docs := []movie.Description{
		{Title: "Toy Story", Text: "cowboy doll toy spaceman rivalry"},
		{Title: "Toy Story 2", Text: "cowboy doll toy collector rescue"},
		{Title: "Jumanji", Text: "magical board game jungle"},
		{Title: "Heat", Text: "detective thief crew heist"},
		{Title: "Sabrina", Text: "chauffeur daughter romance"},
		{Title: "Balto", Text: "sled dog diphtheria serum"},
		{Title: "Casino", Text: "mob casino las vegas"},
	}
	svc := New(similarity.Build(docs, similarity.DefaultConfig()), 0)

	got, err := svc.Recommend(context.Background(), "Toy Story")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Toy Story 2", "Jumanji", "Heat", "Sabrina", "Balto"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
