package recommend

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Dai-S2/PI---1-MLOps/internal/domain"
	"github.com/Dai-S2/PI---1-MLOps/internal/domain/search/result"
	"github.com/Dai-S2/PI---1-MLOps/internal/logger"
	"github.com/Dai-S2/PI---1-MLOps/internal/metrics"
)

// DefaultTopK is the number of titles returned per recommendation.
const DefaultTopK = 5

// Service answers recommendation queries against a prebuilt index.
type Service struct {
	index Index
	topK  int
}

// New creates a recommendation service. topK <= 0 uses DefaultTopK.
func New(index Index, topK int) *Service {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Service{index: index, topK: topK}
}

// TopK returns the maximum number of titles per recommendation.
func (s *Service) TopK() int { return s.topK }

// Recommend returns up to TopK titles most similar to title, most similar
// first. The title's own row is never included.
func (s *Service) Recommend(ctx context.Context, title string) ([]string, error) {
	start := time.Now()
	results, ok := s.index.Recommend(title, s.topK)
	metrics.RecommendDuration.Observe(time.Since(start).Seconds())

	if !ok {
		metrics.RecommendRequestsTotal.WithLabelValues("not_found").Inc()
		return nil, domain.NewSubjectError(domain.ErrMovieNotIndexed, title)
	}
	metrics.RecommendRequestsTotal.WithLabelValues("ok").Inc()

	logger.FromContext(ctx).Debug("Recommendation computed",
		zap.String("title", title),
		zap.Int("results", len(results)),
		zap.Duration("duration", time.Since(start)),
	)
	return result.Titles(results), nil
}

// Ready reports whether the index holds any documents.
func (s *Service) Ready() bool { return s.index.Len() > 0 }

// Stats returns the index size and vocabulary size.
func (s *Service) Stats() (documents, vocabulary int) {
	return s.index.Len(), s.index.VocabularySize()
}
