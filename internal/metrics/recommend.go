package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recommendation and index Prometheus metrics.
var (
	RecommendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "movies",
			Name:      "recommend_requests_total",
			Help:      "Total number of recommendation requests",
		},
		[]string{"status"}, // "ok" / "not_found" / "error"
	)

	RecommendDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "movies",
			Name:      "recommend_duration_seconds",
			Help:      "Recommendation computation duration in seconds",
			Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
	)

	RecommendCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "movies",
			Name:      "recommend_cache_total",
			Help:      "Recommendation cache lookups by result",
		},
		[]string{"result"}, // "hit" / "miss" / "error" / "open"
	)

	RecommendCacheBreakerState = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "movies",
			Name:      "recommend_cache_breaker_state",
			Help:      "Cache circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)

	IndexBuildDuration = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "movies",
			Name:      "index_build_duration_seconds",
			Help:      "Time spent building the similarity index at startup",
		},
	)

	IndexDocuments = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "movies",
			Name:      "index_documents",
			Help:      "Number of documents in the similarity index",
		},
	)

	IndexVocabularySize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "movies",
			Name:      "index_vocabulary_size",
			Help:      "Number of distinct terms in the similarity index",
		},
	)

	CatalogMovies = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "movies",
			Name:      "catalog_movies",
			Help:      "Number of rows in the movie catalog",
		},
	)
)

var recMetricsRegistered bool

// RegisterRecommendMetrics registers recommendation and index metrics. Must be called once from main.
func RegisterRecommendMetrics() {
	if recMetricsRegistered {
		return
	}
	prometheus.MustRegister(RecommendRequestsTotal)
	prometheus.MustRegister(RecommendDuration)
	prometheus.MustRegister(RecommendCacheTotal)
	prometheus.MustRegister(RecommendCacheBreakerState)
	prometheus.MustRegister(IndexBuildDuration)
	prometheus.MustRegister(IndexDocuments)
	prometheus.MustRegister(IndexVocabularySize)
	prometheus.MustRegister(CatalogMovies)
	recMetricsRegistered = true
}
