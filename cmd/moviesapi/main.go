package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Dai-S2/PI---1-MLOps/internal/config"
	"github.com/Dai-S2/PI---1-MLOps/internal/dataset"
	dbValkey "github.com/Dai-S2/PI---1-MLOps/internal/db/valkey"
	"github.com/Dai-S2/PI---1-MLOps/internal/domain"
	"github.com/Dai-S2/PI---1-MLOps/internal/domain/vectorspace"
	logpkg "github.com/Dai-S2/PI---1-MLOps/internal/logger"
	"github.com/Dai-S2/PI---1-MLOps/internal/metrics"
	catalogrepo "github.com/Dai-S2/PI---1-MLOps/internal/repository/catalog"
	"github.com/Dai-S2/PI---1-MLOps/internal/repository/reccache"
	"github.com/Dai-S2/PI---1-MLOps/internal/repository/similarity"
	chiTransport "github.com/Dai-S2/PI---1-MLOps/internal/transport/chi"
	cataloguc "github.com/Dai-S2/PI---1-MLOps/internal/usecase/catalog"
	healthuc "github.com/Dai-S2/PI---1-MLOps/internal/usecase/health"
	recommenduc "github.com/Dai-S2/PI---1-MLOps/internal/usecase/recommend"
	"github.com/Dai-S2/PI---1-MLOps/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting movies API server",
		zap.String("build", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("catalog_path", cfg.Dataset.CatalogPath),
		zap.String("corpus_path", cfg.Dataset.CorpusPath),
		zap.String("cache_driver", cfg.Cache.Driver),
	)

	// Register recommendation metrics explicitly (no init())
	metrics.RegisterRecommendMetrics()

	// Startup state: both tables are read once, then only ever read concurrently.
	ctx := context.Background()
	data, err := dataset.Load(ctx, dataset.Sources{
		CatalogPath: cfg.Dataset.CatalogPath,
		CorpusPath:  cfg.Dataset.CorpusPath,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to load dataset", zap.Error(err))
	}

	catalogSvc := cataloguc.New(
		catalogrepo.New(data.Movies, cfg.Dataset.CreditDelimiter),
		cfg.Catalog.MinVotes,
	)
	metrics.CatalogMovies.Set(float64(catalogSvc.Len()))

	index := buildIndex(data, cfg.Recommend, logger)
	recommendSvc := recommenduc.New(index, cfg.Recommend.TopK)

	// Recommendation chain: index -> cached (optional)
	var recommender domain.Recommender = recommendSvc
	var cachePinger healthuc.CachePinger
	if cfg.CacheEnabled() {
		store, err := dbValkey.NewStore(dbValkey.Config{
			Addrs:    cfg.Cache.Addrs,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer store.Close()

		if err := store.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Cache not ready", zap.Error(err))
		}
		logger.Info("Connected to cache", zap.Strings("addrs", cfg.Cache.Addrs))

		recommender = reccache.New(recommendSvc, store, index.Fingerprint(), reccache.Config{
			TTL:              cfg.CacheTTL(),
			FailureThreshold: cfg.Cache.BreakerFailures,
			OpenTimeout:      time.Duration(cfg.Cache.BreakerOpenSec) * time.Second,
		}, logger)
		cachePinger = store
	}

	healthSvc := healthuc.New(catalogSvc, recommendSvc, cachePinger)

	server := chiTransport.NewServer(catalogSvc, recommender, healthSvc, logger)
	router := chiTransport.NewRouter(server, chiTransport.RouterConfig{
		APIKeys:           cfg.Auth.APIKeys,
		AllowedOrigins:    cfg.CORS.AllowedOrigins,
		CORSMaxAge:        time.Duration(cfg.CORS.MaxAgeSec) * time.Second,
		RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
		RequestTimeout:    time.Duration(cfg.HTTP.RequestTimeoutSec) * time.Second,
	}, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildIndex fits the similarity index over the corpus and publishes its size.
func buildIndex(data *dataset.Dataset, cfg config.RecommendConfig, logger *zap.Logger) *similarity.Index {
	start := time.Now()
	index := similarity.Build(data.Corpus, similarity.Config{
		NgramMin:              cfg.NgramMin,
		NgramMax:              cfg.NgramMax,
		StopWords:             vectorspace.StopWordSet(cfg.StopWords),
		CaseInsensitiveTitles: cfg.CaseInsensitiveTitles,
	})
	elapsed := time.Since(start)

	metrics.IndexBuildDuration.Set(elapsed.Seconds())
	metrics.IndexDocuments.Set(float64(index.Len()))
	metrics.IndexVocabularySize.Set(float64(index.VocabularySize()))

	logger.Info("Similarity index built",
		zap.Int("documents", index.Len()),
		zap.Int("vocabulary", index.VocabularySize()),
		zap.Duration("duration", elapsed),
		zap.String("fingerprint", fmt.Sprintf("%016x", index.Fingerprint())),
	)
	return index
}
