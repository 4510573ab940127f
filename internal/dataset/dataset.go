// Package dataset loads the movie catalog and the recommendation corpus
// from parquet files.
package dataset

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Dai-S2/PI---1-MLOps/internal/domain"
	"github.com/Dai-S2/PI---1-MLOps/internal/domain/movie"
)

// Sources names the parquet files to load. An empty CorpusPath makes the
// catalog overview column the recommendation corpus.
type Sources struct {
	CatalogPath string
	CorpusPath  string
}

// Dataset is the immutable startup state shared by the services.
type Dataset struct {
	Movies []movie.Movie
	Corpus []movie.Description
}

// Load reads both files concurrently. Any failure is fatal to startup.
func Load(ctx context.Context, src Sources, logger *zap.Logger) (*Dataset, error) {
	if src.CatalogPath == "" {
		return nil, fmt.Errorf("%w: catalog path is required", domain.ErrInvalidDataset)
	}

	start := time.Now()
	ds := &Dataset{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		movies, err := ReadCatalog(gctx, src.CatalogPath)
		if err != nil {
			return err
		}
		ds.Movies = movies
		return nil
	})
	if src.CorpusPath != "" {
		g.Go(func() error {
			docs, err := ReadCorpus(gctx, src.CorpusPath)
			if err != nil {
				return err
			}
			ds.Corpus = docs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if src.CorpusPath == "" {
		ds.Corpus = movie.DescriptionsFromCatalog(ds.Movies)
		logger.Info("corpus path not set, using catalog overviews")
	}

	logger.Info("dataset loaded",
		zap.String("catalog", src.CatalogPath),
		zap.String("corpus", src.CorpusPath),
		zap.Int("movies", len(ds.Movies)),
		zap.Int("descriptions", len(ds.Corpus)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return ds, nil
}
