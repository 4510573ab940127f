package movies

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Dai-S2/PI---1-MLOps/internal/dataset"
	"github.com/Dai-S2/PI---1-MLOps/internal/domain/movie"
	"github.com/Dai-S2/PI---1-MLOps/internal/domain/vectorspace"
	catalogrepo "github.com/Dai-S2/PI---1-MLOps/internal/repository/catalog"
	"github.com/Dai-S2/PI---1-MLOps/internal/repository/similarity"
	cataloguc "github.com/Dai-S2/PI---1-MLOps/internal/usecase/catalog"
	healthuc "github.com/Dai-S2/PI---1-MLOps/internal/usecase/health"
	recommenduc "github.com/Dai-S2/PI---1-MLOps/internal/usecase/recommend"
)

// Internal interfaces, swapped for mocks in tests.
type catalogUseCase interface {
	CountByMonth(name string) (cataloguc.MonthCount, error)
	CountByWeekday(name string) (cataloguc.WeekdayCount, error)
	ScoreByTitle(title string) (cataloguc.TitleScore, error)
	VotesByTitle(title string) (cataloguc.TitleVotes, error)
	ActorStats(name string) cataloguc.ActorStats
	DirectorStats(name string) (cataloguc.DirectorStats, error)
	Len() int
}

type recommendUseCase interface {
	Recommend(ctx context.Context, title string) ([]string, error)
}

// Client answers catalog and recommendation queries in-process.
// It is safe for concurrent use.
type Client struct {
	catalogSvc   catalogUseCase
	recommendSvc recommendUseCase
	healthSvc    healthUseCase
	obs          *observer
}

// New loads the dataset, builds the similarity index and returns a Client.
// The context bounds dataset loading only.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rows, corpus, err := loadData(ctx, cfg)
	obs.observe("load", start, err)
	if err != nil {
		return nil, err
	}

	return wireClient(rows, corpus, cfg, obs), nil
}

func loadData(ctx context.Context, cfg *clientConfig) ([]movie.Movie, []movie.Description, error) {
	var (
		rows   []movie.Movie
		corpus []movie.Description
	)
	switch {
	case cfg.catalogPath != "" && cfg.movies != nil:
		return nil, nil, errors.New("movies: WithParquet and WithMovies are mutually exclusive")
	case cfg.catalogPath != "":
		data, err := dataset.Load(ctx, dataset.Sources{
			CatalogPath: cfg.catalogPath,
			CorpusPath:  cfg.corpusPath,
		}, zap.NewNop())
		if err != nil {
			return nil, nil, fmt.Errorf("movies: load dataset: %w", err)
		}
		rows, corpus = data.Movies, data.Corpus
	case cfg.movies != nil:
		rows = moviesToDomain(cfg.movies)
		corpus = movie.DescriptionsFromCatalog(rows)
	default:
		return nil, nil, errors.New("movies: no data source (use WithParquet or WithMovies)")
	}

	if cfg.corpus != nil {
		corpus = corpusToDomain(cfg.corpus)
	}
	return rows, corpus, nil
}

func wireClient(rows []movie.Movie, corpus []movie.Description, cfg *clientConfig, obs *observer) *Client {
	idxCfg := similarity.DefaultConfig()
	if cfg.ngramMin > 0 {
		idxCfg.NgramMin = cfg.ngramMin
	}
	if cfg.ngramMax > 0 {
		idxCfg.NgramMax = cfg.ngramMax
	}
	if cfg.stopWords != "" {
		idxCfg.StopWords = vectorspace.StopWordSet(cfg.stopWords)
	}
	idxCfg.CaseInsensitiveTitles = cfg.caseInsensitive

	catalogSvc := cataloguc.New(catalogrepo.New(rows, cfg.delimiter), cfg.minVotes)
	recommendSvc := recommenduc.New(similarity.Build(corpus, idxCfg), cfg.topK)

	return &Client{
		catalogSvc:   catalogSvc,
		recommendSvc: recommendSvc,
		healthSvc:    healthuc.New(catalogSvc, recommendSvc, nil),
		obs:          obs,
	}
}

// Len returns the number of catalog rows.
func (c *Client) Len() int { return c.catalogSvc.Len() }

// CountByMonth counts releases in a Spanish-named month ("enero".."diciembre").
func (c *Client) CountByMonth(_ context.Context, month string) (_ MonthCount, err error) {
	start := time.Now()
	defer func() { c.obs.observe("count_by_month", start, err) }()

	res, err := c.catalogSvc.CountByMonth(month)
	if err != nil {
		return MonthCount{}, err
	}
	return MonthCount(res), nil
}

// CountByWeekday counts releases on a Spanish-named weekday, with or
// without accents.
func (c *Client) CountByWeekday(_ context.Context, day string) (_ WeekdayCount, err error) {
	start := time.Now()
	defer func() { c.obs.observe("count_by_weekday", start, err) }()

	res, err := c.catalogSvc.CountByWeekday(day)
	if err != nil {
		return WeekdayCount{}, err
	}
	return WeekdayCount(res), nil
}

// ScoreByTitle returns the popularity of a title, matched case-insensitively.
// Among duplicate titles the most popular row wins.
func (c *Client) ScoreByTitle(_ context.Context, title string) (_ TitleScore, err error) {
	start := time.Now()
	defer func() { c.obs.observe("score_by_title", start, err) }()

	res, err := c.catalogSvc.ScoreByTitle(title)
	if err != nil {
		return TitleScore{}, err
	}
	return TitleScore(res), nil
}

// VotesByTitle returns the votes of the first row with the title.
// It fails with ErrInsufficientVotes below the configured threshold.
func (c *Client) VotesByTitle(_ context.Context, title string) (_ TitleVotes, err error) {
	start := time.Now()
	defer func() { c.obs.observe("votes_by_title", start, err) }()

	res, err := c.catalogSvc.VotesByTitle(title)
	if err != nil {
		return TitleVotes{}, err
	}
	return TitleVotes(res), nil
}

// ActorStats aggregates the return of an actor's films.
func (c *Client) ActorStats(_ context.Context, name string) ActorStats {
	start := time.Now()
	defer c.obs.observe("actor_stats", start, nil)

	return ActorStats(c.catalogSvc.ActorStats(name))
}

// DirectorStats lists a director's films.
func (c *Client) DirectorStats(_ context.Context, name string) (_ DirectorStats, err error) {
	start := time.Now()
	defer func() { c.obs.observe("director_stats", start, err) }()

	res, err := c.catalogSvc.DirectorStats(name)
	if err != nil {
		return DirectorStats{}, err
	}
	return directorFromDomain(res), nil
}

// Recommend returns the titles most similar to title, most similar first.
func (c *Client) Recommend(ctx context.Context, title string) (_ []string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("recommend", start, err) }()

	titles, err := c.recommendSvc.Recommend(ctx, title)
	if err != nil {
		return nil, err
	}
	return titles, nil
}
