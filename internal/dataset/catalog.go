package dataset

import (
	"context"
	"fmt"

	"github.com/parquet-go/parquet-go"

	"github.com/Dai-S2/PI---1-MLOps/internal/domain"
	"github.com/Dai-S2/PI---1-MLOps/internal/domain/movie"
)

// Catalog column names.
const (
	colTitle       = "title"
	colReleaseDate = "release_date"
	colReleaseYear = "release_year"
	colPopularity  = "popularity"
	colVoteCount   = "vote_count"
	colVoteAverage = "vote_average"
	colBudget      = "budget"
	colRevenue     = "revenue"
	colReturn      = "return"
	colOverview    = "overview"
	colActors      = "actores"
	colDirectors   = "director"
)

// ReadCatalog loads every movie row of a catalog parquet file in file order.
// Only the title column is required; absent columns decode as zero values.
func ReadCatalog(ctx context.Context, path string) ([]movie.Movie, error) {
	h, err := openParquet(path)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w: %w", path, domain.ErrInvalidDataset, err)
	}
	defer h.Close()

	cols := resolveColumns(h.pf,
		colTitle, colReleaseDate, colReleaseYear, colPopularity, colVoteCount,
		colVoteAverage, colBudget, colRevenue, colReturn, colOverview,
		colActors, colDirectors,
	)
	if !cols[colTitle].found() {
		return nil, fmt.Errorf("catalog %s: %w: missing %q column", path, domain.ErrInvalidDataset, colTitle)
	}

	// Switch on leaf indexes; -1 never matches a value column.
	var (
		title, date, year   = cols[colTitle], cols[colReleaseDate], cols[colReleaseYear]
		pop, votes, avg     = cols[colPopularity].index, cols[colVoteCount].index, cols[colVoteAverage].index
		budget, rev, ret    = cols[colBudget].index, cols[colRevenue].index, cols[colReturn].index
		overview, act, dirs = cols[colOverview].index, cols[colActors].index, cols[colDirectors].index
	)

	movies := make([]movie.Movie, 0, h.pf.NumRows())
	err = forEachRow(ctx, h.pf, func(row parquet.Row) {
		var m movie.Movie
		for _, v := range row {
			switch v.Column() {
			case title.index:
				m.Title = stringValue(v)
			case date.index:
				m.ReleaseDate = timeValue(v, date)
			case year.index:
				m.ReleaseYear = intValue(v)
			case pop:
				m.Popularity = floatValue(v)
			case votes:
				m.VoteCount = intValue(v)
			case avg:
				m.VoteAverage = floatValue(v)
			case budget:
				m.Budget = floatValue(v)
			case rev:
				m.Revenue = floatValue(v)
			case ret:
				m.Return = floatValue(v)
			case overview:
				m.Overview = stringValue(v)
			case act:
				m.Actors = stringValue(v)
			case dirs:
				m.Directors = stringValue(v)
			}
		}
		if m.ReleaseYear == 0 && m.HasReleaseDate() {
			m.ReleaseYear = m.ReleaseDate.Year()
		}
		movies = append(movies, m)
	})
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w: %w", path, domain.ErrInvalidDataset, err)
	}
	return movies, nil
}
