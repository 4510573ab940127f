// Package catalog is the in-memory, read-only movie table. Every derived
// lookup column is computed once in New.
package catalog

import (
	"strings"
	"time"

	"github.com/Dai-S2/PI---1-MLOps/internal/domain/credits"
	"github.com/Dai-S2/PI---1-MLOps/internal/domain/movie"
)

// Repo implements usecase/catalog.Repository.
type Repo struct {
	movies     []movie.Movie
	byTitle    map[string][]int // lower-cased title -> ascending rows
	byActor    map[string][]int // canonical name -> ascending rows
	byDirector map[string][]int
	byMonth    [13]int // index 1..12
	byWeekday  [7]int  // index time.Sunday..time.Saturday
}

// New indexes movies. Rows keep their input order; delimiter splits the
// actor and director fields (empty means credits.DefaultDelimiter).
func New(movies []movie.Movie, delimiter string) *Repo {
	r := &Repo{
		movies:     movies,
		byTitle:    make(map[string][]int, len(movies)),
		byActor:    make(map[string][]int),
		byDirector: make(map[string][]int),
	}
	for i := range movies {
		m := &movies[i]
		key := titleKey(m.Title)
		r.byTitle[key] = append(r.byTitle[key], i)

		for _, name := range credits.Split(m.Actors, delimiter) {
			r.byActor[name] = append(r.byActor[name], i)
		}
		for _, name := range credits.Split(m.Directors, delimiter) {
			r.byDirector[name] = append(r.byDirector[name], i)
		}

		if m.HasReleaseDate() {
			r.byMonth[m.ReleaseDate.Month()]++
			r.byWeekday[m.ReleaseDate.Weekday()]++
		}
	}
	return r
}

func titleKey(title string) string { return strings.ToLower(title) }

// Len returns the number of rows.
func (r *Repo) Len() int { return len(r.movies) }

// CountByMonth counts rows released in month. Rows without a release date
// are never counted.
func (r *Repo) CountByMonth(month time.Month) int {
	if month < time.January || month > time.December {
		return 0
	}
	return r.byMonth[month]
}

// CountByWeekday counts rows released on day.
func (r *Repo) CountByWeekday(day time.Weekday) int {
	if day < time.Sunday || day > time.Saturday {
		return 0
	}
	return r.byWeekday[day]
}

// FindByTitle returns every row whose title matches case-insensitively,
// in row order.
func (r *Repo) FindByTitle(title string) []movie.Movie {
	return r.rows(r.byTitle[titleKey(title)])
}

// FindByActor returns every row crediting the actor, in row order.
func (r *Repo) FindByActor(name string) []movie.Movie {
	return r.rows(r.byActor[credits.Canonical(name)])
}

// FindByDirector returns every row crediting the director, in row order.
func (r *Repo) FindByDirector(name string) []movie.Movie {
	return r.rows(r.byDirector[credits.Canonical(name)])
}

func (r *Repo) rows(positions []int) []movie.Movie {
	if len(positions) == 0 {
		return nil
	}
	out := make([]movie.Movie, len(positions))
	for i, p := range positions {
		out[i] = r.movies[p]
	}
	return out
}
