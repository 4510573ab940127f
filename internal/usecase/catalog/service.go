package catalog

import (
	"math"

	"github.com/Dai-S2/PI---1-MLOps/internal/domain"
	"github.com/Dai-S2/PI---1-MLOps/internal/domain/calendar"
	"github.com/Dai-S2/PI---1-MLOps/internal/domain/credits"
	"github.com/Dai-S2/PI---1-MLOps/internal/domain/movie"
)

// DefaultMinVotes is the vote count at which VotesByTitle reports data.
const DefaultMinVotes = 2000

// MonthCount is the number of releases in a month.
type MonthCount struct {
	Month string // lower-cased input
	Count int
}

// WeekdayCount is the number of releases on a weekday.
type WeekdayCount struct {
	Day   string // lower-cased input
	Count int
}

// TitleScore is the popularity of the best-matching title.
type TitleScore struct {
	Title      string
	Year       int
	Popularity float64
}

// TitleVotes is the vote summary of a title.
type TitleVotes struct {
	Title       string
	Year        int
	VoteCount   int
	VoteAverage float64
}

// ActorStats aggregates the return of an actor's films. MeanReturn is nil
// when the actor has no films.
type ActorStats struct {
	Actor       string
	Count       int
	TotalReturn float64
	MeanReturn  *float64
}

// DirectorFilm is one row of a director's filmography.
type DirectorFilm struct {
	Title   string
	Year    int
	Return  float64
	Budget  float64
	Revenue float64
}

// DirectorStats is a director's filmography and summed return.
type DirectorStats struct {
	Director    string
	TotalReturn float64
	Films       []DirectorFilm
}

// Service answers catalog queries.
type Service struct {
	repo     Repository
	minVotes int
}

// New creates a catalog service. minVotes <= 0 uses DefaultMinVotes.
func New(repo Repository, minVotes int) *Service {
	if minVotes <= 0 {
		minVotes = DefaultMinVotes
	}
	return &Service{repo: repo, minVotes: minVotes}
}

// MinVotes returns the vote threshold in effect.
func (s *Service) MinVotes() int { return s.minVotes }

// CountByMonth counts releases in a Spanish-named month.
func (s *Service) CountByMonth(name string) (MonthCount, error) {
	m, err := calendar.ParseMonth(name)
	if err != nil {
		return MonthCount{}, err
	}
	return MonthCount{Month: calendar.NormalizeMonth(name), Count: s.repo.CountByMonth(m)}, nil
}

// CountByWeekday counts releases on a Spanish-named weekday, with or
// without accents.
func (s *Service) CountByWeekday(name string) (WeekdayCount, error) {
	d, err := calendar.ParseWeekday(name)
	if err != nil {
		return WeekdayCount{}, err
	}
	return WeekdayCount{Day: calendar.NormalizeWeekday(name), Count: s.repo.CountByWeekday(d)}, nil
}

// ScoreByTitle returns the most popular row with the title. Popularity
// ties go to the earlier row.
func (s *Service) ScoreByTitle(title string) (TitleScore, error) {
	rows := s.repo.FindByTitle(title)
	if len(rows) == 0 {
		return TitleScore{}, domain.NewSubjectError(domain.ErrTitleNotFound, title)
	}
	best := 0
	for i := 1; i < len(rows); i++ {
		if rows[i].Popularity > rows[best].Popularity {
			best = i
		}
	}
	m := rows[best]
	return TitleScore{Title: m.Title, Year: m.ReleaseYear, Popularity: m.Popularity}, nil
}

// VotesByTitle returns the votes of the first row with the title, or
// ErrInsufficientVotes when that row has fewer than the threshold.
func (s *Service) VotesByTitle(title string) (TitleVotes, error) {
	rows := s.repo.FindByTitle(title)
	if len(rows) == 0 {
		return TitleVotes{}, domain.NewSubjectError(domain.ErrTitleNotFound, title)
	}
	m := rows[0]
	if m.VoteCount < s.minVotes {
		return TitleVotes{}, domain.NewSubjectError(domain.ErrInsufficientVotes, m.Title)
	}
	return TitleVotes{
		Title:       m.Title,
		Year:        m.ReleaseYear,
		VoteCount:   m.VoteCount,
		VoteAverage: m.VoteAverage,
	}, nil
}

// ActorStats aggregates the films crediting the actor. Zero matches is
// a valid, empty aggregate.
func (s *Service) ActorStats(name string) ActorStats {
	rows := s.repo.FindByActor(name)
	stats := ActorStats{Actor: credits.Canonical(name), Count: len(rows)}
	if len(rows) == 0 {
		return stats
	}
	total := sumReturn(rows)
	mean := round4(total / float64(len(rows)))
	stats.TotalReturn = round4(total)
	stats.MeanReturn = &mean
	return stats
}

// DirectorStats lists the films crediting the director.
func (s *Service) DirectorStats(name string) (DirectorStats, error) {
	director := credits.Canonical(name)
	rows := s.repo.FindByDirector(name)
	if len(rows) == 0 {
		return DirectorStats{}, domain.NewSubjectError(domain.ErrDirectorNotFound, director)
	}
	films := make([]DirectorFilm, len(rows))
	for i, m := range rows {
		films[i] = DirectorFilm{
			Title:   m.Title,
			Year:    m.ReleaseYear,
			Return:  round4(m.Return),
			Budget:  m.Budget,
			Revenue: m.Revenue,
		}
	}
	return DirectorStats{Director: director, TotalReturn: round4(sumReturn(rows)), Films: films}, nil
}

// Len returns the catalog size.
func (s *Service) Len() int { return s.repo.Len() }

func sumReturn(rows []movie.Movie) float64 {
	var total float64
	for i := range rows {
		total += rows[i].Return
	}
	return total
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
