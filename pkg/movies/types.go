package movies

import (
	"time"

	"github.com/Dai-S2/PI---1-MLOps/internal/domain/movie"
	cataloguc "github.com/Dai-S2/PI---1-MLOps/internal/usecase/catalog"
)

// Movie is one catalog row. Titles are not unique.
type Movie struct {
	Title       string
	ReleaseDate time.Time // zero when unknown
	ReleaseYear int
	Popularity  float64
	VoteCount   int
	VoteAverage float64
	Budget      float64
	Revenue     float64
	Return      float64 // revenue / budget
	Overview    string
	Actors      string // delimiter-joined names
	Directors   string // delimiter-joined names
}

// Description is one recommendation corpus row.
type Description struct {
	Title string
	Text  string
}

// MonthCount is the number of releases in a month.
type MonthCount struct {
	Month string
	Count int
}

// WeekdayCount is the number of releases on a weekday.
type WeekdayCount struct {
	Day   string
	Count int
}

// TitleScore is the popularity of a title.
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

// ActorStats aggregates an actor's films. MeanReturn is nil without films.
type ActorStats struct {
	Actor       string
	Count       int
	TotalReturn float64
	MeanReturn  *float64
}

// DirectorFilm is one film of a director.
type DirectorFilm struct {
	Title   string
	Year    int
	Return  float64
	Budget  float64
	Revenue float64
}

// DirectorStats is a director's filmography.
type DirectorStats struct {
	Director    string
	TotalReturn float64
	Films       []DirectorFilm
}

func moviesToDomain(rows []Movie) []movie.Movie {
	out := make([]movie.Movie, len(rows))
	for i := range rows {
		out[i] = movie.Movie(rows[i])
	}
	return out
}

func corpusToDomain(docs []Description) []movie.Description {
	out := make([]movie.Description, len(docs))
	for i := range docs {
		out[i] = movie.Description(docs[i])
	}
	return out
}

func directorFromDomain(d cataloguc.DirectorStats) DirectorStats {
	films := make([]DirectorFilm, len(d.Films))
	for i := range d.Films {
		films[i] = DirectorFilm(d.Films[i])
	}
	return DirectorStats{Director: d.Director, TotalReturn: d.TotalReturn, Films: films}
}
