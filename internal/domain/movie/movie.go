package movie

import "time"

// Movie is a single catalog row. Title is not unique.
type Movie struct {
	Title       string
	ReleaseDate time.Time // zero when the source value is missing
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

// HasReleaseDate reports whether the release date is known.
func (m *Movie) HasReleaseDate() bool { return !m.ReleaseDate.IsZero() }

// Description is one row of the recommendation corpus: a title and its
// pre-cleaned plot summary.
type Description struct {
	Title string
	Text  string
}

// DescriptionsFromCatalog uses the catalog overview column as the corpus.
func DescriptionsFromCatalog(movies []Movie) []Description {
	out := make([]Description, len(movies))
	for i := range movies {
		out[i] = Description{Title: movies[i].Title, Text: movies[i].Overview}
	}
	return out
}
