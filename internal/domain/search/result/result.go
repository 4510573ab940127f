package result

// Result is a single recommendation: a corpus row and its similarity to
// the query row.
type Result struct {
	position int
	title    string
	score    float64
}

// New creates a recommendation result.
func New(position int, title string, score float64) Result {
	return Result{position: position, title: title, score: score}
}

// Position returns the corpus row position.
func (r *Result) Position() int { return r.position }

// Title returns the movie title.
func (r *Result) Title() string { return r.title }

// Score returns the cosine similarity to the query row.
func (r *Result) Score() float64 { return r.score }

// Titles maps results to their titles, preserving order.
func Titles(results []Result) []string {
	titles := make([]string, len(results))
	for i := range results {
		titles[i] = results[i].title
	}
	return titles
}
