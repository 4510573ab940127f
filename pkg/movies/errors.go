package movies

import "github.com/Dai-S2/PI---1-MLOps/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidMonth      = domain.ErrInvalidMonth
	ErrInvalidWeekday    = domain.ErrInvalidWeekday
	ErrTitleNotFound     = domain.ErrTitleNotFound
	ErrDirectorNotFound  = domain.ErrDirectorNotFound
	ErrInsufficientVotes = domain.ErrInsufficientVotes
	ErrMovieNotIndexed   = domain.ErrMovieNotIndexed
	ErrInvalidDataset    = domain.ErrInvalidDataset
)

// Subject returns the month, day, title or name a diagnostic refers to,
// or "" when err carries none.
func Subject(err error) string {
	return domain.SubjectOf(err)
}
