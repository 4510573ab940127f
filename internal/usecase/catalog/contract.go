package catalog

import (
	"time"

	"github.com/Dai-S2/PI---1-MLOps/internal/domain/movie"
)

// Repository defines the read-only catalog lookups.
type Repository interface {
	CountByMonth(month time.Month) int
	CountByWeekday(day time.Weekday) int
	FindByTitle(title string) []movie.Movie
	FindByActor(name string) []movie.Movie
	FindByDirector(name string) []movie.Movie
	Len() int
}
