package domain

import "context"

// Recommender is the shared recommendation contract between layers.
type Recommender interface {
	Recommend(ctx context.Context, title string) ([]string, error)
}
