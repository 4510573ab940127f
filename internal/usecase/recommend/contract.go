package recommend

import "github.com/Dai-S2/PI---1-MLOps/internal/domain/search/result"

// Index is the frozen similarity index the service queries.
type Index interface {
	Recommend(title string, k int) ([]result.Result, bool)
	Len() int
	VocabularySize() int
}
