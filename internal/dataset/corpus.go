package dataset

import (
	"context"
	"fmt"

	"github.com/parquet-go/parquet-go"

	"github.com/Dai-S2/PI---1-MLOps/internal/domain"
	"github.com/Dai-S2/PI---1-MLOps/internal/domain/movie"
)

const colOverviewClean = "overview_clean"

// ReadCorpus loads the recommendation corpus: title plus pre-cleaned
// overview, in file order. Both columns are required.
func ReadCorpus(ctx context.Context, path string) ([]movie.Description, error) {
	h, err := openParquet(path)
	if err != nil {
		return nil, fmt.Errorf("corpus %s: %w: %w", path, domain.ErrInvalidDataset, err)
	}
	defer h.Close()

	cols := resolveColumns(h.pf, colTitle, colOverviewClean)
	for _, name := range []string{colTitle, colOverviewClean} {
		if !cols[name].found() {
			return nil, fmt.Errorf("corpus %s: %w: missing %q column", path, domain.ErrInvalidDataset, name)
		}
	}
	titleIdx, textIdx := cols[colTitle].index, cols[colOverviewClean].index

	docs := make([]movie.Description, 0, h.pf.NumRows())
	err = forEachRow(ctx, h.pf, func(row parquet.Row) {
		var d movie.Description
		for _, v := range row {
			switch v.Column() {
			case titleIdx:
				d.Title = stringValue(v)
			case textIdx:
				d.Text = stringValue(v)
			}
		}
		docs = append(docs, d)
	})
	if err != nil {
		return nil, fmt.Errorf("corpus %s: %w: %w", path, domain.ErrInvalidDataset, err)
	}
	return docs, nil
}
