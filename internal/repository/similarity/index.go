// Package similarity holds the frozen recommendation index: one TF-IDF
// vector per corpus row and a title lookup that resolves duplicates to the
// first row.
package similarity

import (
	"encoding/binary"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/Dai-S2/PI---1-MLOps/internal/domain/movie"
	"github.com/Dai-S2/PI---1-MLOps/internal/domain/search/result"
	"github.com/Dai-S2/PI---1-MLOps/internal/domain/vectorspace"
)

// Config controls how corpus text is turned into vectors.
type Config struct {
	NgramMin              int
	NgramMax              int
	StopWords             vectorspace.StopWordSet
	CaseInsensitiveTitles bool
}

// DefaultConfig returns unigrams plus bigrams over English text with
// exact title matching.
func DefaultConfig() Config {
	return Config{NgramMin: 1, NgramMax: 2, StopWords: vectorspace.StopWordsEnglish}
}

// Index is immutable after Build and safe for concurrent reads.
type Index struct {
	cfg         Config
	space       *vectorspace.Space
	vectors     []vectorspace.Vector
	titles      []string
	positions   map[string][]int // title key -> ascending row positions
	fingerprint uint64
}

// Build vectorizes every description. Row positions follow input order.
func Build(docs []movie.Description, cfg Config) *Index {
	texts := make([]string, len(docs))
	titles := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Text
		titles[i] = d.Title
	}

	analyzer := vectorspace.NewAnalyzer(vectorspace.StopWords(cfg.StopWords), cfg.NgramMin, cfg.NgramMax)
	space, vectors := vectorspace.FitTransform(texts, analyzer)

	idx := &Index{
		cfg:       cfg,
		space:     space,
		vectors:   vectors,
		titles:    titles,
		positions: make(map[string][]int, len(docs)),
	}
	for i, t := range titles {
		k := idx.key(t)
		idx.positions[k] = append(idx.positions[k], i)
	}
	idx.fingerprint = fingerprint(docs, cfg)
	return idx
}

func (idx *Index) key(title string) string {
	if idx.cfg.CaseInsensitiveTitles {
		return strings.ToLower(title)
	}
	return title
}

// Positions returns every row carrying title, in ascending order.
func (idx *Index) Positions(title string) []int {
	return slices.Clone(idx.positions[idx.key(title)])
}

// Resolve returns the first row carrying title.
func (idx *Index) Resolve(title string) (int, bool) {
	pos := idx.positions[idx.key(title)]
	if len(pos) == 0 {
		return 0, false
	}
	return pos[0], true
}

// Similar ranks every other row by cosine similarity to row, descending,
// ties in row order, and returns at most k of them.
func (idx *Index) Similar(row, k int) []result.Result {
	if row < 0 || row >= len(idx.vectors) || k <= 0 {
		return nil
	}
	query := idx.vectors[row]

	ranked := make([]result.Result, 0, len(idx.vectors)-1)
	for i, v := range idx.vectors {
		if i == row {
			continue
		}
		// Vectors are unit length, so the dot product is the cosine.
		ranked = append(ranked, result.New(i, idx.titles[i], vectorspace.Dot(query, v)))
	}
	slices.SortStableFunc(ranked, func(a, b result.Result) int {
		switch {
		case a.Score() > b.Score():
			return -1
		case a.Score() < b.Score():
			return 1
		default:
			return 0
		}
	})
	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

// Recommend resolves title and returns up to k similar rows.
func (idx *Index) Recommend(title string, k int) ([]result.Result, bool) {
	row, ok := idx.Resolve(title)
	if !ok {
		return nil, false
	}
	return idx.Similar(row, k), true
}

// Title returns the title at row.
func (idx *Index) Title(row int) string { return idx.titles[row] }

// Vector returns the document vector at row.
func (idx *Index) Vector(row int) vectorspace.Vector { return idx.vectors[row] }

// Len returns the number of indexed rows.
func (idx *Index) Len() int { return len(idx.vectors) }

// VocabularySize returns the number of distinct terms.
func (idx *Index) VocabularySize() int { return idx.space.Size() }

// Fingerprint identifies the corpus and settings the index was built
// from. Equal inputs give equal fingerprints.
func (idx *Index) Fingerprint() uint64 { return idx.fingerprint }

func fingerprint(docs []movie.Description, cfg Config) uint64 {
	h := xxhash.New()
	var buf [8]byte
	writeInt := func(n int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(n)) //nolint:gosec // sign is irrelevant for hashing
		_, _ = h.Write(buf[:])
	}

	writeInt(cfg.NgramMin)
	writeInt(cfg.NgramMax)
	_, _ = h.WriteString(string(cfg.StopWords))
	if cfg.CaseInsensitiveTitles {
		writeInt(1)
	} else {
		writeInt(0)
	}
	writeInt(len(docs))
	for _, d := range docs {
		writeInt(len(d.Title))
		_, _ = h.WriteString(d.Title)
		writeInt(len(d.Text))
		_, _ = h.WriteString(d.Text)
	}
	return h.Sum64()
}
