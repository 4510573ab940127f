// Package vectorspace implements TF-IDF weighting over a frozen vocabulary
// and cosine similarity between sparse document vectors.
package vectorspace

import (
	"math"
	"sort"
)

// Space is a vocabulary of terms with smoothed inverse document frequency
// weights. It is immutable once built by Fit.
type Space struct {
	analyzer Analyzer
	vocab    map[string]int // term -> index, indexes follow sorted term order
	terms    []string
	idf      []float64
	docs     int
}

// Fit learns the vocabulary and IDF weights of a corpus.
//
//	idf(t) = ln((1 + n) / (1 + df(t))) + 1
func Fit(corpus []string, analyzer Analyzer) *Space {
	df := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]struct{})
		for _, t := range analyzer.Terms(doc) {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			df[t]++
		}
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	s := &Space{
		analyzer: analyzer,
		vocab:    make(map[string]int, len(terms)),
		terms:    terms,
		idf:      make([]float64, len(terms)),
		docs:     len(corpus),
	}
	n := float64(len(corpus))
	for i, t := range terms {
		s.vocab[t] = i
		s.idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}
	return s
}

// Transform maps text onto the space: raw term counts times IDF, scaled to
// unit length. Terms outside the vocabulary are ignored.
func (s *Space) Transform(text string) Vector {
	counts := make(map[int]float64)
	for _, t := range s.analyzer.Terms(text) {
		if i, ok := s.vocab[t]; ok {
			counts[i]++
		}
	}
	for i, c := range counts {
		counts[i] = c * s.idf[i]
	}
	v := newVector(counts)
	v.normalize()
	return v
}

// FitTransform fits the space on corpus and returns one vector per document.
func FitTransform(corpus []string, analyzer Analyzer) (*Space, []Vector) {
	s := Fit(corpus, analyzer)
	vectors := make([]Vector, len(corpus))
	for i, doc := range corpus {
		vectors[i] = s.Transform(doc)
	}
	return s, vectors
}

// Size returns the vocabulary size.
func (s *Space) Size() int { return len(s.terms) }

// Documents returns the number of documents the space was fitted on.
func (s *Space) Documents() int { return s.docs }

// Term returns the vocabulary term at index i.
func (s *Space) Term(i int) string { return s.terms[i] }

// IDF returns the weight of term, and whether it is in the vocabulary.
func (s *Space) IDF(term string) (float64, bool) {
	i, ok := s.vocab[term]
	if !ok {
		return 0, false
	}
	return s.idf[i], true
}
