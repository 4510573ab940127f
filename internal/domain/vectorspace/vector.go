package vectorspace

import (
	"math"
	"sort"
)

// Entry is one non-zero component of a sparse vector.
type Entry struct {
	Term   int
	Weight float64
}

// Vector is a sparse vector sorted by Term, for merge-join operations.
type Vector []Entry

// newVector builds a sorted Vector from term weights, dropping zeros.
func newVector(weights map[int]float64) Vector {
	if len(weights) == 0 {
		return nil
	}
	v := make(Vector, 0, len(weights))
	for term, w := range weights {
		if w != 0 {
			v = append(v, Entry{Term: term, Weight: w})
		}
	}
	sort.Slice(v, func(i, j int) bool { return v[i].Term < v[j].Term })
	return v
}

// Norm returns the Euclidean length of v.
func (v Vector) Norm() float64 {
	var sum float64
	for _, e := range v {
		sum += e.Weight * e.Weight
	}
	return math.Sqrt(sum)
}

// normalize scales v to unit length in place. Zero vectors are left as is.
func (v Vector) normalize() {
	n := v.Norm()
	if n == 0 {
		return
	}
	for i := range v {
		v[i].Weight /= n
	}
}

// Dot computes the inner product of two sorted sparse vectors.
func Dot(a, b Vector) float64 {
	var dot float64
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Term == b[j].Term:
			dot += a[i].Weight * b[j].Weight
			i++
			j++
		case a[i].Term < b[j].Term:
			i++
		default:
			j++
		}
	}
	return dot
}

// CosineSimilarity returns the cosine of the angle between a and b,
// or 0 when either vector is zero.
func CosineSimilarity(a, b Vector) float64 {
	denom := a.Norm() * b.Norm()
	if denom == 0 {
		return 0
	}
	return Dot(a, b) / denom
}

// Equal reports whether two vectors have identical terms and weights.
func (v Vector) Equal(o Vector) bool {
	if len(v) != len(o) {
		return false
	}
	for i := range v {
		if v[i] != o[i] {
			return false
		}
	}
	return true
}
