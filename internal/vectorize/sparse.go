package vectorize

import "math"

// SparseVector maps column ids to non-negative TF-IDF weights. An empty
// vector is valid and has similarity 0 with everything.
type SparseVector map[int]float64

// Norm returns the L2 norm of the vector.
func (v SparseVector) Norm() float64 {
	var sum float64
	for _, w := range v {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// Dot returns the sparse dot product, iterating the smaller vector and
// probing the larger.
func Dot(a, b SparseVector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for col, w := range a {
		if bw, ok := b[col]; ok {
			dot += w * bw
		}
	}
	return dot
}

// Cosine returns the cosine similarity of two vectors given their precomputed
// norms, clamped to [0,1]. Defined as 0 when either norm is 0.
func Cosine(a, b SparseVector, aNorm, bNorm float64) float64 {
	if aNorm == 0 || bNorm == 0 {
		return 0
	}
	sim := Dot(a, b) / (aNorm * bNorm)
	return math.Max(0, math.Min(1, sim))
}
