package vectorize

import "math"

// CosineSimilarity returns the cosine of the angle between two vectors.
// Vectors from FitTransform are already L2-normalized, but the norms are
// recomputed so callers can pass arbitrary vectors.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// AdjacentSimilarities returns the cosine similarity between each pair of
// neighboring vectors: result[i] compares vectors[i] and vectors[i+1].
// O(n) values, never the full pairwise matrix.
func AdjacentSimilarities(vectors [][]float64) []float64 {
	if len(vectors) < 2 {
		return nil
	}
	sims := make([]float64, len(vectors)-1)
	for i := 0; i < len(vectors)-1; i++ {
		sims[i] = CosineSimilarity(vectors[i], vectors[i+1])
	}
	return sims
}
