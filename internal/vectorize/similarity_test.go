package vectorize

import (
	"math"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"parallel", []float64{1, 2, 3}, []float64{2, 4, 6}, 1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1},
		{"zero vector", []float64{0, 0}, []float64{1, 1}, 0},
		{"both zero", []float64{0, 0}, []float64{0, 0}, 0},
		{"length mismatch", []float64{1, 2}, []float64{1, 2, 3}, 0},
		{"empty", nil, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("expected %g, got %g", tt.want, got)
			}
		})
	}
}

func TestAdjacentSimilarities(t *testing.T) {
	t.Run("fewer than two vectors", func(t *testing.T) {
		if got := AdjacentSimilarities(nil); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
		if got := AdjacentSimilarities([][]float64{{1, 0}}); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})

	t.Run("pairs in order", func(t *testing.T) {
		vectors := [][]float64{
			{1, 0},
			{1, 0},
			{0, 1},
		}
		sims := AdjacentSimilarities(vectors)
		if len(sims) != 2 {
			t.Fatalf("expected 2 similarities, got %d", len(sims))
		}
		if math.Abs(sims[0]-1) > 1e-9 {
			t.Errorf("expected sims[0] = 1, got %g", sims[0])
		}
		if math.Abs(sims[1]) > 1e-9 {
			t.Errorf("expected sims[1] = 0, got %g", sims[1])
		}
	})
}
