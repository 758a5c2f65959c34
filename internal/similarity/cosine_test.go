package similarity

import (
	"errors"
	"math"
	"testing"

	"github.com/talentforge-labs/matchcore/internal/core/domain"
)

func TestCosine_Identity(t *testing.T) {
	v := []float32{0.5, 1.2, -0.3, 2.0}

	sim, err := Cosine(v, v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(sim-1.0) > 1e-9 {
		t.Errorf("expected cosine(v, v) ~= 1.0, got %f", sim)
	}
}

func TestCosine_Orthogonal(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{0, 1}

	sim, err := Cosine(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sim != 0 {
		t.Errorf("expected 0 for orthogonal vectors, got %f", sim)
	}
}

func TestCosine_Finite(t *testing.T) {
	pairs := [][2][]float32{
		{{1, 2, 3}, {4, 5, 6}},
		{{-1, -2, -3}, {1, 2, 3}},
		{{0, 0, 0}, {1, 2, 3}},
		{{1e-30, 1e-30}, {1e30, 1e30}},
	}

	for i, pair := range pairs {
		sim, err := Cosine(pair[0], pair[1])
		if err != nil {
			t.Fatalf("pair %d: unexpected error: %v", i, err)
		}
		if math.IsNaN(sim) || math.IsInf(sim, 0) {
			t.Errorf("pair %d: expected finite similarity, got %f", i, sim)
		}
	}
}

func TestCosine_DimensionMismatch(t *testing.T) {
	_, err := Cosine([]float32{1, 2}, []float32{1, 2, 3})
	if !errors.Is(err, domain.ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestBatchCosine(t *testing.T) {
	query := []float32{1, 0}
	candidates := [][]float32{
		{1, 0},  // identical
		{0, 1},  // orthogonal
		{-1, 0}, // opposite
		{2, 0},  // same direction, different magnitude
	}

	sims, err := BatchCosine(query, candidates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sims) != 4 {
		t.Fatalf("expected 4 results, got %d", len(sims))
	}

	want := []float64{1, 0, -1, 1}
	for i, w := range want {
		if math.Abs(sims[i]-w) > 1e-9 {
			t.Errorf("candidate %d: expected %f, got %f", i, w, sims[i])
		}
	}
}

func TestBatchCosine_MatchesPairwise(t *testing.T) {
	query := []float32{0.3, 0.9, 0.1, 0.5}
	candidates := [][]float32{
		{0.2, 0.8, 0.4, 0.1},
		{0.9, 0.1, 0.3, 0.7},
		{0.5, 0.5, 0.5, 0.5},
	}

	batch, err := BatchCosine(query, candidates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, cand := range candidates {
		single, err := Cosine(query, cand)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if math.Abs(batch[i]-single) > 1e-12 {
			t.Errorf("candidate %d: batch %f != pairwise %f", i, batch[i], single)
		}
	}
}

func TestBatchCosine_DimensionMismatch(t *testing.T) {
	_, err := BatchCosine([]float32{1, 2}, [][]float32{{1, 2}, {1, 2, 3}})
	if !errors.Is(err, domain.ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestPct(t *testing.T) {
	cases := []struct {
		sim  float64
		want float64
	}{
		{0, 0},
		{1, 100},
		{0.5, 50},
		{0.42424, 42.42},
		{0.42426, 42.43},
	}

	for _, c := range cases {
		if got := Pct(c.sim); got != c.want {
			t.Errorf("Pct(%f): expected %f, got %f", c.sim, c.want, got)
		}
	}
}
