// Package similarity implements cosine similarity scoring over embedding
// vectors. Vectors entering one comparison must share a dimension; a
// mismatch means two embedding backends were mixed and fails fast.
package similarity

import (
	"fmt"
	"math"

	"github.com/talentforge-labs/matchcore/internal/core/domain"
)

// Cosine computes the cosine similarity between two vectors. Mathematically
// the result is in [-1, 1]; embedding families used here trend non-negative
// so callers treat it as [0, 1]. A zero vector on either side yields 0.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", domain.ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// BatchCosine computes the similarity of one query vector against every
// candidate in a single pass, reusing the query norm. Result order matches
// the candidate order.
func BatchCosine(query []float32, candidates [][]float32) ([]float64, error) {
	var queryNorm float64
	for _, v := range query {
		queryNorm += float64(v) * float64(v)
	}
	queryNorm = math.Sqrt(queryNorm)

	sims := make([]float64, len(candidates))
	for i, cand := range candidates {
		if len(cand) != len(query) {
			return nil, fmt.Errorf("%w: candidate %d has %d dimensions, query has %d",
				domain.ErrDimensionMismatch, i, len(cand), len(query))
		}

		var dot, norm float64
		for j := range cand {
			dot += float64(query[j]) * float64(cand[j])
			norm += float64(cand[j]) * float64(cand[j])
		}

		if queryNorm == 0 || norm == 0 {
			sims[i] = 0
			continue
		}
		sims[i] = dot / (queryNorm * math.Sqrt(norm))
	}

	return sims, nil
}

// Pct converts a similarity to a display percentage, rounded to two decimals
func Pct(sim float64) float64 {
	return math.Round(sim*10000) / 100
}
