// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package algorithms

import (
	"math"

	"github.com/tomtom215/framescout/internal/retrieval"
)

// NormalizeScores maps scores to [0, 1] with (s-min)/(max-min).
// A list whose max equals its min maps to all zeros.
func NormalizeScores(scores []float64) []float64 {
	out := make([]float64, len(scores))
	lo, hi, ok := bounds(scores)
	if !ok || hi == lo {
		return out
	}
	for i, s := range scores {
		out[i] = (s - lo) / (hi - lo)
	}
	return out
}

// NormalizeDistances maps distances to [0, 1] similarities with
// (max-d)/(max-min), so the smallest distance scores 1.
// A list whose max equals its min maps to all zeros.
func NormalizeDistances(distances []float64) []float64 {
	out := make([]float64, len(distances))
	lo, hi, ok := bounds(distances)
	if !ok || hi == lo {
		return out
	}
	for i, d := range distances {
		out[i] = (hi - d) / (hi - lo)
	}
	return out
}

// Normalize maps a list's scores to [0, 1] where 1 is best, honoring the
// list's order.
func Normalize(list retrieval.RankedList) []float64 {
	if list.Order == retrieval.Ascending {
		return NormalizeDistances(list.Scores())
	}
	return NormalizeScores(list.Scores())
}

// ToSimilarity returns list re-scored as descending similarities in [0, 1].
// Descending lists are returned as a copy unchanged.
func ToSimilarity(list retrieval.RankedList) retrieval.RankedList {
	if list.Order == retrieval.Descending {
		return list.Clone()
	}
	return retrieval.NewRankedList(list.IDs(), NormalizeDistances(list.Scores()), retrieval.Descending)
}

func bounds(values []float64) (lo, hi float64, ok bool) {
	if len(values) == 0 {
		return 0, 0, false
	}
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi, true
}

// Cosine returns the cosine similarity of a and b, or 0 when either has
// zero norm or the lengths differ.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
