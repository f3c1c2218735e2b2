// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package algorithms

import (
	"testing"

	"github.com/tomtom215/framescout/internal/retrieval"
)

func TestFuse(t *testing.T) {
	t.Parallel()

	vec := retrieval.NewRankedList([]int64{1, 2, 3}, []float64{0.1, 0.5, 0.9}, retrieval.Ascending)
	gr := retrieval.NewRankedList([]int64{3, 4}, []float64{0.6, 0.2}, retrieval.Descending)

	fused := Fuse(vec, gr, 10, DefaultBoostAmount)

	want := []retrieval.Candidate{
		{ID: 3, Score: 2},   // graph-only value 1, boosted for appearing in both lists
		{ID: 1, Score: 1},   // closest vector hit, unboosted
		{ID: 2, Score: 0.5}, // mid distance
		{ID: 4, Score: 0},   // lowest graph score
	}
	if fused.Len() != len(want) {
		t.Fatalf("Fuse() = %+v, want %+v", fused.Items, want)
	}
	for i, c := range fused.Items {
		if c.ID != want[i].ID || !approxEqual(c.Score, want[i].Score) {
			t.Errorf("Fuse()[%d] = %+v, want %+v", i, c, want[i])
		}
	}
	if fused.Order != retrieval.Descending {
		t.Errorf("Order = %v, want descending", fused.Order)
	}
}

func TestFuse_BoostIsExactMultiplier(t *testing.T) {
	t.Parallel()

	vec := retrieval.NewRankedList([]int64{7, 8}, []float64{0.2, 0.6}, retrieval.Ascending)
	gr := retrieval.NewRankedList([]int64{7, 9}, []float64{0.3, 0.1}, retrieval.Descending)

	unboosted := Fuse(vec, gr, 10, 1)
	boosted := Fuse(vec, gr, 10, 3)

	find := func(l retrieval.RankedList, id int64) float64 {
		for _, c := range l.Items {
			if c.ID == id {
				return c.Score
			}
		}
		t.Fatalf("id %d missing from %+v", id, l.Items)
		return 0
	}
	if got, base := find(boosted, 7), find(unboosted, 7); !approxEqual(got, 3*base) {
		t.Errorf("boosted score = %f, want 3 x %f", got, base)
	}
	if got, base := find(boosted, 8), find(unboosted, 8); !approxEqual(got, base) {
		t.Errorf("vector-only score = %f, want %f (no boost)", got, base)
	}
}

func TestFuse_EdgeCases(t *testing.T) {
	t.Parallel()

	vec := retrieval.NewRankedList([]int64{1, 2, 3}, []float64{0.1, 0.5, 0.9}, retrieval.Ascending)

	if got := Fuse(vec, retrieval.RankedList{}, 0, 2); got.Len() != 0 {
		t.Errorf("Fuse(k=0) = %+v, want empty", got.Items)
	}
	if got := Fuse(retrieval.RankedList{}, retrieval.RankedList{}, 5, 2); got.Len() != 0 {
		t.Errorf("Fuse(empty, empty) = %+v, want empty", got.Items)
	}
	if got := Fuse(vec, retrieval.RankedList{}, 2, 2); got.Len() != 2 || got.Items[0].ID != 1 {
		t.Errorf("Fuse(vector only, k=2) = %+v", got.Items)
	}

	single := retrieval.NewRankedList([]int64{5}, []float64{0.3}, retrieval.Ascending)
	if got := Fuse(single, retrieval.RankedList{}, 5, 2); got.Items[0].Score != 0 {
		t.Errorf("degenerate list score = %f, want 0", got.Items[0].Score)
	}
}
