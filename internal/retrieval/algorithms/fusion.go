// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package algorithms

import (
	"github.com/tomtom215/framescout/internal/retrieval"
)

// DefaultBoostAmount rewards ids found by both signals.
const DefaultBoostAmount = 2.0

// Fuse merges a vector ranking and a graph ranking into the top k
// descending candidates.
//
// Each list is min-max normalized so that 1 is best. For every id in the
// union, with v and g its normalized values (0 when absent from a source):
//
//	combined = v*v/(v+g) + g*g/(v+g)    (0 when v+g == 0)
//
// Ids present in both source lists are multiplied by boost. Ties keep
// first-seen order, vector list first.
func Fuse(vectorList, graphList retrieval.RankedList, k int, boost float64) retrieval.RankedList {
	if k <= 0 {
		return retrieval.RankedList{Items: []retrieval.Candidate{}, Order: retrieval.Descending}
	}

	vNorm := Normalize(vectorList)
	gNorm := Normalize(graphList)

	vMap := make(map[int64]float64, vectorList.Len())
	gMap := make(map[int64]float64, graphList.Len())
	order := make([]int64, 0, vectorList.Len()+graphList.Len())
	seen := make(map[int64]struct{}, cap(order))

	for i, c := range vectorList.Items {
		vMap[c.ID] = vNorm[i]
		if _, ok := seen[c.ID]; !ok {
			seen[c.ID] = struct{}{}
			order = append(order, c.ID)
		}
	}
	for i, c := range graphList.Items {
		gMap[c.ID] = gNorm[i]
		if _, ok := seen[c.ID]; !ok {
			seen[c.ID] = struct{}{}
			order = append(order, c.ID)
		}
	}

	items := make([]retrieval.Candidate, 0, len(order))
	for _, id := range order {
		v, inV := vMap[id]
		g, inG := gMap[id]
		combined := combine(v, g)
		if inV && inG {
			combined *= boost
		}
		items = append(items, retrieval.Candidate{ID: id, Score: combined})
	}

	fused := retrieval.RankedList{Items: items, Order: retrieval.Descending}
	fused.SortByScore()
	return fused.Top(k)
}

func combine(v, g float64) float64 {
	sum := v + g
	if sum <= 0 {
		return 0
	}
	return (v/sum)*v + (g/sum)*g
}
