// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

// Package graph holds the hashtag/keyframe co-occurrence graph in compressed
// sparse row form.
//
// Nodes are either hashtags or keyframes. Each keyframe node maps to the
// catalog item it represents. Edges are undirected with non-negative weights.
// A built Graph is immutable and safe for concurrent reads.
package graph

import (
	"fmt"
	"sort"
)

// Kind labels a node.
type Kind uint8

const (
	// KindHashtag is a keyword node.
	KindHashtag Kind = iota
	// KindKeyframe is an item node.
	KindKeyframe
)

// String returns the kind name used in graph files.
func (k Kind) String() string {
	if k == KindKeyframe {
		return "keyframe"
	}
	return "hashtag"
}

// ParseKind maps a graph file kind to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "hashtag":
		return KindHashtag, nil
	case "keyframe":
		return KindKeyframe, nil
	default:
		return 0, fmt.Errorf("unknown node kind %q", s)
	}
}

// Graph is an immutable weighted adjacency structure.
type Graph struct {
	offsets []int
	targets []int
	weights []float64

	labels  []string
	kinds   []Kind
	items   []int64
	byLabel map[string]int
}

// Len returns the node count.
func (g *Graph) Len() int {
	return len(g.labels)
}

// EdgeCount returns the number of stored directed adjacency entries.
func (g *Graph) EdgeCount() int {
	return len(g.targets)
}

// Has reports whether node is a valid node id.
func (g *Graph) Has(node int) bool {
	return node >= 0 && node < len(g.labels)
}

// Neighbors returns the neighbor ids of node and the matching edge weights.
// The returned slices alias internal storage and must not be modified.
func (g *Graph) Neighbors(node int) ([]int, []float64) {
	if !g.Has(node) {
		return nil, nil
	}
	lo, hi := g.offsets[node], g.offsets[node+1]
	return g.targets[lo:hi], g.weights[lo:hi]
}

// Weight returns the weight of the edge between a and b, if any.
func (g *Graph) Weight(a, b int) (float64, bool) {
	targets, weights := g.Neighbors(a)
	i := sort.SearchInts(targets, b)
	if i < len(targets) && targets[i] == b {
		return weights[i], true
	}
	return 0, false
}

// Kind returns the node's kind.
func (g *Graph) Kind(node int) Kind {
	return g.kinds[node]
}

// LabelOf returns the node's label.
func (g *Graph) LabelOf(node int) string {
	return g.labels[node]
}

// IDOf returns the node id for label.
func (g *Graph) IDOf(label string) (int, bool) {
	id, ok := g.byLabel[label]
	return id, ok
}

// ItemOf returns the catalog item id of a keyframe node.
func (g *Graph) ItemOf(node int) int64 {
	return g.items[node]
}

// Hashtags returns the ids of all hashtag nodes in id order.
func (g *Graph) Hashtags() []int {
	var out []int
	for id, k := range g.kinds {
		if k == KindHashtag {
			out = append(out, id)
		}
	}
	return out
}
