// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package graph

import (
	"fmt"
	"math"
	"sort"
)

// Builder accumulates nodes and edges for a Graph.
// A repeated edge replaces the earlier weight. Self loops are ignored.
type Builder struct {
	labels  []string
	kinds   []Kind
	items   []int64
	byLabel map[string]int
	adj     []map[int]float64
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{byLabel: make(map[string]int)}
}

// AddNode registers a node and returns its id. Adding an existing label
// returns the existing id and fails if the kind differs.
func (b *Builder) AddNode(label string, kind Kind, item int64) (int, error) {
	if label == "" {
		return 0, fmt.Errorf("empty node label")
	}
	if id, ok := b.byLabel[label]; ok {
		if b.kinds[id] != kind {
			return 0, fmt.Errorf("node %q already registered as %s", label, b.kinds[id])
		}
		return id, nil
	}
	id := len(b.labels)
	b.labels = append(b.labels, label)
	b.kinds = append(b.kinds, kind)
	b.items = append(b.items, item)
	b.adj = append(b.adj, make(map[int]float64))
	b.byLabel[label] = id
	return id, nil
}

// AddEdge connects two registered labels, overwriting the weight of an
// existing edge between them in either direction.
func (b *Builder) AddEdge(source, target string, weight float64) error {
	if weight < 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return fmt.Errorf("edge %s-%s: invalid weight %v", source, target, weight)
	}
	s, ok := b.byLabel[source]
	if !ok {
		return fmt.Errorf("edge source %q: unknown node", source)
	}
	t, ok := b.byLabel[target]
	if !ok {
		return fmt.Errorf("edge target %q: unknown node", target)
	}
	if s == t {
		return nil
	}
	b.adj[s][t] = weight
	b.adj[t][s] = weight
	return nil
}

// Build freezes the builder into a Graph. Neighbor lists are sorted by id.
func (b *Builder) Build() *Graph {
	n := len(b.labels)
	g := &Graph{
		offsets: make([]int, n+1),
		labels:  append([]string(nil), b.labels...),
		kinds:   append([]Kind(nil), b.kinds...),
		items:   append([]int64(nil), b.items...),
		byLabel: make(map[string]int, n),
	}
	for label, id := range b.byLabel {
		g.byLabel[label] = id
	}

	total := 0
	for i, m := range b.adj {
		g.offsets[i] = total
		total += len(m)
	}
	g.offsets[n] = total

	g.targets = make([]int, 0, total)
	g.weights = make([]float64, 0, total)
	for _, m := range b.adj {
		start := len(g.targets)
		for t := range m {
			g.targets = append(g.targets, t)
		}
		row := g.targets[start:]
		sort.Ints(row)
		for _, t := range row {
			g.weights = append(g.weights, m[t])
		}
	}
	return g
}
