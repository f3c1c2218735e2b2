// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package graph

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
)

type fileNode struct {
	Label  string `json:"label"`
	Kind   string `json:"kind"`
	ItemID int64  `json:"item_id"`
}

type fileEdge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
}

type fileGraph struct {
	Nodes []fileNode `json:"nodes"`
	Edges []fileEdge `json:"edges"`
}

// LoadJSON reads a graph document:
//
//	{"nodes": [{"label": "#horse", "kind": "hashtag"},
//	           {"label": "L01_V001/0042", "kind": "keyframe", "item_id": 42}],
//	 "edges": [{"source": "#horse", "target": "L01_V001/0042", "weight": 0.8}]}
func LoadJSON(r io.Reader) (*Graph, error) {
	var doc fileGraph
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode graph: %w", err)
	}

	b := NewBuilder()
	for i, n := range doc.Nodes {
		kind, err := ParseKind(n.Kind)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		if _, err := b.AddNode(n.Label, kind, n.ItemID); err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
	}
	for i, e := range doc.Edges {
		if err := b.AddEdge(e.Source, e.Target, e.Weight); err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
	}
	return b.Build(), nil
}

// LoadFile reads a graph document from path.
func LoadFile(path string) (*Graph, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("open graph: %w", err)
	}
	defer func() { _ = f.Close() }()
	return LoadJSON(f)
}
