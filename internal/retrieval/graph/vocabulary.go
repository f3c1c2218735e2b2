// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package graph

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/goccy/go-json"

	"github.com/tomtom215/framescout/internal/retrieval/vector"
)

// LoadVocabulary reads a JSON object mapping hashtag labels to embeddings
// and indexes the hashtags present in g under their node ids. Labels not in
// g, or not hashtag nodes, are skipped. All vectors must share one
// dimension.
func LoadVocabulary(r io.Reader, g *Graph) (*vector.FlatIndex, error) {
	var raw map[string][]float32
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode vocabulary: %w", err)
	}

	labels := make([]string, 0, len(raw))
	for label := range raw {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var idx *vector.FlatIndex
	for _, label := range labels {
		node, ok := g.IDOf(label)
		if !ok || g.Kind(node) != KindHashtag {
			continue
		}
		vec := raw[label]
		if idx == nil {
			idx = vector.NewFlatIndex(len(vec))
		}
		if err := idx.Add(int64(node), vec); err != nil {
			return nil, fmt.Errorf("hashtag %q: %w", label, err)
		}
	}
	if idx == nil {
		return vector.NewFlatIndex(0), nil
	}
	return idx, nil
}

// LoadVocabularyFile reads a vocabulary document from path.
func LoadVocabularyFile(path string, g *Graph) (*vector.FlatIndex, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("open vocabulary: %w", err)
	}
	defer func() { _ = f.Close() }()
	return LoadVocabulary(f, g)
}
