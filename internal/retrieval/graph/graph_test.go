// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package graph

import (
	"strings"
	"testing"
)

func buildSample(t *testing.T) *Graph {
	t.Helper()
	b := NewBuilder()
	mustNode := func(label string, kind Kind, item int64) {
		if _, err := b.AddNode(label, kind, item); err != nil {
			t.Fatalf("AddNode(%q) error = %v", label, err)
		}
	}
	mustNode("#horse", KindHashtag, 0)
	mustNode("#beach", KindHashtag, 0)
	mustNode("kf-1", KindKeyframe, 101)
	mustNode("kf-2", KindKeyframe, 102)

	for _, e := range []struct {
		s, t string
		w    float64
	}{
		{"#horse", "kf-1", 0.5},
		{"#horse", "kf-1", 0.25},
		{"#horse", "#beach", 0.4},
		{"#beach", "kf-2", 0.3},
		{"kf-2", "#beach", 0.9},
	} {
		if err := b.AddEdge(e.s, e.t, e.w); err != nil {
			t.Fatalf("AddEdge(%q, %q) error = %v", e.s, e.t, err)
		}
	}
	return b.Build()
}

func TestGraph_Neighbors(t *testing.T) {
	t.Parallel()
	g := buildSample(t)

	horse, ok := g.IDOf("#horse")
	if !ok {
		t.Fatal("IDOf(#horse) not found")
	}
	targets, _ := g.Neighbors(horse)
	if len(targets) != 2 {
		t.Fatalf("Neighbors(#horse) = %v, want 2 neighbors", targets)
	}

	kf1, _ := g.IDOf("kf-1")
	w, ok := g.Weight(horse, kf1)
	if !ok || w != 0.25 {
		t.Errorf("Weight(#horse, kf-1) = %f, %v, want 0.25 (repeated edge overwrites)", w, ok)
	}
	if back, _ := g.Weight(kf1, horse); back != 0.25 {
		t.Errorf("Weight(kf-1, #horse) = %f, want 0.25 (undirected)", back)
	}

	beach, _ := g.IDOf("#beach")
	kf2, _ := g.IDOf("kf-2")
	if w, _ := g.Weight(beach, kf2); w != 0.9 {
		t.Errorf("Weight(#beach, kf-2) = %f, want 0.9 (reversed repeat overwrites)", w)
	}
	if beachTargets, _ := g.Neighbors(beach); len(beachTargets) != 2 {
		t.Errorf("Neighbors(#beach) = %v, want 2 neighbors", beachTargets)
	}
	if n := g.EdgeCount(); n != 6 {
		t.Errorf("EdgeCount() = %d, want 6 (three undirected edges)", n)
	}
	for i := 1; i < len(targets); i++ {
		if targets[i-1] > targets[i] {
			t.Errorf("neighbors not sorted: %v", targets)
		}
	}

	if g.Kind(kf1) != KindKeyframe || g.ItemOf(kf1) != 101 {
		t.Errorf("kf-1 = (%v, %d), want (keyframe, 101)", g.Kind(kf1), g.ItemOf(kf1))
	}
	if g.LabelOf(horse) != "#horse" {
		t.Errorf("LabelOf(%d) = %q", horse, g.LabelOf(horse))
	}
	if tags := g.Hashtags(); len(tags) != 2 {
		t.Errorf("Hashtags() = %v, want 2", tags)
	}
	if ts, _ := g.Neighbors(99); ts != nil {
		t.Errorf("Neighbors(out of range) = %v, want nil", ts)
	}
}

func TestBuilder_Errors(t *testing.T) {
	t.Parallel()

	b := NewBuilder()
	if _, err := b.AddNode("#a", KindHashtag, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := b.AddNode("#a", KindKeyframe, 1); err == nil {
		t.Error("AddNode() with conflicting kind = nil, want error")
	}
	if _, err := b.AddNode("", KindHashtag, 0); err == nil {
		t.Error("AddNode(\"\") = nil, want error")
	}
	if err := b.AddEdge("#a", "#missing", 1); err == nil {
		t.Error("AddEdge(unknown target) = nil, want error")
	}
	if _, err := b.AddNode("#b", KindHashtag, 0); err != nil {
		t.Fatal(err)
	}
	if err := b.AddEdge("#a", "#b", -0.1); err == nil {
		t.Error("AddEdge(negative weight) = nil, want error")
	}
	if err := b.AddEdge("#a", "#a", 1); err != nil {
		t.Errorf("AddEdge(self loop) = %v, want nil", err)
	}
	if g := b.Build(); g.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0", g.EdgeCount())
	}
}

func TestLoadJSON(t *testing.T) {
	t.Parallel()

	doc := `{
		"nodes": [
			{"label": "#horse", "kind": "hashtag"},
			{"label": "L01_V001/0042", "kind": "keyframe", "item_id": 42}
		],
		"edges": [{"source": "#horse", "target": "L01_V001/0042", "weight": 0.8}]
	}`

	g, err := LoadJSON(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadJSON() error = %v", err)
	}
	if g.Len() != 2 || g.EdgeCount() != 2 {
		t.Errorf("Len() = %d, EdgeCount() = %d, want 2, 2", g.Len(), g.EdgeCount())
	}
	kf, _ := g.IDOf("L01_V001/0042")
	if g.ItemOf(kf) != 42 {
		t.Errorf("ItemOf() = %d, want 42", g.ItemOf(kf))
	}

	if _, err := LoadJSON(strings.NewReader(`{"nodes":[{"label":"x","kind":"video"}]}`)); err == nil {
		t.Error("LoadJSON(unknown kind) = nil, want error")
	}
}

func TestLoadVocabulary(t *testing.T) {
	g := buildSample(t)
	doc := `{"#horse": [1, 0], "#beach": [0, 1], "#unknown": [1, 1], "kf-1": [0.5, 0.5]}`

	idx, err := LoadVocabulary(strings.NewReader(doc), g)
	if err != nil {
		t.Fatalf("LoadVocabulary() error = %v", err)
	}
	if idx.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (only graph hashtags)", idx.Len())
	}

	_, ids, err := idx.Search(t.Context(), []float32{0.9, 0.1}, 1)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	horse, _ := g.IDOf("#horse")
	if ids[0] != int64(horse) {
		t.Errorf("nearest = %d, want #horse node %d", ids[0], horse)
	}

	if _, err := LoadVocabulary(strings.NewReader(`{"#horse": [1], "#beach": [0, 1]}`), g); err == nil {
		t.Error("LoadVocabulary(mixed dimensions) error = nil, want error")
	}
}
