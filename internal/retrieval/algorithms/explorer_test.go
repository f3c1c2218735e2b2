// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package algorithms

import (
	"context"
	"math"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/framescout/internal/retrieval"
	"github.com/tomtom215/framescout/internal/retrieval/graph"
	"github.com/tomtom215/framescout/internal/retrieval/vector"
)

// sampleGraph:
//
//	#a --0.8-- #b --1.0-- kf2 (item 202)
//	 \         |
//	  0.5      0.2
//	   \       |
//	    kf1 (item 201)
func sampleGraph(t *testing.T) *graph.Graph {
	t.Helper()
	b := graph.NewBuilder()
	for _, n := range []struct {
		label string
		kind  graph.Kind
		item  int64
	}{
		{"#a", graph.KindHashtag, 0},
		{"#b", graph.KindHashtag, 0},
		{"kf1", graph.KindKeyframe, 201},
		{"kf2", graph.KindKeyframe, 202},
	} {
		if _, err := b.AddNode(n.label, n.kind, n.item); err != nil {
			t.Fatal(err)
		}
	}
	for _, e := range []struct {
		s, t string
		w    float64
	}{
		{"#a", "kf1", 0.5},
		{"#a", "#b", 0.8},
		{"#b", "kf2", 1.0},
		{"#b", "kf1", 0.2},
	} {
		if err := b.AddEdge(e.s, e.t, e.w); err != nil {
			t.Fatal(err)
		}
	}
	return b.Build()
}

type stubEncoder struct {
	vec []float32
	err error
}

func (s stubEncoder) EncodeText(context.Context, string) ([]float32, error) {
	return s.vec, s.err
}

func TestExplorer_Explore(t *testing.T) {
	t.Parallel()

	g := sampleGraph(t)
	cfg := retrieval.DefaultConfig().Graph
	ex := NewExplorer(g, cfg, zerolog.Nop())

	list, stats, err := ex.Explore(context.Background(), []string{"#a"}, 10)
	if err != nil {
		t.Fatalf("Explore() error = %v", err)
	}

	// Level 0 from #a (path length 1), level 1 from #b (path length 2).
	pf2 := 1 / (1 + math.Log(2))
	scoreB := 0.7*0.8 + 0.3
	kf1 := (0.7*0.5+0.3)*math.Log(2) + scoreB*(0.7*0.2+0.3*pf2)*math.Log(3)
	kf2 := scoreB * (0.7*1.0 + 0.3*pf2) * math.Log(2)
	total := kf1 + kf2

	if list.Len() != 2 {
		t.Fatalf("Explore() = %+v, want 2 keyframes", list.Items)
	}
	if list.Items[0].ID != 201 || list.Items[1].ID != 202 {
		t.Errorf("order = %v, want [201 202]", list.IDs())
	}
	if !approxEqual(list.Items[0].Score, kf1/total) || !approxEqual(list.Items[1].Score, kf2/total) {
		t.Errorf("scores = %v, want [%f %f]", list.Scores(), kf1/total, kf2/total)
	}
	if stats.Iterations != 3 || stats.Keyframes != 3 {
		t.Errorf("stats = %+v, want 3 iterations and 3 keyframe contributions", stats)
	}
}

func TestExplorer_Properties(t *testing.T) {
	t.Parallel()

	g := sampleGraph(t)
	ex := NewExplorer(g, retrieval.DefaultConfig().Graph, zerolog.Nop())

	list, _, err := ex.Explore(context.Background(), []string{"#a", "#b"}, 10)
	if err != nil {
		t.Fatalf("Explore() error = %v", err)
	}

	var sum float64
	seen := make(map[int64]bool)
	for i, c := range list.Items {
		sum += c.Score
		if seen[c.ID] {
			t.Errorf("keyframe %d appears twice", c.ID)
		}
		seen[c.ID] = true
		if i > 0 && list.Items[i-1].Score < c.Score {
			t.Errorf("scores not non-increasing: %v", list.Scores())
		}
	}
	if sum > 1+1e-9 {
		t.Errorf("score sum = %f, want <= 1", sum)
	}
}

func TestExplorer_Limits(t *testing.T) {
	t.Parallel()

	g := sampleGraph(t)

	tests := []struct {
		name    string
		modify  func(*retrieval.GraphConfig)
		wantIDs []int64
		maxIter int
	}{
		{"max iterations", func(c *retrieval.GraphConfig) { c.MaxIterations = 1 }, []int64{201}, 1},
		{"max keyframes", func(c *retrieval.GraphConfig) { c.MaxKeyframes = 1 }, []int64{201}, 1},
		{"min score threshold", func(c *retrieval.GraphConfig) { c.MinScoreThreshold = 0.9 }, []int64{201}, 1},
		{"single level", func(c *retrieval.GraphConfig) { c.MaxDepth = 1 }, []int64{201}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := retrieval.DefaultConfig().Graph
			tt.modify(&cfg)
			list, stats, err := NewExplorer(g, cfg, zerolog.Nop()).Explore(context.Background(), []string{"#a"}, 10)
			if err != nil {
				t.Fatalf("Explore() error = %v", err)
			}
			ids := list.IDs()
			if len(ids) != len(tt.wantIDs) || ids[0] != tt.wantIDs[0] {
				t.Errorf("IDs() = %v, want %v", ids, tt.wantIDs)
			}
			if stats.Iterations > tt.maxIter {
				t.Errorf("Iterations = %d, want <= %d", stats.Iterations, tt.maxIter)
			}
			if list.Items[0].Score != 1 {
				t.Errorf("single keyframe score = %f, want 1", list.Items[0].Score)
			}
		})
	}
}

func TestExplorer_UnseenSeed(t *testing.T) {
	t.Parallel()

	g := sampleGraph(t)
	cfg := retrieval.DefaultConfig().Graph

	a, _ := g.IDOf("#a")
	b, _ := g.IDOf("#b")
	vocab := vector.NewFlatIndex(2)
	if err := vocab.Add(int64(a), []float32{0, 0}); err != nil {
		t.Fatal(err)
	}
	if err := vocab.Add(int64(b), []float32{10, 10}); err != nil {
		t.Fatal(err)
	}

	t.Run("resolved through vocabulary", func(t *testing.T) {
		ex := NewExplorer(g, cfg, zerolog.Nop(), WithSeedLookup(stubEncoder{vec: []float32{0, 0}}, vocab))
		got, stats, err := ex.Explore(context.Background(), []string{"#pony"}, 10)
		if err != nil {
			t.Fatalf("Explore() error = %v", err)
		}
		want, _, _ := NewExplorer(g, cfg, zerolog.Nop()).Explore(context.Background(), []string{"#a"}, 10)
		if stats.Seeds != 1 {
			t.Errorf("Seeds = %d, want 1 (only #a is similar enough)", stats.Seeds)
		}
		if got.Len() != want.Len() || got.Items[0].ID != want.Items[0].ID {
			t.Errorf("Explore(#pony) = %v, want %v", got.IDs(), want.IDs())
		}
	})

	t.Run("dropped without lookup", func(t *testing.T) {
		got, _, err := NewExplorer(g, cfg, zerolog.Nop()).Explore(context.Background(), []string{"#pony"}, 10)
		if err != nil || got.Len() != 0 {
			t.Errorf("Explore(#pony) = %v, %v, want empty, nil", got.IDs(), err)
		}
	})

	t.Run("encoder failure is surfaced", func(t *testing.T) {
		enc := stubEncoder{err: &retrieval.RetrievalError{Op: "encode", Err: retrieval.ErrIndexUnavailable}}
		_, _, err := NewExplorer(g, cfg, zerolog.Nop(), WithSeedLookup(enc, vocab)).Explore(context.Background(), []string{"#pony"}, 10)
		if !retrieval.IsRetrievalError(err) {
			t.Errorf("Explore() error = %v, want RetrievalError", err)
		}
	})
}

func TestExplorer_TopK(t *testing.T) {
	t.Parallel()

	ex := NewExplorer(sampleGraph(t), retrieval.DefaultConfig().Graph, zerolog.Nop())

	list, _, _ := ex.Explore(context.Background(), []string{"#a"}, 1)
	if list.Len() != 1 || list.Items[0].ID != 201 {
		t.Errorf("Explore(k=1) = %v, want [201]", list.IDs())
	}
	list, _, _ = ex.Explore(context.Background(), []string{"#a"}, 0)
	if list.Len() != 0 {
		t.Errorf("Explore(k=0) = %v, want empty", list.IDs())
	}
}
