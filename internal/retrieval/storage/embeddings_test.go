// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/framescout/internal/retrieval"
)

// setupTestStore creates an in-memory store closed at test cleanup.
func setupTestStore(t *testing.T) *EmbeddingStore {
	t.Helper()
	s, err := Open(Config{InMemory: true}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return s
}

func TestEmbeddingStore_PutGet(t *testing.T) {
	t.Parallel()

	s := setupTestStore(t)
	ctx := context.Background()

	want := []float32{0.25, -1.5, 3}
	if err := s.Put(ctx, 42, want); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := s.Embedding(ctx, 42)
	if err != nil {
		t.Fatalf("Embedding() error = %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("Embedding() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Embedding()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	_, err = s.Get(ctx, 7)
	if !errors.Is(err, retrieval.ErrMissingEmbedding) {
		t.Errorf("Get(missing) error = %v, want ErrMissingEmbedding", err)
	}

	if err := s.Put(ctx, 1, nil); err == nil {
		t.Error("Put(empty) error = nil, want error")
	}
}

func TestEmbeddingStore_BatchIterate(t *testing.T) {
	t.Parallel()

	s := setupTestStore(t)
	ctx := context.Background()

	vectors := map[int64][]float32{
		1: {1, 0},
		2: {0, 1},
		3: {1, 1},
	}
	if err := s.PutBatch(ctx, vectors); err != nil {
		t.Fatalf("PutBatch() error = %v", err)
	}

	n, err := s.Len()
	if err != nil || n != 3 {
		t.Fatalf("Len() = (%d, %v), want 3", n, err)
	}

	seen := make(map[int64]bool)
	err = s.Iterate(ctx, func(id int64, vec []float32) error {
		want := vectors[id]
		if len(vec) != 2 || vec[0] != want[0] || vec[1] != want[1] {
			t.Errorf("Iterate() id %d = %v, want %v", id, vec, want)
		}
		seen[id] = true
		return nil
	})
	if err != nil {
		t.Fatalf("Iterate() error = %v", err)
	}
	if len(seen) != 3 {
		t.Errorf("Iterate() visited %d items, want 3", len(seen))
	}

	stop := errors.New("stop")
	if err := s.Iterate(ctx, func(int64, []float32) error { return stop }); !errors.Is(err, stop) {
		t.Errorf("Iterate() error = %v, want callback error", err)
	}
}

func TestEmbeddingStore_ImportAndIndex(t *testing.T) {
	t.Parallel()

	s := setupTestStore(t)
	ctx := context.Background()

	n, err := s.ImportJSON(ctx, strings.NewReader(`{"10": [0, 0], "11": [3, 4], "12": [1, 0]}`))
	if err != nil || n != 3 {
		t.Fatalf("ImportJSON() = (%d, %v), want 3", n, err)
	}

	idx, err := s.BuildFlatIndex(ctx, 2)
	if err != nil {
		t.Fatalf("BuildFlatIndex() error = %v", err)
	}
	distances, ids, err := idx.Search(ctx, []float32{0, 0}, 2)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if ids[0] != 10 || ids[1] != 12 || distances[1] != 1 {
		t.Errorf("Search() = %v %v, want ids [10 12] with distance 1", ids, distances)
	}

	if _, err := s.ImportJSON(ctx, strings.NewReader(`{"x": [1]}`)); err == nil {
		t.Error("ImportJSON(bad key) error = nil, want error")
	}
	if _, err := s.BuildFlatIndex(ctx, 3); !errors.Is(err, retrieval.ErrDimensionMismatch) {
		t.Errorf("BuildFlatIndex(wrong dim) error = %v, want ErrDimensionMismatch", err)
	}
}

func TestEmbeddingStore_RunGCInMemory(t *testing.T) {
	t.Parallel()

	s := setupTestStore(t)
	if err := s.RunGC(0.5); err != nil {
		t.Errorf("RunGC() error = %v, want nil for in-memory store", err)
	}
}

func TestEmbeddingStore_Dimension(t *testing.T) {
	t.Parallel()

	s := setupTestStore(t)
	ctx := context.Background()

	dim, err := s.Dimension(ctx)
	if err != nil || dim != 0 {
		t.Fatalf("Dimension(empty) = (%d, %v), want 0", dim, err)
	}
	if err := s.Put(ctx, 1, []float32{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if dim, err = s.Dimension(ctx); err != nil || dim != 3 {
		t.Errorf("Dimension() = (%d, %v), want 3", dim, err)
	}
}
