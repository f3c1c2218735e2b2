// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package vector

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/tomtom215/framescout/internal/retrieval"
)

// FlatIndex is an exact squared-L2 index held in memory.
// It is safe for concurrent use.
type FlatIndex struct {
	mu      sync.RWMutex
	dim     int
	ids     []int64
	vectors [][]float32
}

// NewFlatIndex creates an empty index for vectors of length dim.
func NewFlatIndex(dim int) *FlatIndex {
	return &FlatIndex{dim: dim}
}

// Dim returns the vector length accepted by the index.
func (f *FlatIndex) Dim() int {
	return f.dim
}

// Len returns the number of stored vectors.
func (f *FlatIndex) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.ids)
}

// Add stores a copy of vec under id.
func (f *FlatIndex) Add(id int64, vec []float32) error {
	if len(vec) != f.dim {
		return fmt.Errorf("%w: got %d, want %d", retrieval.ErrDimensionMismatch, len(vec), f.dim)
	}
	v := make([]float32, len(vec))
	copy(v, vec)

	f.mu.Lock()
	f.ids = append(f.ids, id)
	f.vectors = append(f.vectors, v)
	f.mu.Unlock()
	return nil
}

// Search returns the k nearest vectors by squared L2 distance. Slots beyond
// the stored count are padded with NoMatch and math.MaxFloat32.
func (f *FlatIndex) Search(ctx context.Context, query []float32, k int) ([]float32, []int64, error) {
	if len(query) != f.dim {
		return nil, nil, fmt.Errorf("%w: got %d, want %d", retrieval.ErrDimensionMismatch, len(query), f.dim)
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	f.mu.RLock()
	order := make([]int, len(f.ids))
	dist := make([]float32, len(f.ids))
	for i, v := range f.vectors {
		order[i] = i
		dist[i] = squaredL2(query, v)
	}
	ids := f.ids
	f.mu.RUnlock()

	sort.SliceStable(order, func(a, b int) bool { return dist[order[a]] < dist[order[b]] })

	outD := make([]float32, k)
	outI := make([]int64, k)
	for i := 0; i < k; i++ {
		if i < len(order) {
			outD[i] = dist[order[i]]
			outI[i] = ids[order[i]]
			continue
		}
		outD[i] = math.MaxFloat32
		outI[i] = NoMatch
	}
	return outD, outI, nil
}

func squaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
