// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package vector

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/framescout/internal/retrieval"
)

// NoMatch is the id an index reports for an unfilled result slot.
const NoMatch int64 = -1

// Index is an approximate nearest-neighbor index. Distances are ascending.
type Index interface {
	Search(ctx context.Context, vector []float32, k int) (distances []float32, ids []int64, err error)
}

// Adapter enforces the search contract on top of an Index.
type Adapter struct {
	name  string
	index Index
}

// NewAdapter wraps index under the given name.
func NewAdapter(name string, index Index) *Adapter {
	return &Adapter{name: name, index: index}
}

// Name returns the index name.
func (a *Adapter) Name() string {
	return a.name
}

// Search queries the index and drops NoMatch ids. The distance slice is
// truncated to the length of the filtered id slice. A non-positive k returns
// empty results without touching the index.
func (a *Adapter) Search(ctx context.Context, vector []float32, k int) ([]float32, []int64, error) {
	if k <= 0 {
		return []float32{}, []int64{}, nil
	}
	if a.index == nil {
		return nil, nil, &retrieval.RetrievalError{Op: "search", Index: a.name, Err: retrieval.ErrIndexUnavailable}
	}

	distances, ids, err := a.index.Search(ctx, vector, k)
	if err != nil {
		var re *retrieval.RetrievalError
		if errors.As(err, &re) {
			return nil, nil, err
		}
		return nil, nil, &retrieval.RetrievalError{Op: "search", Index: a.name, Err: err}
	}

	filtered := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id != NoMatch {
			filtered = append(filtered, id)
		}
	}
	if len(distances) < len(filtered) {
		return nil, nil, &retrieval.RetrievalError{
			Op:    "search",
			Index: a.name,
			Err:   fmt.Errorf("index returned %d distances for %d ids", len(distances), len(filtered)),
		}
	}

	return distances[:len(filtered)], filtered, nil
}

// SearchList is Search returning an ascending RankedList.
func (a *Adapter) SearchList(ctx context.Context, vector []float32, k int) (retrieval.RankedList, error) {
	distances, ids, err := a.Search(ctx, vector, k)
	if err != nil {
		return retrieval.RankedList{}, err
	}
	scores := make([]float64, len(distances))
	for i, d := range distances {
		scores[i] = float64(d)
	}
	return retrieval.NewRankedList(ids, scores, retrieval.Ascending), nil
}
