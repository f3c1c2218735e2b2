// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package retrieval

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexUnavailable is returned when a vector index or encoder cannot be reached.
	ErrIndexUnavailable = errors.New("index unavailable")

	// ErrUnknownIndex is returned for an index name that is not registered.
	ErrUnknownIndex = errors.New("unknown index")

	// ErrEmptyQuery is returned when a query has neither text nor hashtags.
	ErrEmptyQuery = errors.New("at least one of query text or hashtags must be provided")

	// ErrMissingEmbedding is returned when an item has no stored embedding.
	ErrMissingEmbedding = errors.New("missing embedding")

	// ErrDimensionMismatch is returned when a vector has the wrong length for an index.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
)

// RetrievalError reports a failure of an external retrieval collaborator
// (ANN index, text encoder). It is fatal to the request that triggered it.
type RetrievalError struct {
	// Op is the failed operation, e.g. "search" or "encode".
	Op string

	// Index is the name of the index or encoder involved.
	Index string

	Err error
}

func (e *RetrievalError) Error() string {
	if e.Index == "" {
		return fmt.Sprintf("retrieval %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("retrieval %s %s: %v", e.Op, e.Index, e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// IsRetrievalError reports whether err wraps a RetrievalError.
func IsRetrievalError(err error) bool {
	var re *RetrievalError
	return errors.As(err, &re)
}
