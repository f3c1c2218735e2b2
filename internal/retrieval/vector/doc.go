// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

// Package vector wraps approximate nearest-neighbor indexes and text encoders
// behind a small search contract.
//
// Index implementations return distances in ascending order, padded with the
// sentinel id -1 when fewer than k matches exist. Adapter strips the sentinel
// and reports every collaborator failure as a retrieval.RetrievalError.
//
// RemoteIndex and RemoteEncoder talk to external services over HTTP and are
// protected by a circuit breaker and a client-side rate limiter. FlatIndex is
// an exact in-memory index used for small vocabularies such as hashtag
// embeddings.
package vector
