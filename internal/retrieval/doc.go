// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

// Package retrieval defines the shared vocabulary of the keyframe ranking
// engine: candidates, ranked lists, feedback actions, tunables, and the
// errors surfaced by external collaborators.
//
// # Architecture
//
// A query turns into a base ranking through one or both signals:
//
//   - Vector search: the query text is encoded and matched against a named
//     approximate nearest-neighbor index (subpackage vector).
//   - Graph exploration: hashtags seed a bounded frontier search over the
//     hashtag/keyframe co-occurrence graph (subpackages graph, algorithms).
//
// When both signals are present their rankings are fused. On later turns of
// a session the base ranking is refined with the user's committed feedback
// (subpackages feedback, reranking). Orchestration lives in subpackage engine.
//
// # Determinism
//
// Every component is deterministic for fixed inputs except the randomized
// seed replacement in exploration, which draws from a seeded source owned by
// the engine. Equal scores keep first-discovered order.
//
// # Thread Safety
//
// Ranking components hold no mutable state between calls. The feedback store
// serializes writers per session.
package retrieval
