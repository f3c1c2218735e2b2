// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

// Package reranking refines a base ranking with session feedback.
//
// Two refiners are provided:
//
//   - ImmediateRefiner propagates committed likes and dislikes to visually
//     similar candidates in a single pass over the current ranking.
//   - ExplorationEngine widens the ranking with ANN neighbors of selected
//     seed items, blends them with the base ranking, and applies the
//     recency-decayed feedback factor.
//
// # Determinism
//
// All randomness flows through the *rand.Rand given to NewExplorationEngine.
// Two engines built with the same seed and driven with the same inputs
// produce identical rankings. Per-seed ANN queries run concurrently but are
// merged in seed order, so concurrency never changes the result.
package reranking
