// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

// Package algorithms implements the base ranking signals of the retrieval
// engine.
//
//   - Explorer: dynamic hashtag exploration, a depth-bounded weighted
//     frontier search over the hashtag/keyframe co-occurrence graph.
//   - Fuse: merges a distance-ranked vector list and a score-ranked graph
//     list into one descending ranking, boosting ids both signals agree on.
//
// Normalization helpers shared by the rerankers live here as well. Every
// min-max normalization maps a degenerate list (max == min) to constant 0.
package algorithms
