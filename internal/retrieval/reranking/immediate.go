// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package reranking

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/framescout/internal/retrieval"
	"github.com/tomtom215/framescout/internal/retrieval/algorithms"
)

// ImmediateRefiner propagates committed feedback to similar candidates.
//
// For every non-neutral feedback entry, in commit order, it computes the
// cosine similarity between the entry's item and each candidate, min-max
// normalizes those similarities to [0, 1] as S, and adds S*F to the running
// scores, where F is the ranking's static sign vector (+1 liked, -1 disliked,
// 0 otherwise). The same F is used for likes and dislikes alike: the sign of
// the effect comes from the candidate's own reaction, not from the entry's.
type ImmediateRefiner struct {
	embedder retrieval.Embedder
	logger   zerolog.Logger
}

// NewImmediateRefiner creates a refiner that reads embeddings from embedder.
//
//nolint:gocritic // hugeParam: logger passed by value following zerolog conventions
func NewImmediateRefiner(embedder retrieval.Embedder, logger zerolog.Logger) *ImmediateRefiner {
	return &ImmediateRefiner{
		embedder: embedder,
		logger:   logger.With().Str("component", "immediate_refiner").Logger(),
	}
}

// Refine returns list re-scored by fb, sorted descending. With no feedback
// the list is returned in its original order.
//
// Candidates without an embedding get zero similarity. Feedback entries
// whose item has no embedding are skipped.
func (r *ImmediateRefiner) Refine(ctx context.Context, list retrieval.RankedList, fb retrieval.Feedback) (retrieval.RankedList, error) {
	if len(fb) == 0 || list.Len() == 0 {
		return list.Clone(), nil
	}

	refined := algorithms.ToSimilarity(list)
	signs := fb.SignVector(refined)

	candidates := make([][]float32, refined.Len())
	for i, c := range refined.Items {
		vec, err := r.lookup(ctx, c.ID)
		if err != nil {
			return retrieval.RankedList{}, err
		}
		candidates[i] = vec
	}

	similarities := make([]float64, refined.Len())
	for _, entry := range fb {
		if entry.Action == retrieval.ActionNeutral {
			continue
		}
		target, err := r.lookup(ctx, entry.ItemID)
		if err != nil {
			return retrieval.RankedList{}, err
		}
		if target == nil {
			r.logger.Debug().Int64("db_idx", entry.ItemID).Msg("Skipping feedback item without embedding")
			continue
		}

		for i, vec := range candidates {
			similarities[i] = algorithms.Cosine(target, vec)
		}
		weights := algorithms.NormalizeScores(similarities)
		for i := range refined.Items {
			refined.Items[i].Score += weights[i] * signs[i]
		}
	}

	refined.SortByScore()
	return refined, nil
}

// lookup returns nil without error for items that have no embedding.
func (r *ImmediateRefiner) lookup(ctx context.Context, id int64) ([]float32, error) {
	vec, err := r.embedder.Embedding(ctx, id)
	if errors.Is(err, retrieval.ErrMissingEmbedding) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("embedding for %d: %w", id, err)
	}
	return vec, nil
}
