// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package reranking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/framescout/internal/metrics"
	"github.com/tomtom215/framescout/internal/retrieval"
	"github.com/tomtom215/framescout/internal/retrieval/algorithms"
	"github.com/tomtom215/framescout/internal/retrieval/vector"
)

// ExplorationEngine performs multi-turn exploration/exploitation refinement.
//
// A refinement turn runs four steps:
//  1. select seed items from the base ranking, favoring liked items
//  2. query the ANN index around each seed and keep unseen neighbors
//  3. blend the base and expanded candidates by OriginalWeight
//  4. shift liked or disliked candidates by the feedback factor
type ExplorationEngine struct {
	embedder retrieval.Embedder
	cfg      retrieval.ExplorationConfig
	feedback retrieval.FeedbackConfig
	logger   zerolog.Logger

	// rng is shared across sessions and protected by rngMu.
	rng   *rand.Rand
	rngMu sync.Mutex
}

// NewExplorationEngine creates an engine. rng must not be used elsewhere.
//
//nolint:gocritic // hugeParam: logger passed by value following zerolog conventions
func NewExplorationEngine(embedder retrieval.Embedder, cfg *retrieval.Config, rng *rand.Rand, logger zerolog.Logger) *ExplorationEngine {
	return &ExplorationEngine{
		embedder: embedder,
		cfg:      cfg.Exploration,
		feedback: cfg.Feedback,
		rng:      rng,
		logger:   logger.With().Str("component", "exploration_engine").Logger(),
	}
}

// Refine runs one exploration turn over base using the configured
// expansion width. The result has at most base.Len() candidates.
func (e *ExplorationEngine) Refine(ctx context.Context, index vector.Index, base retrieval.RankedList, fb retrieval.Feedback) (retrieval.RankedList, error) {
	return e.RefineWithK(ctx, index, base, fb, e.cfg.ExpansionK)
}

// RefineWithK is Refine with an explicit per-seed neighbor count.
func (e *ExplorationEngine) RefineWithK(ctx context.Context, index vector.Index, base retrieval.RankedList, fb retrieval.Feedback, expansionK int) (retrieval.RankedList, error) {
	if base.Len() == 0 {
		return retrieval.RankedList{Items: []retrieval.Candidate{}, Order: retrieval.Descending}, nil
	}
	base = algorithms.ToSimilarity(base)
	n := base.Len()

	seeds := e.selectSeeds(base, fb)
	expanded, err := e.expand(ctx, index, seeds, base, expansionK)
	if err != nil {
		return retrieval.RankedList{}, err
	}

	adjusted := blend(base, expanded, e.cfg.OriginalWeight)
	if len(fb) == 0 {
		return adjusted.Top(n), nil
	}

	applyFactor(adjusted, fb, FeedbackFactor(fb, e.feedback))
	return adjusted.Top(n), nil
}

// selectSeeds picks the items whose neighborhoods are explored.
func (e *ExplorationEngine) selectSeeds(base retrieval.RankedList, fb retrieval.Feedback) []int64 {
	ids := base.IDs()
	n := max(1, int(math.Round(float64(len(ids))*e.cfg.Ratio)))

	e.rngMu.Lock()
	defer e.rngMu.Unlock()

	if len(fb) == 0 {
		return e.sample(ids[:min(2*n, len(ids))], n)
	}

	reactions := fb.Lookup()
	pool := make([]int64, 0, len(ids))
	for _, id := range ids {
		if reactions[id] != retrieval.ActionDislike {
			pool = append(pool, id)
		}
	}
	if len(pool) == 0 {
		return e.sample(ids, n)
	}

	liked := fb.Liked()
	nLikes := min(int(math.Round(float64(n)*e.cfg.LikeWeight)), len(liked))
	seeds := make([]int64, 0, n)
	seeds = append(seeds, liked[:nLikes]...)

	likedSet := make(map[int64]struct{}, len(liked))
	for _, id := range liked {
		likedSet[id] = struct{}{}
	}
	for _, id := range pool {
		if len(seeds) >= n {
			break
		}
		if _, ok := likedSet[id]; !ok {
			seeds = append(seeds, id)
		}
	}

	for i := range seeds {
		if e.rng.Float64() < e.cfg.Randomness {
			seeds[i] = pool[e.rng.Intn(len(pool))]
		}
	}
	return seeds
}

// sample draws up to n distinct ids. Callers hold rngMu.
func (e *ExplorationEngine) sample(ids []int64, n int) []int64 {
	n = min(n, len(ids))
	out := make([]int64, n)
	for i, j := range e.rng.Perm(len(ids))[:n] {
		out[i] = ids[j]
	}
	return out
}

type neighbor struct {
	id       int64
	distance float64
}

// expand queries the index around every seed and returns previously unseen
// neighbors scored by inverse min-max normalized distance.
//
// A seed whose embedding or query fails is logged and skipped. An
// unavailable index aborts the whole expansion.
func (e *ExplorationEngine) expand(ctx context.Context, index vector.Index, seeds []int64, base retrieval.RankedList, k int) (retrieval.RankedList, error) {
	results := make([][]neighbor, len(seeds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, e.cfg.Workers))
	for i, seed := range seeds {
		g.Go(func() error {
			found, err := e.neighbors(gctx, index, seed, k)
			if err != nil {
				if errors.Is(err, retrieval.ErrIndexUnavailable) || gctx.Err() != nil {
					return err
				}
				metrics.RecordExpansionSeedFailure()
				e.logger.Warn().Err(err).Int64("seed", seed).Msg("Skipping exploration seed")
				return nil
			}
			results[i] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return retrieval.RankedList{}, fmt.Errorf("expand seeds: %w", err)
	}

	seen := make(map[int64]struct{}, base.Len()+len(seeds))
	for _, c := range base.Items {
		seen[c.ID] = struct{}{}
	}
	for _, id := range seeds {
		seen[id] = struct{}{}
	}

	var ids []int64
	var distances []float64
	for _, found := range results {
		for _, nb := range found {
			if _, ok := seen[nb.id]; ok {
				continue
			}
			seen[nb.id] = struct{}{}
			ids = append(ids, nb.id)
			distances = append(distances, nb.distance)
		}
	}
	return retrieval.NewRankedList(ids, algorithms.NormalizeDistances(distances), retrieval.Descending), nil
}

func (e *ExplorationEngine) neighbors(ctx context.Context, index vector.Index, seed int64, k int) ([]neighbor, error) {
	vec, err := e.embedder.Embedding(ctx, seed)
	if err != nil {
		return nil, err
	}
	distances, ids, err := index.Search(ctx, vec, k)
	if err != nil {
		return nil, err
	}
	found := make([]neighbor, 0, len(ids))
	for j, id := range ids {
		if id == vector.NoMatch || j >= len(distances) {
			continue
		}
		found = append(found, neighbor{id: id, distance: float64(distances[j])})
	}
	return found, nil
}

// blend concatenates base scores weighted by w with expanded scores weighted
// by 1-w and sorts the result descending.
func blend(base, expanded retrieval.RankedList, w float64) retrieval.RankedList {
	normalized := algorithms.NormalizeScores(base.Scores())
	items := make([]retrieval.Candidate, 0, base.Len()+expanded.Len())
	for i, c := range base.Items {
		items = append(items, retrieval.Candidate{ID: c.ID, Score: normalized[i] * w})
	}
	for _, c := range expanded.Items {
		items = append(items, retrieval.Candidate{ID: c.ID, Score: c.Score * (1 - w)})
	}
	out := retrieval.RankedList{Items: items, Order: retrieval.Descending}
	out.SortByScore()
	return out
}
