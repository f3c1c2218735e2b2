// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package algorithms

import (
	"context"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/framescout/internal/retrieval"
	"github.com/tomtom215/framescout/internal/retrieval/graph"
	"github.com/tomtom215/framescout/internal/retrieval/vector"
)

// Explorer runs dynamic hashtag exploration over a co-occurrence graph.
//
// Seeds present in the graph start the frontier at score 1. A seed that is
// not in the graph is encoded and matched against the hashtag vocabulary
// index; every vocabulary hashtag with 1/(1+distance) at or above
// SimilarityThreshold (up to SimilarityNum of them) starts at score 1
// instead. Without an encoder and vocabulary, unseen seeds are dropped.
//
// Levels are processed strictly in order. Within a level, for each
// neighbor reached over an edge of weight w along a path of L hops:
//
//	transition = alpha*w + (1-alpha) / (1 + ln L)
//	score      = parent score * transition
//
// A keyframe neighbor adds score*ln(1+u) to its accumulator, u being the
// number of distinct paths that reached it so far. A hashtag neighbor joins
// the next level. Once a level completes, next-level entries scoring at or
// above the level mean are moved ahead of the rest.
type Explorer struct {
	graph   *graph.Graph
	cfg     retrieval.GraphConfig
	encoder retrieval.TextEncoder
	vocab   *vector.Adapter
	logger  zerolog.Logger
}

// ExplorerOption configures an Explorer.
type ExplorerOption func(*Explorer)

// WithSeedLookup enables similarity lookup for seeds missing from the graph.
// The vocabulary index must return graph node ids.
func WithSeedLookup(encoder retrieval.TextEncoder, vocab vector.Index) ExplorerOption {
	return func(e *Explorer) {
		e.encoder = encoder
		e.vocab = vector.NewAdapter("hashtag-vocabulary", vocab)
	}
}

// NewExplorer creates an explorer over g.
//
//nolint:gocritic // hugeParam: logger passed by value following zerolog conventions
func NewExplorer(g *graph.Graph, cfg retrieval.GraphConfig, logger zerolog.Logger, opts ...ExplorerOption) *Explorer {
	e := &Explorer{
		graph:  g,
		cfg:    cfg,
		logger: logger.With().Str("component", "graph_explorer").Logger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExploreStats reports the work done by one exploration.
type ExploreStats struct {
	Seeds      int
	Levels     int
	Iterations int
	Keyframes  int
}

type frontierEntry struct {
	node  int
	depth int
	path  []int
	score float64
}

type accumulator struct {
	paths map[string]struct{}
	score float64
	rank  int
}

// Explore returns the top k keyframe items for the seed hashtags, scored in
// descending order and normalized to sum to 1 over all reached keyframes.
func (e *Explorer) Explore(ctx context.Context, seeds []string, k int) (retrieval.RankedList, ExploreStats, error) {
	empty := retrieval.RankedList{Items: []retrieval.Candidate{}, Order: retrieval.Descending}
	var stats ExploreStats
	if k <= 0 || e.graph == nil {
		return empty, stats, nil
	}

	queue, err := e.initialFrontier(ctx, seeds)
	if err != nil {
		return empty, stats, err
	}
	stats.Seeds = len(queue)

	visited := make(map[int]struct{})
	acc := make(map[int]*accumulator)
	var discovered []int

	limitReached := func() bool {
		return stats.Keyframes >= e.cfg.MaxKeyframes || stats.Iterations >= e.cfg.MaxIterations
	}

	for depth := 0; depth < e.cfg.MaxDepth; depth++ {
		if err := ctx.Err(); err != nil {
			return empty, stats, err
		}
		stats.Levels++

		var next []frontierEntry
		var levelScores []float64

		for _, entry := range queue {
			if entry.score < e.cfg.MinScoreThreshold {
				continue
			}
			if limitReached() {
				break
			}
			stats.Iterations++

			if _, ok := visited[entry.node]; ok {
				continue
			}
			visited[entry.node] = struct{}{}
			if !e.graph.Has(entry.node) {
				continue
			}

			path := make([]int, len(entry.path)+1)
			copy(path, entry.path)
			path[len(entry.path)] = entry.node
			key := pathKey(path)
			pathFactor := 1 / (1 + math.Log(float64(len(path))))

			targets, weights := e.graph.Neighbors(entry.node)
			for i, neighbor := range targets {
				transition := e.cfg.Alpha*weights[i] + (1-e.cfg.Alpha)*pathFactor
				score := entry.score * transition

				if e.graph.Kind(neighbor) == graph.KindKeyframe {
					a, ok := acc[neighbor]
					if !ok {
						a = &accumulator{paths: make(map[string]struct{}), rank: len(discovered)}
						acc[neighbor] = a
						discovered = append(discovered, neighbor)
					}
					a.paths[key] = struct{}{}
					a.score += score * math.Log(1+float64(len(a.paths)))
					stats.Keyframes++
					continue
				}

				next = append(next, frontierEntry{node: neighbor, depth: entry.depth + 1, path: path, score: score})
				levelScores = append(levelScores, score)
			}
		}

		if len(levelScores) > 0 {
			queue = prioritize(next, mean(levelScores))
		} else {
			queue = nil
		}

		if limitReached() {
			e.logger.Debug().
				Int("iterations", stats.Iterations).
				Int("keyframes", stats.Keyframes).
				Msg("Graph exploration stopped at limit")
			break
		}
	}

	return e.finalize(acc, discovered, k), stats, nil
}

func (e *Explorer) finalize(acc map[int]*accumulator, discovered []int, k int) retrieval.RankedList {
	var total float64
	for _, a := range acc {
		total += a.score
	}

	items := make([]retrieval.Candidate, 0, len(discovered))
	for _, node := range discovered {
		score := acc[node].score
		if total > 0 {
			score /= total
		}
		items = append(items, retrieval.Candidate{ID: e.graph.ItemOf(node), Score: score})
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].Score > items[j].Score })
	list := retrieval.RankedList{Items: items, Order: retrieval.Descending}
	return list.Top(k)
}

// initialFrontier resolves seed labels to graph nodes.
func (e *Explorer) initialFrontier(ctx context.Context, seeds []string) ([]frontierEntry, error) {
	var queue []frontierEntry
	for _, seed := range seeds {
		seed = strings.TrimSpace(seed)
		if seed == "" {
			continue
		}
		if id, ok := e.graph.IDOf(seed); ok {
			queue = append(queue, frontierEntry{node: id, score: 1})
			continue
		}

		similar, err := e.similarHashtags(ctx, seed)
		if err != nil {
			return nil, err
		}
		if len(similar) == 0 {
			e.logger.Debug().Str("hashtag", seed).Msg("Seed hashtag has no graph match")
		}
		for _, id := range similar {
			queue = append(queue, frontierEntry{node: id, score: 1})
		}
	}
	return queue, nil
}

func (e *Explorer) similarHashtags(ctx context.Context, seed string) ([]int, error) {
	if e.encoder == nil || e.vocab == nil || e.cfg.SimilarityNum <= 0 {
		return nil, nil
	}
	vec, err := e.encoder.EncodeText(ctx, seed)
	if err != nil {
		return nil, err
	}
	distances, ids, err := e.vocab.Search(ctx, vec, e.cfg.SimilarityNum)
	if err != nil {
		return nil, err
	}

	var out []int
	for i, id := range ids {
		if 1/(1+float64(distances[i])) >= e.cfg.SimilarityThreshold && e.graph.Has(int(id)) {
			out = append(out, int(id))
		}
	}
	return out, nil
}

// prioritize moves entries scoring at or above threshold ahead of the rest,
// preserving relative order within each group.
func prioritize(entries []frontierEntry, threshold float64) []frontierEntry {
	out := make([]frontierEntry, 0, len(entries))
	for _, en := range entries {
		if en.score >= threshold {
			out = append(out, en)
		}
	}
	for _, en := range entries {
		if en.score < threshold {
			out = append(out, en)
		}
	}
	return out
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func pathKey(path []int) string {
	var b strings.Builder
	for i, n := range path {
		if i > 0 {
			b.WriteByte('/')
		}
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}
