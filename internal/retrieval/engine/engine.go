// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

// Package engine wires the retrieval components into the per-turn search
// flow of an interactive session.
//
// A base ranking is computed from free text (vector search), hashtags
// (graph exploration) or both (score fusion) and cached per query. Each
// later turn of a session refines it: with committed feedback and no
// request for full exploration, the previous turn's ranking is adjusted by
// the ImmediateRefiner; otherwise the ExplorationEngine expands and
// re-weights the base ranking.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/framescout/internal/cache"
	"github.com/tomtom215/framescout/internal/metrics"
	"github.com/tomtom215/framescout/internal/retrieval"
	"github.com/tomtom215/framescout/internal/retrieval/algorithms"
	"github.com/tomtom215/framescout/internal/retrieval/feedback"
	"github.com/tomtom215/framescout/internal/retrieval/graph"
	"github.com/tomtom215/framescout/internal/retrieval/reranking"
	"github.com/tomtom215/framescout/internal/retrieval/vector"
)

const (
	// DefaultK is the base ranking size when a query sets none.
	DefaultK = 100
	// ItemSearchK is the result size of item-to-item search.
	ItemSearchK = 50
)

// Mode identifies how a turn's ranking was produced.
type Mode string

const (
	ModeBase        Mode = "base"
	ModeImmediate   Mode = "immediate"
	ModeExploration Mode = "exploration"
)

// Kind identifies the signals behind a base ranking.
type Kind string

const (
	KindVector Kind = "vector"
	KindGraph  Kind = "graph"
	KindFusion Kind = "fusion"
)

// Query is a base ranking request.
type Query struct {
	Text     string
	Hashtags []string
	// Index names the vector index; empty selects the registry default.
	Index string
	K     int
}

func (q Query) normalized() Query {
	out := Query{Text: strings.TrimSpace(q.Text), Index: q.Index, K: q.K}
	for _, h := range q.Hashtags {
		if h = strings.TrimSpace(h); h != "" {
			out.Hashtags = append(out.Hashtags, h)
		}
	}
	if out.K <= 0 {
		out.K = DefaultK
	}
	return out
}

func (q Query) key() string {
	return q.Text + "\x1f" + strings.Join(q.Hashtags, ",") + "\x1f" + q.Index + "\x1f" + strconv.Itoa(q.K)
}

// Dependencies are the collaborators of an Engine. Graph, Vocabulary and
// Encoder are optional: without a graph, hashtag queries return nothing,
// and without an encoder, text queries fail with ErrIndexUnavailable.
type Dependencies struct {
	Indexes    *vector.Registry
	Encoder    retrieval.TextEncoder
	Embedder   retrieval.Embedder
	Graph      *graph.Graph
	Vocabulary vector.Index
	Feedback   *feedback.Store
}

// Engine runs base searches and refinement turns. It is safe for
// concurrent use.
type Engine struct {
	cfg  *retrieval.Config
	deps Dependencies

	explorer    *algorithms.Explorer
	immediate   *reranking.ImmediateRefiner
	exploration *reranking.ExplorationEngine

	base     *cache.LRU[string, retrieval.RankedList]
	previous *cache.LRU[string, retrieval.RankedList]

	logger zerolog.Logger
}

// New validates cfg and builds an engine over deps.
//
//nolint:gocritic // hugeParam: logger passed by value following zerolog conventions
func New(cfg *retrieval.Config, deps Dependencies, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = retrieval.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid retrieval config: %w", err)
	}
	if deps.Indexes == nil {
		return nil, errors.New("engine requires a vector index registry")
	}
	if deps.Embedder == nil {
		return nil, errors.New("engine requires an embedder")
	}
	if deps.Feedback == nil {
		return nil, errors.New("engine requires a feedback store")
	}

	cfg = cfg.Clone()
	logger = logger.With().Str("component", "retrieval_engine").Logger()
	rng := rand.New(rand.NewSource(cfg.EffectiveSeed())) //nolint:gosec // math/rand is fine for seed perturbation

	e := &Engine{
		cfg:         cfg,
		deps:        deps,
		immediate:   reranking.NewImmediateRefiner(deps.Embedder, logger),
		exploration: reranking.NewExplorationEngine(deps.Embedder, cfg, rng, logger),
		base:        cache.New[string, retrieval.RankedList](cfg.Cache.BaseSize, cfg.Cache.BaseTTL),
		previous:    cache.New[string, retrieval.RankedList](cfg.Cache.PreviousSize, 0),
		logger:      logger,
	}
	if deps.Graph != nil {
		var opts []algorithms.ExplorerOption
		if deps.Encoder != nil && deps.Vocabulary != nil {
			opts = append(opts, algorithms.WithSeedLookup(deps.Encoder, deps.Vocabulary))
		}
		e.explorer = algorithms.NewExplorer(deps.Graph, cfg.Graph, logger, opts...)
	}
	return e, nil
}

// BaseResult is a base ranking with its provenance.
type BaseResult struct {
	Ranking retrieval.RankedList
	Kind    Kind
	Cached  bool
}

// Search returns the base ranking for q, best first.
func (e *Engine) Search(ctx context.Context, q Query) (BaseResult, error) {
	q = q.normalized()
	kind, err := kindOf(q)
	if err != nil {
		return BaseResult{}, err
	}

	key := q.key()
	if list, ok := e.base.Get(key); ok {
		metrics.RecordBaseCache(true)
		return BaseResult{Ranking: list.Clone(), Kind: kind, Cached: true}, nil
	}
	metrics.RecordBaseCache(false)

	start := time.Now()
	list, err := e.search(ctx, q, kind)
	metrics.RecordSearch(string(kind), time.Since(start), err)
	if err != nil {
		return BaseResult{}, err
	}

	e.base.Add(key, list)
	e.logger.Debug().
		Str("kind", string(kind)).
		Int("k", q.K).
		Int("results", list.Len()).
		Dur("duration", time.Since(start)).
		Msg("Computed base ranking")
	return BaseResult{Ranking: list.Clone(), Kind: kind}, nil
}

func kindOf(q Query) (Kind, error) {
	switch {
	case q.Text != "" && len(q.Hashtags) > 0:
		return KindFusion, nil
	case len(q.Hashtags) > 0:
		return KindGraph, nil
	case q.Text != "":
		return KindVector, nil
	default:
		return "", retrieval.ErrEmptyQuery
	}
}

func (e *Engine) search(ctx context.Context, q Query, kind Kind) (retrieval.RankedList, error) {
	switch kind {
	case KindGraph:
		return e.graphSearch(ctx, q)
	case KindVector:
		list, err := e.vectorSearch(ctx, q)
		if err != nil {
			return retrieval.RankedList{}, err
		}
		return algorithms.ToSimilarity(list), nil
	default:
		vectorList, err := e.vectorSearch(ctx, q)
		if err != nil {
			return retrieval.RankedList{}, err
		}
		graphList, err := e.graphSearch(ctx, q)
		if err != nil {
			return retrieval.RankedList{}, err
		}
		return algorithms.Fuse(vectorList, graphList, q.K, e.cfg.Fusion.BoostAmount), nil
	}
}

func (e *Engine) vectorSearch(ctx context.Context, q Query) (retrieval.RankedList, error) {
	if e.deps.Encoder == nil {
		return retrieval.RankedList{}, &retrieval.RetrievalError{Op: "encode", Err: retrieval.ErrIndexUnavailable}
	}
	index, err := e.deps.Indexes.Get(q.Index)
	if err != nil {
		return retrieval.RankedList{}, err
	}
	vec, err := e.deps.Encoder.EncodeText(ctx, q.Text)
	if err != nil {
		return retrieval.RankedList{}, err
	}
	return index.SearchList(ctx, vec, q.K)
}

func (e *Engine) graphSearch(ctx context.Context, q Query) (retrieval.RankedList, error) {
	if e.explorer == nil {
		e.logger.Debug().Strs("hashtags", q.Hashtags).Msg("No hashtag graph loaded")
		return retrieval.RankedList{Items: []retrieval.Candidate{}, Order: retrieval.Descending}, nil
	}
	list, stats, err := e.explorer.Explore(ctx, q.Hashtags, q.K)
	if err != nil {
		return retrieval.RankedList{}, fmt.Errorf("explore hashtags: %w", err)
	}
	metrics.RecordGraphIterations(stats.Iterations)
	return list, nil
}

// TurnOptions adjusts one refinement turn.
type TurnOptions struct {
	// FullExploration forces the ExplorationEngine even when committed
	// feedback exists.
	FullExploration bool
}

// TurnResult is the ranking of one session turn.
type TurnResult struct {
	Ranking retrieval.RankedList
	Mode    Mode
	Kind    Kind
	Cached  bool
}

// Turn runs one turn of session for q.
//
// The first turn of a query without committed feedback returns the base
// ranking. Later turns refine: committed feedback without FullExploration
// adjusts the previous turn's ranking (or the base ranking if none is
// stored); anything else explores around the base ranking.
func (e *Engine) Turn(ctx context.Context, session string, q Query, opts TurnOptions) (TurnResult, error) {
	q = q.normalized()
	base, err := e.Search(ctx, q)
	if err != nil {
		return TurnResult{}, err
	}

	prevKey := session + "\x00" + q.key()
	previous, hasPrevious := e.previous.Get(prevKey)
	fb := e.deps.Feedback.Committed(session)

	result := TurnResult{Kind: base.Kind, Cached: base.Cached}
	switch {
	case len(fb) > 0 && !opts.FullExploration:
		source := base.Ranking
		if hasPrevious {
			source = previous
		}
		result.Mode = ModeImmediate
		result.Ranking, err = e.immediate.Refine(ctx, source, fb)
	case hasPrevious || len(fb) > 0 || opts.FullExploration:
		result.Mode = ModeExploration
		result.Ranking, err = e.explore(ctx, q, base.Ranking, fb)
	default:
		result.Mode = ModeBase
		result.Ranking = base.Ranking
	}
	if err != nil {
		return TurnResult{}, fmt.Errorf("%s turn: %w", result.Mode, err)
	}

	metrics.RecordTurn(string(result.Mode))
	e.previous.Add(prevKey, result.Ranking.Clone())
	return result, nil
}

// explore widens the per-seed neighborhood when the base scores look
// uncertain.
func (e *Engine) explore(ctx context.Context, q Query, base retrieval.RankedList, fb retrieval.Feedback) (retrieval.RankedList, error) {
	index, err := e.deps.Indexes.Get(q.Index)
	if err != nil {
		return retrieval.RankedList{}, err
	}

	k := e.cfg.Exploration.ExpansionK
	if expand, wider := e.AdaptiveExplorationK(algorithms.Normalize(base), k); expand {
		e.logger.Debug().Int("expansion_k", wider).Msg("Widening exploration")
		k = wider
	}
	return e.exploration.RefineWithK(ctx, index, base, fb, k)
}

// AdaptiveExplorationK applies the weighted-exploration heuristic with the
// configured maximum expansion.
func (e *Engine) AdaptiveExplorationK(scores []float64, k int) (bool, int) {
	return reranking.AdaptiveExplorationK(scores, k, e.cfg.Exploration.MaxExpansion)
}

// SearchByItem ranks the neighbors of an indexed item by visual
// similarity. k <= 0 selects ItemSearchK.
func (e *Engine) SearchByItem(ctx context.Context, itemID int64, indexName string, k int) (retrieval.RankedList, error) {
	if k <= 0 {
		k = ItemSearchK
	}
	index, err := e.deps.Indexes.Get(indexName)
	if err != nil {
		return retrieval.RankedList{}, err
	}
	vec, err := e.deps.Embedder.Embedding(ctx, itemID)
	if err != nil {
		return retrieval.RankedList{}, err
	}

	start := time.Now()
	list, err := index.SearchList(ctx, vec, k)
	metrics.RecordSearch("item", time.Since(start), err)
	if err != nil {
		return retrieval.RankedList{}, err
	}
	return algorithms.ToSimilarity(list), nil
}

// Indexes returns the registered vector index names.
func (e *Engine) Indexes() []string {
	return e.deps.Indexes.Names()
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *retrieval.Config {
	return e.cfg.Clone()
}
