// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package retrieval

import (
	"fmt"
	"time"
)

// Config contains all tunables of the ranking engine.
type Config struct {
	// Graph contains parameters for hashtag graph exploration.
	Graph GraphConfig `json:"graph" koanf:"graph"`

	// Fusion contains parameters for merging vector and graph rankings.
	Fusion FusionConfig `json:"fusion" koanf:"fusion"`

	// Exploration contains parameters for multi-turn candidate expansion.
	Exploration ExplorationConfig `json:"exploration" koanf:"exploration"`

	// Feedback contains parameters for the aggregate feedback factor.
	Feedback FeedbackConfig `json:"feedback" koanf:"feedback"`

	// Store bounds the session feedback store.
	Store StoreConfig `json:"store" koanf:"store"`

	// Cache contains base ranking cache parameters.
	Cache CacheConfig `json:"cache" koanf:"cache"`

	// Seed is the random seed for exploration seed replacement.
	// If zero, a fixed default seed is used.
	Seed int64 `json:"seed" koanf:"seed"`
}

// GraphConfig bounds the hashtag graph explorer.
type GraphConfig struct {
	// MaxDepth is the number of frontier levels expanded.
	// Default: 5.
	MaxDepth int `json:"max_depth" koanf:"max_depth"`

	// Alpha trades edge weight against path length in the transition score.
	// Default: 0.7.
	Alpha float64 `json:"alpha" koanf:"alpha"`

	// SimilarityNum is how many vocabulary hashtags are looked up for a seed
	// that is not in the graph.
	// Default: 10.
	SimilarityNum int `json:"similarity_num" koanf:"similarity_num"`

	// SimilarityThreshold is the minimum 1/(1+distance) for a looked-up
	// hashtag to stand in for an unseen seed.
	// Default: 0.85.
	SimilarityThreshold float64 `json:"similarity_threshold" koanf:"similarity_threshold"`

	// MinScoreThreshold drops frontier entries whose cumulative score fell below it.
	// Default: 0.01.
	MinScoreThreshold float64 `json:"min_score_threshold" koanf:"min_score_threshold"`

	// MaxKeyframes caps keyframe contributions before exploration stops.
	// Default: 10000.
	MaxKeyframes int `json:"max_keyframes" koanf:"max_keyframes"`

	// MaxIterations caps processed frontier entries before exploration stops.
	// Default: 10000.
	MaxIterations int `json:"max_iterations" koanf:"max_iterations"`
}

// FusionConfig contains parameters for score fusion.
type FusionConfig struct {
	// BoostAmount multiplies the score of ids found by both signals.
	// Default: 2.
	BoostAmount float64 `json:"boost_amount" koanf:"boost_amount"`
}

// ExplorationConfig contains parameters for exploration/exploitation refinement.
type ExplorationConfig struct {
	// Ratio is the fraction of the base ranking used as expansion seeds.
	// Default: 0.2.
	Ratio float64 `json:"ratio" koanf:"ratio"`

	// OriginalWeight is the blend weight of base candidates; expanded
	// candidates get 1-OriginalWeight.
	// Default: 0.7.
	OriginalWeight float64 `json:"original_weight" koanf:"original_weight"`

	// LikeWeight is the share of seed slots reserved for liked items.
	// Default: 0.7.
	LikeWeight float64 `json:"like_weight" koanf:"like_weight"`

	// Randomness is the per-slot probability of replacing a seed with a
	// random pool member.
	// Default: 0.1.
	Randomness float64 `json:"randomness" koanf:"randomness"`

	// ExpansionK is the neighbor count of each per-seed ANN query.
	// Default: 50.
	ExpansionK int `json:"expansion_k" koanf:"expansion_k"`

	// Workers bounds concurrent per-seed ANN queries.
	// Default: 8.
	Workers int `json:"workers" koanf:"workers"`

	// MaxExpansion caps the adaptive expansion width at MaxExpansion*ExpansionK.
	// A value of 1 disables adaptive widening.
	// Default: 2.
	MaxExpansion float64 `json:"max_expansion" koanf:"max_expansion"`
}

// FeedbackConfig contains parameters for the recency-decayed feedback factor.
type FeedbackConfig struct {
	// DecayFactor weights the i-th most recent value by DecayFactor^i.
	// Default: 0.9.
	DecayFactor float64 `json:"decay_factor" koanf:"decay_factor"`

	// WindowSize is the number of most recent reactions considered.
	// Default: 50.
	WindowSize int `json:"window_size" koanf:"window_size"`

	// TimeWeightRatio blends the time-weighted average into the simple average.
	// Default: 0.5.
	TimeWeightRatio float64 `json:"time_weight_ratio" koanf:"time_weight_ratio"`
}

// StoreConfig bounds the session feedback store.
type StoreConfig struct {
	// MaxSessions triggers eviction when the session count reaches it.
	// Default: 100.
	MaxSessions int `json:"max_sessions" koanf:"max_sessions"`

	// EvictCount is the number of oldest sessions dropped per eviction.
	// Default: 50.
	EvictCount int `json:"evict_count" koanf:"evict_count"`
}

// CacheConfig contains base ranking cache parameters.
type CacheConfig struct {
	// BaseSize is the number of cached base rankings.
	// Default: 128.
	BaseSize int `json:"base_size" koanf:"base_size"`

	// BaseTTL expires cached base rankings. Zero disables expiry.
	// Default: 10m.
	BaseTTL time.Duration `json:"base_ttl" koanf:"base_ttl"`

	// PreviousSize is the number of sessions whose last turn ranking is kept.
	// Default: 1024.
	PreviousSize int `json:"previous_size" koanf:"previous_size"`
}

// DefaultSeed is used when Config.Seed is zero.
const DefaultSeed int64 = 42

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		Graph: GraphConfig{
			MaxDepth:            5,
			Alpha:               0.7,
			SimilarityNum:       10,
			SimilarityThreshold: 0.85,
			MinScoreThreshold:   0.01,
			MaxKeyframes:        10000,
			MaxIterations:       10000,
		},
		Fusion: FusionConfig{
			BoostAmount: 2,
		},
		Exploration: ExplorationConfig{
			Ratio:          0.2,
			OriginalWeight: 0.7,
			LikeWeight:     0.7,
			Randomness:     0.1,
			ExpansionK:     50,
			Workers:        8,
			MaxExpansion:   2,
		},
		Feedback: FeedbackConfig{
			DecayFactor:     0.9,
			WindowSize:      50,
			TimeWeightRatio: 0.5,
		},
		Store: StoreConfig{
			MaxSessions: 100,
			EvictCount:  50,
		},
		Cache: CacheConfig{
			BaseSize:     128,
			BaseTTL:      10 * time.Minute,
			PreviousSize: 1024,
		},
		Seed: DefaultSeed,
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Graph.MaxDepth < 1 {
		return fmt.Errorf("graph.max_depth must be positive, got %d", c.Graph.MaxDepth)
	}
	if c.Graph.Alpha < 0 || c.Graph.Alpha > 1 {
		return fmt.Errorf("graph.alpha must be in [0, 1], got %f", c.Graph.Alpha)
	}
	if c.Graph.SimilarityNum < 0 {
		return fmt.Errorf("graph.similarity_num must be non-negative, got %d", c.Graph.SimilarityNum)
	}
	if c.Graph.SimilarityThreshold < 0 || c.Graph.SimilarityThreshold > 1 {
		return fmt.Errorf("graph.similarity_threshold must be in [0, 1], got %f", c.Graph.SimilarityThreshold)
	}
	if c.Graph.MinScoreThreshold < 0 {
		return fmt.Errorf("graph.min_score_threshold must be non-negative, got %f", c.Graph.MinScoreThreshold)
	}
	if c.Graph.MaxKeyframes < 1 {
		return fmt.Errorf("graph.max_keyframes must be positive, got %d", c.Graph.MaxKeyframes)
	}
	if c.Graph.MaxIterations < 1 {
		return fmt.Errorf("graph.max_iterations must be positive, got %d", c.Graph.MaxIterations)
	}

	if c.Fusion.BoostAmount < 0 {
		return fmt.Errorf("fusion.boost_amount must be non-negative, got %f", c.Fusion.BoostAmount)
	}

	if err := validateUnit("exploration.ratio", c.Exploration.Ratio); err != nil {
		return err
	}
	if err := validateUnit("exploration.original_weight", c.Exploration.OriginalWeight); err != nil {
		return err
	}
	if err := validateUnit("exploration.like_weight", c.Exploration.LikeWeight); err != nil {
		return err
	}
	if err := validateUnit("exploration.randomness", c.Exploration.Randomness); err != nil {
		return err
	}
	if c.Exploration.ExpansionK < 1 {
		return fmt.Errorf("exploration.expansion_k must be positive, got %d", c.Exploration.ExpansionK)
	}
	if c.Exploration.Workers < 1 {
		return fmt.Errorf("exploration.workers must be positive, got %d", c.Exploration.Workers)
	}
	if c.Exploration.MaxExpansion < 1 {
		return fmt.Errorf("exploration.max_expansion must be at least 1, got %f", c.Exploration.MaxExpansion)
	}

	if c.Feedback.DecayFactor <= 0 || c.Feedback.DecayFactor > 1 {
		return fmt.Errorf("feedback.decay_factor must be in (0, 1], got %f", c.Feedback.DecayFactor)
	}
	if c.Feedback.WindowSize < 1 {
		return fmt.Errorf("feedback.window_size must be positive, got %d", c.Feedback.WindowSize)
	}
	if err := validateUnit("feedback.time_weight_ratio", c.Feedback.TimeWeightRatio); err != nil {
		return err
	}

	if c.Store.MaxSessions < 2 {
		return fmt.Errorf("store.max_sessions must be at least 2, got %d", c.Store.MaxSessions)
	}
	if c.Store.EvictCount < 1 || c.Store.EvictCount >= c.Store.MaxSessions {
		return fmt.Errorf("store.evict_count must be in [1, %d], got %d", c.Store.MaxSessions-1, c.Store.EvictCount)
	}

	if c.Cache.BaseSize < 1 {
		return fmt.Errorf("cache.base_size must be positive, got %d", c.Cache.BaseSize)
	}
	if c.Cache.BaseTTL < 0 {
		return fmt.Errorf("cache.base_ttl must be non-negative, got %v", c.Cache.BaseTTL)
	}
	if c.Cache.PreviousSize < 1 {
		return fmt.Errorf("cache.previous_size must be positive, got %d", c.Cache.PreviousSize)
	}

	return nil
}

func validateUnit(name string, v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("%s must be in [0, 1], got %f", name, v)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	// All nested structs contain only value types.
	clone := *c
	return &clone
}

// EffectiveSeed returns Seed, or DefaultSeed when Seed is zero.
func (c *Config) EffectiveSeed() int64 {
	if c.Seed == 0 {
		return DefaultSeed
	}
	return c.Seed
}
