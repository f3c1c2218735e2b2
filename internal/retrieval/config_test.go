// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package retrieval

import (
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v, want nil", err)
	}

	t.Run("graph bounds", func(t *testing.T) {
		if cfg.Graph.MaxDepth != 5 {
			t.Errorf("Graph.MaxDepth = %d, want 5", cfg.Graph.MaxDepth)
		}
		if cfg.Graph.Alpha != 0.7 {
			t.Errorf("Graph.Alpha = %f, want 0.7", cfg.Graph.Alpha)
		}
		if cfg.Graph.SimilarityThreshold != 0.85 {
			t.Errorf("Graph.SimilarityThreshold = %f, want 0.85", cfg.Graph.SimilarityThreshold)
		}
		if cfg.Graph.MaxKeyframes != 10000 || cfg.Graph.MaxIterations != 10000 {
			t.Errorf("Graph limits = %d/%d, want 10000/10000", cfg.Graph.MaxKeyframes, cfg.Graph.MaxIterations)
		}
	})

	t.Run("feedback factor", func(t *testing.T) {
		if cfg.Feedback.DecayFactor != 0.9 {
			t.Errorf("Feedback.DecayFactor = %f, want 0.9", cfg.Feedback.DecayFactor)
		}
		if cfg.Feedback.WindowSize != 50 {
			t.Errorf("Feedback.WindowSize = %d, want 50", cfg.Feedback.WindowSize)
		}
		if cfg.Feedback.TimeWeightRatio != 0.5 {
			t.Errorf("Feedback.TimeWeightRatio = %f, want 0.5", cfg.Feedback.TimeWeightRatio)
		}
	})

	t.Run("store eviction", func(t *testing.T) {
		if cfg.Store.MaxSessions != 100 || cfg.Store.EvictCount != 50 {
			t.Errorf("Store = %d/%d, want 100/50", cfg.Store.MaxSessions, cfg.Store.EvictCount)
		}
	})

	t.Run("seed is set for determinism", func(t *testing.T) {
		if cfg.EffectiveSeed() == 0 {
			t.Error("EffectiveSeed() = 0, want non-zero")
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"zero depth", func(c *Config) { c.Graph.MaxDepth = 0 }, "graph.max_depth"},
		{"alpha above one", func(c *Config) { c.Graph.Alpha = 1.5 }, "graph.alpha"},
		{"negative boost", func(c *Config) { c.Fusion.BoostAmount = -1 }, "fusion.boost_amount"},
		{"ratio above one", func(c *Config) { c.Exploration.Ratio = 2 }, "exploration.ratio"},
		{"zero expansion k", func(c *Config) { c.Exploration.ExpansionK = 0 }, "exploration.expansion_k"},
		{"expansion below one", func(c *Config) { c.Exploration.MaxExpansion = 0.5 }, "exploration.max_expansion"},
		{"zero decay", func(c *Config) { c.Feedback.DecayFactor = 0 }, "feedback.decay_factor"},
		{"zero window", func(c *Config) { c.Feedback.WindowSize = 0 }, "feedback.window_size"},
		{"evict more than max", func(c *Config) { c.Store.EvictCount = 101 }, "store.evict_count"},
		{"evict all sessions", func(c *Config) { c.Store.EvictCount = c.Store.MaxSessions }, "store.evict_count"},
		{"single session", func(c *Config) { c.Store.MaxSessions, c.Store.EvictCount = 1, 1 }, "store.max_sessions"},
		{"zero cache", func(c *Config) { c.Cache.BaseSize = 0 }, "cache.base_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %q, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Clone(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.Graph.MaxDepth = 9

	if cfg.Graph.MaxDepth != 5 {
		t.Errorf("original MaxDepth = %d after modifying clone, want 5", cfg.Graph.MaxDepth)
	}
}
