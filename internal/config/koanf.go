// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/framescout/internal/retrieval"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/framescout/config.yaml",
	"/etc/framescout/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultRemote() RemoteConfig {
	return RemoteConfig{
		Timeout:          10 * time.Second,
		Burst:            10,
		FailureThreshold: 5,
		OpenTimeout:      30 * time.Second,
	}
}

// defaultConfig returns the built-in defaults, applied before the config
// file and environment.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8000,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Security: SecurityConfig{
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Indexes: IndexesConfig{
			Endpoints: []string{"CLIP_v2=" + MemoryIndex},
			Default:   "CLIP_v2",
			Remote:    defaultRemote(),
		},
		Encoder: EncoderConfig{
			Remote: defaultRemote(),
		},
		Retrieval: *retrieval.DefaultConfig(),
		Events: EventsConfig{
			Enabled:                 true,
			Transport:               "memory",
			NATSURL:                 "nats://127.0.0.1:4222",
			Topic:                   "feedback.committed",
			RetryCount:              3,
			RetryInitialInterval:    100 * time.Millisecond,
			CloseTimeout:            30 * time.Second,
			BreakerFailureThreshold: 5,
			BreakerTimeout:          30 * time.Second,
		},
		Catalog: CatalogConfig{
			Path:      "/data/framescout.duckdb",
			MaxMemory: "1GB",
		},
		Embeddings: EmbeddingsConfig{
			Path:       "/data/embeddings",
			GCInterval: 10 * time.Minute,
		},
	}
}

// LoadWithKoanf loads configuration with layered sources:
//  1. Defaults
//  2. Config File: optional YAML file
//  3. Environment Variables: explicit mappings only
//
// The result is validated before it is returned.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed as comma-separated lists when set from the environment.
var sliceConfigPaths = []string{
	"security.cors_origins",
	"indexes.endpoints",
}

// processSliceFields converts comma-separated string values to slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	// Security
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Data files
	"graph_path":             "data.graph_path",
	"vocabulary_path":        "data.vocabulary_path",
	"annotations_path":       "data.annotations_path",
	"embeddings_import_path": "data.embeddings_import_path",

	// Indexes and encoder
	"indexes":                     "indexes.endpoints",
	"default_index":               "indexes.default",
	"index_timeout":               "indexes.remote.timeout",
	"index_requests_per_second":   "indexes.remote.requests_per_second",
	"index_failure_threshold":     "indexes.remote.failure_threshold",
	"index_breaker_timeout":       "indexes.remote.open_timeout",
	"encoder_url":                 "encoder.url",
	"encoder_timeout":             "encoder.remote.timeout",
	"encoder_requests_per_second": "encoder.remote.requests_per_second",
	"encoder_failure_threshold":   "encoder.remote.failure_threshold",
	"encoder_breaker_timeout":     "encoder.remote.open_timeout",

	// Retrieval tunables
	"retrieval_seed":                        "retrieval.seed",
	"retrieval_graph_max_depth":             "retrieval.graph.max_depth",
	"retrieval_graph_alpha":                 "retrieval.graph.alpha",
	"retrieval_graph_similarity_num":        "retrieval.graph.similarity_num",
	"retrieval_graph_similarity_threshold":  "retrieval.graph.similarity_threshold",
	"retrieval_graph_min_score_threshold":   "retrieval.graph.min_score_threshold",
	"retrieval_graph_max_keyframes":         "retrieval.graph.max_keyframes",
	"retrieval_graph_max_iterations":        "retrieval.graph.max_iterations",
	"retrieval_fusion_boost_amount":         "retrieval.fusion.boost_amount",
	"retrieval_exploration_ratio":           "retrieval.exploration.ratio",
	"retrieval_exploration_original_weight": "retrieval.exploration.original_weight",
	"retrieval_exploration_like_weight":     "retrieval.exploration.like_weight",
	"retrieval_exploration_randomness":      "retrieval.exploration.randomness",
	"retrieval_exploration_expansion_k":     "retrieval.exploration.expansion_k",
	"retrieval_exploration_workers":         "retrieval.exploration.workers",
	"retrieval_exploration_max_expansion":   "retrieval.exploration.max_expansion",
	"retrieval_feedback_decay_factor":       "retrieval.feedback.decay_factor",
	"retrieval_feedback_window_size":        "retrieval.feedback.window_size",
	"retrieval_feedback_time_weight_ratio":  "retrieval.feedback.time_weight_ratio",
	"retrieval_store_max_sessions":          "retrieval.store.max_sessions",
	"retrieval_store_evict_count":           "retrieval.store.evict_count",
	"retrieval_cache_base_size":             "retrieval.cache.base_size",
	"retrieval_cache_base_ttl":              "retrieval.cache.base_ttl",
	"retrieval_cache_previous_size":         "retrieval.cache.previous_size",

	// Events
	"events_enabled":           "events.enabled",
	"events_transport":         "events.transport",
	"nats_url":                 "events.nats_url",
	"events_topic":             "events.topic",
	"events_retry_count":       "events.retry_count",
	"events_retry_interval":    "events.retry_initial_interval",
	"events_close_timeout":     "events.close_timeout",
	"events_breaker_threshold": "events.breaker_failure_threshold",
	"events_breaker_timeout":   "events.breaker_timeout",

	// Catalog
	"duckdb_path":       "catalog.path",
	"duckdb_max_memory": "catalog.max_memory",
	"duckdb_threads":    "catalog.threads",

	// Embedding store
	"embeddings_path":        "embeddings.path",
	"embeddings_in_memory":   "embeddings.in_memory",
	"embeddings_sync_writes": "embeddings.sync_writes",
	"embeddings_gc_interval": "embeddings.gc_interval",
}

// envTransformFunc maps an environment variable name to its koanf path.
// Unmapped names return "" and are skipped.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - INDEXES -> indexes.endpoints
//   - RETRIEVAL_GRAPH_MAX_DEPTH -> retrieval.graph.max_depth
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
