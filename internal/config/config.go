// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/framescout/internal/retrieval"
)

// MemoryIndex is the index target that builds an exact in-process index
// from the embedding store.
const MemoryIndex = "memory"

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Security   SecurityConfig   `koanf:"security"`
	Logging    LoggingConfig    `koanf:"logging"`
	Data       DataConfig       `koanf:"data"`
	Indexes    IndexesConfig    `koanf:"indexes"`
	Encoder    EncoderConfig    `koanf:"encoder"`
	Retrieval  retrieval.Config `koanf:"retrieval"`
	Events     EventsConfig     `koanf:"events"`
	Catalog    CatalogConfig    `koanf:"catalog"`
	Embeddings EmbeddingsConfig `koanf:"embeddings"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // "development" or "production"
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig holds CORS and rate limit settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// DataConfig locates the static datasets loaded at startup. Empty paths
// disable the corresponding feature.
type DataConfig struct {
	// GraphPath is the hashtag graph JSON. Without it hashtag queries return nothing.
	GraphPath string `koanf:"graph_path"`

	// VocabularyPath maps hashtag labels to embeddings for unseen-seed lookup.
	VocabularyPath string `koanf:"vocabulary_path"`

	// AnnotationsPath is the keyframe annotation JSON loaded into the catalog.
	AnnotationsPath string `koanf:"annotations_path"`

	// EmbeddingsImportPath is an {"id": [floats]} JSON imported into the
	// embedding store when the store is empty.
	EmbeddingsImportPath string `koanf:"embeddings_import_path"`
}

// RemoteConfig holds client settings shared by remote indexes and the encoder.
type RemoteConfig struct {
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
	FailureThreshold  uint32        `koanf:"failure_threshold"`
	OpenTimeout       time.Duration `koanf:"open_timeout"`
}

// IndexesConfig declares the named vector indexes.
type IndexesConfig struct {
	// Endpoints are "name=target" pairs; target is MemoryIndex or a base URL.
	Endpoints []string `koanf:"endpoints"`

	// Default names the index used when a request names none. Empty selects
	// the first endpoint.
	Default string `koanf:"default"`

	Remote RemoteConfig `koanf:"remote"`
}

// IndexEndpoint is one parsed entry of IndexesConfig.Endpoints.
type IndexEndpoint struct {
	Name   string
	Target string
}

// InMemory reports whether the endpoint is served in process.
func (e IndexEndpoint) InMemory() bool {
	return e.Target == MemoryIndex
}

// ParseEndpoints splits Endpoints into name and target.
func (c *IndexesConfig) ParseEndpoints() ([]IndexEndpoint, error) {
	out := make([]IndexEndpoint, 0, len(c.Endpoints))
	seen := make(map[string]bool, len(c.Endpoints))
	for _, raw := range c.Endpoints {
		name, target, ok := strings.Cut(raw, "=")
		name, target = strings.TrimSpace(name), strings.TrimSpace(target)
		if !ok || name == "" || target == "" {
			return nil, fmt.Errorf("index endpoint %q must be name=target", raw)
		}
		if seen[name] {
			return nil, fmt.Errorf("index %q declared twice", name)
		}
		seen[name] = true
		out = append(out, IndexEndpoint{Name: name, Target: target})
	}
	return out, nil
}

// EncoderConfig configures the remote text encoder. An empty URL disables
// free-text queries.
type EncoderConfig struct {
	URL    string       `koanf:"url"`
	Remote RemoteConfig `koanf:"remote"`
}

// EventsConfig configures the feedback commit event transport.
type EventsConfig struct {
	Enabled bool `koanf:"enabled"`

	// Transport is "memory" (in-process GoChannel) or "nats".
	Transport string `koanf:"transport"`
	NATSURL   string `koanf:"nats_url"`
	Topic     string `koanf:"topic"`

	RetryCount           int           `koanf:"retry_count"`
	RetryInitialInterval time.Duration `koanf:"retry_initial_interval"`
	CloseTimeout         time.Duration `koanf:"close_timeout"`

	BreakerFailureThreshold uint32        `koanf:"breaker_failure_threshold"`
	BreakerTimeout          time.Duration `koanf:"breaker_timeout"`
}

// CatalogConfig configures the DuckDB keyframe catalog.
type CatalogConfig struct {
	// Path is the database file. Empty opens an in-memory database.
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = runtime.NumCPU()
}

// EmbeddingsConfig configures the Badger item embedding store.
type EmbeddingsConfig struct {
	Path       string `koanf:"path"`
	InMemory   bool   `koanf:"in_memory"`
	SyncWrites bool   `koanf:"sync_writes"`

	// GCInterval is the value log garbage collection period. Zero disables it.
	GCInterval time.Duration `koanf:"gc_interval"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Load reads configuration from defaults, the config file and the environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
