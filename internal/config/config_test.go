// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package config

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, "HTTP_PORT"},
		{"unknown environment", func(c *Config) { c.Server.Environment = "staging" }, "ENVIRONMENT"},
		{"rate limit zero", func(c *Config) { c.Security.RateLimitReqs = 0 }, "RATE_LIMIT_REQUESTS"},
		{"rate limit disabled skips bounds", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, ""},
		{"log level", func(c *Config) { c.Logging.Level = "verbose" }, "LOG_LEVEL"},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
		{"no indexes", func(c *Config) { c.Indexes.Endpoints = nil }, "at least one index"},
		{"malformed endpoint", func(c *Config) { c.Indexes.Endpoints = []string{"CLIP_v2"} }, "name=target"},
		{"duplicate endpoint", func(c *Config) {
			c.Indexes.Endpoints = []string{"CLIP_v2=memory", "CLIP_v2=http://faiss:8001"}
		}, "declared twice"},
		{"remote endpoint with path", func(c *Config) {
			c.Indexes.Endpoints = []string{"CLIP_v2=http://faiss:8001/search"}
		}, "base URL only"},
		{"unknown default index", func(c *Config) { c.Indexes.Default = "CLIP_v9" }, "DEFAULT_INDEX"},
		{"encoder scheme", func(c *Config) { c.Encoder.URL = "ftp://encoder" }, "ENCODER_URL"},
		{"encoder timeout", func(c *Config) {
			c.Encoder.URL = "http://encoder:8002"
			c.Encoder.Remote.Timeout = 0
		}, "ENCODER_TIMEOUT"},
		{"retrieval tunables", func(c *Config) { c.Retrieval.Graph.Alpha = 2 }, "retrieval: graph.alpha"},
		{"events transport", func(c *Config) { c.Events.Transport = "kafka" }, "EVENTS_TRANSPORT"},
		{"nats url", func(c *Config) {
			c.Events.Transport = "nats"
			c.Events.NATSURL = "http://nats:4222"
		}, "NATS_URL"},
		{"events disabled skips transport", func(c *Config) {
			c.Events.Enabled = false
			c.Events.Transport = "kafka"
		}, ""},
		{"embedding path", func(c *Config) { c.Embeddings.Path = "" }, "EMBEDDINGS_PATH"},
		{"in-memory embeddings", func(c *Config) {
			c.Embeddings.Path = ""
			c.Embeddings.InMemory = true
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseEndpoints(t *testing.T) {
	t.Parallel()

	cfg := IndexesConfig{Endpoints: []string{" CLIP_v2 = memory ", "CLIP_v0=http://faiss:8001"}}
	got, err := cfg.ParseEndpoints()
	if err != nil {
		t.Fatalf("ParseEndpoints() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ParseEndpoints() len = %d, want 2", len(got))
	}
	if got[0].Name != "CLIP_v2" || !got[0].InMemory() {
		t.Errorf("endpoint 0 = %+v, want in-memory CLIP_v2", got[0])
	}
	if got[1].Target != "http://faiss:8001" || got[1].InMemory() {
		t.Errorf("endpoint 1 = %+v, want remote target", got[1])
	}
}

func TestShouldWarnAboutCORS(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	if cfg.ShouldWarnAboutCORS() {
		t.Error("wildcard CORS in development should not warn")
	}
	cfg.Server.Environment = "production"
	if !cfg.ShouldWarnAboutCORS() {
		t.Error("wildcard CORS in production should warn")
	}
	cfg.Security.CORSOrigins = []string{"https://search.example.com"}
	if cfg.ShouldWarnAboutCORS() {
		t.Error("explicit origins should not warn")
	}
}

func TestServerAddr(t *testing.T) {
	t.Parallel()

	s := ServerConfig{Host: "127.0.0.1", Port: 8000}
	if got := s.Addr(); got != "127.0.0.1:8000" {
		t.Errorf("Addr() = %q, want 127.0.0.1:8000", got)
	}
}
