// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package config

import (
	"fmt"
	"time"
)

// Validate checks that the configuration is complete and within bounds.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateIndexes(); err != nil {
		return err
	}
	if err := c.validateEncoder(); err != nil {
		return err
	}
	if err := c.Retrieval.Validate(); err != nil {
		return fmt.Errorf("retrieval: %w", err)
	}
	if err := c.validateEvents(); err != nil {
		return err
	}
	return c.validateStorage()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if !validEnvironments[c.Server.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, production")
	}
	return nil
}

var validEnvironments = map[string]bool{
	"development": true,
	"production":  true,
}

// Rate limit constants
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// ShouldWarnAboutCORS reports a wildcard origin in production.
func (c *Config) ShouldWarnAboutCORS() bool {
	if !c.IsProduction() {
		return false
	}
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

func (c *Config) validateIndexes() error {
	endpoints, err := c.Indexes.ParseEndpoints()
	if err != nil {
		return fmt.Errorf("INDEXES is invalid: %w", err)
	}
	if len(endpoints) == 0 {
		return fmt.Errorf("INDEXES must declare at least one index")
	}

	defaultFound := c.Indexes.Default == ""
	for _, ep := range endpoints {
		if ep.Name == c.Indexes.Default {
			defaultFound = true
		}
		if ep.InMemory() {
			continue
		}
		if err := validateHTTPURL(ep.Target, "index "+ep.Name); err != nil {
			return fmt.Errorf("INDEXES is invalid: %w", err)
		}
	}
	if !defaultFound {
		return fmt.Errorf("DEFAULT_INDEX %q is not declared in INDEXES", c.Indexes.Default)
	}
	return validateRemote("INDEX", c.Indexes.Remote)
}

func (c *Config) validateEncoder() error {
	if c.Encoder.URL == "" {
		return nil
	}
	if err := validateHTTPURL(c.Encoder.URL, "ENCODER_URL"); err != nil {
		return fmt.Errorf("ENCODER_URL is invalid: %w", err)
	}
	return validateRemote("ENCODER", c.Encoder.Remote)
}

func validateRemote(prefix string, r RemoteConfig) error {
	if r.Timeout <= 0 {
		return fmt.Errorf("%s_TIMEOUT must be positive", prefix)
	}
	if r.RequestsPerSecond < 0 {
		return fmt.Errorf("%s_REQUESTS_PER_SECOND must be non-negative", prefix)
	}
	return nil
}

var validTransports = map[string]bool{
	"memory": true,
	"nats":   true,
}

func (c *Config) validateEvents() error {
	if !c.Events.Enabled {
		return nil
	}
	if !validTransports[c.Events.Transport] {
		return fmt.Errorf("EVENTS_TRANSPORT must be one of: memory, nats")
	}
	if c.Events.Transport == "nats" {
		if err := validateNATSURL(c.Events.NATSURL); err != nil {
			return fmt.Errorf("NATS_URL is invalid: %w", err)
		}
	}
	if c.Events.Topic == "" {
		return fmt.Errorf("EVENTS_TOPIC is required when events are enabled")
	}
	if c.Events.RetryCount < 0 {
		return fmt.Errorf("EVENTS_RETRY_COUNT must be non-negative")
	}
	return nil
}

func (c *Config) validateStorage() error {
	if c.Catalog.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be non-negative")
	}
	if !c.Embeddings.InMemory && c.Embeddings.Path == "" {
		return fmt.Errorf("EMBEDDINGS_PATH is required unless EMBEDDINGS_IN_MEMORY=true")
	}
	if c.Embeddings.GCInterval < 0 {
		return fmt.Errorf("EMBEDDINGS_GC_INTERVAL must be non-negative")
	}
	return nil
}
