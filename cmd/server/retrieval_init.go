// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/tomtom215/framescout/internal/config"
	"github.com/tomtom215/framescout/internal/database"
	"github.com/tomtom215/framescout/internal/logging"
	"github.com/tomtom215/framescout/internal/retrieval/engine"
	"github.com/tomtom215/framescout/internal/retrieval/feedback"
	"github.com/tomtom215/framescout/internal/retrieval/graph"
	"github.com/tomtom215/framescout/internal/retrieval/storage"
	"github.com/tomtom215/framescout/internal/retrieval/vector"
)

// loadAnnotations upserts the keyframe annotation file into the catalog.
// An empty path keeps the catalog as it is.
func loadAnnotations(ctx context.Context, db *database.DB, path string) error {
	if path == "" {
		logging.Warn().Msg("No annotations configured; search results need an existing catalog")
		return nil
	}
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return fmt.Errorf("open annotations: %w", err)
	}
	defer f.Close()

	n, err := db.LoadAnnotations(ctx, f)
	if err != nil {
		return err
	}
	logging.Info().Int("keyframes", n).Str("path", path).Msg("Annotations loaded")
	return nil
}

// openEmbeddings opens the embedding store and imports the configured JSON
// file when the store is empty.
func openEmbeddings(ctx context.Context, cfg *config.Config) (*storage.EmbeddingStore, error) {
	store, err := storage.Open(storage.Config{
		Path:       cfg.Embeddings.Path,
		InMemory:   cfg.Embeddings.InMemory,
		SyncWrites: cfg.Embeddings.SyncWrites,
	}, logging.Logger())
	if err != nil {
		return nil, err
	}

	n, err := store.Len()
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	if n == 0 && cfg.Data.EmbeddingsImportPath != "" {
		f, err := os.Open(cfg.Data.EmbeddingsImportPath)
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("open embeddings import: %w", err)
		}
		n, err = store.ImportJSON(ctx, f)
		_ = f.Close()
		if err != nil {
			_ = store.Close()
			return nil, err
		}
	}
	logging.Info().Int("embeddings", n).Bool("in_memory", cfg.Embeddings.InMemory).Msg("Embedding store ready")
	return store, nil
}

// buildRegistry registers every configured index. Memory targets are
// exact indexes built from the embedding store; other targets are remote
// ANN services.
func buildRegistry(ctx context.Context, cfg *config.Config, store *storage.EmbeddingStore, logger zerolog.Logger) (*vector.Registry, error) {
	endpoints, err := cfg.Indexes.ParseEndpoints()
	if err != nil {
		return nil, err
	}

	registry := vector.NewRegistry()
	var flat *vector.FlatIndex
	for _, ep := range endpoints {
		if ep.InMemory() {
			if flat == nil {
				dim, err := store.Dimension(ctx)
				if err != nil {
					return nil, err
				}
				if dim == 0 {
					logger.Warn().Str("index", ep.Name).Msg("Embedding store is empty; in-memory index has no items")
				}
				if flat, err = store.BuildFlatIndex(ctx, dim); err != nil {
					return nil, err
				}
			}
			registry.Register(ep.Name, flat)
			logger.Info().Str("index", ep.Name).Int("items", flat.Len()).Msg("In-memory index registered")
			continue
		}
		registry.Register(ep.Name, vector.NewRemoteIndex(remoteConfig(ep.Name, ep.Target, cfg.Indexes.Remote), logger))
		logger.Info().Str("index", ep.Name).Str("url", ep.Target).Msg("Remote index registered")
	}

	if cfg.Indexes.Default != "" {
		if err := registry.SetDefault(cfg.Indexes.Default); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func remoteConfig(name, url string, rc config.RemoteConfig) *vector.RemoteConfig {
	return &vector.RemoteConfig{
		Name:              name,
		URL:               url,
		Timeout:           rc.Timeout,
		RequestsPerSecond: rc.RequestsPerSecond,
		Burst:             rc.Burst,
		FailureThreshold:  rc.FailureThreshold,
		OpenTimeout:       rc.OpenTimeout,
	}
}

// initRetrieval assembles the ranking engine. Missing optional datasets
// disable the features that need them.
func initRetrieval(ctx context.Context, cfg *config.Config, store *storage.EmbeddingStore, fb *feedback.Store) (*engine.Engine, error) {
	logger := logging.WithComponent("retrieval")

	registry, err := buildRegistry(ctx, cfg, store, logger)
	if err != nil {
		return nil, err
	}
	deps := engine.Dependencies{
		Indexes:  registry,
		Embedder: store,
		Feedback: fb,
	}

	if cfg.Encoder.URL != "" {
		deps.Encoder = vector.NewRemoteEncoder(remoteConfig("encoder", cfg.Encoder.URL, cfg.Encoder.Remote), logger)
	} else {
		logger.Warn().Msg("No text encoder configured; free-text queries are unavailable")
	}

	if cfg.Data.GraphPath != "" {
		g, err := graph.LoadFile(cfg.Data.GraphPath)
		if err != nil {
			return nil, err
		}
		deps.Graph = g
		logger.Info().Str("path", cfg.Data.GraphPath).Msg("Hashtag graph loaded")

		if cfg.Data.VocabularyPath != "" {
			vocab, err := graph.LoadVocabularyFile(cfg.Data.VocabularyPath, g)
			if err != nil {
				return nil, err
			}
			deps.Vocabulary = vocab
		}
	}

	return engine.New(cfg.Retrieval.Clone(), deps, logger)
}
