// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

// Package main is the entry point for the Framescout server.
//
// Framescout serves interactive keyframe retrieval: a search turn ranks
// keyframes for query text and hashtags, and later turns refine the
// ranking from the like/dislike feedback a session has committed.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: defaults, config file and environment (Koanf v2)
//  2. Catalog: DuckDB keyframe metadata and the feedback audit log
//  3. Embeddings: BadgerDB item embedding store
//  4. Retrieval: vector index registry, text encoder, hashtag graph
//  5. Events: Watermill feedback commit transport (optional)
//  6. HTTP Server: chi router under the suture supervisor tree
//
// # Build Tags
//
//	go build ./cmd/server               # in-process event transport
//	go build -tags nats ./cmd/server    # NATS JetStream transport
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the root context. The supervisor stops the HTTP
// server and event router, then the stores are closed.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/framescout/internal/api"
	"github.com/tomtom215/framescout/internal/config"
	"github.com/tomtom215/framescout/internal/database"
	"github.com/tomtom215/framescout/internal/logging"
	"github.com/tomtom215/framescout/internal/retrieval/feedback"
	"github.com/tomtom215/framescout/internal/supervisor"
	"github.com/tomtom215/framescout/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logging.Info().
		Str("version", version).
		Str("catalog", cfg.Catalog.Path).
		Strs("indexes", cfg.Indexes.Endpoints).
		Bool("events", cfg.Events.Enabled).
		Msg("Starting Framescout")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server exited with error")
	}
	logging.Info().Msg("Server stopped")
}

func run(cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.New(&cfg.Catalog)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing catalog")
		}
	}()
	if err := loadAnnotations(ctx, db, cfg.Data.AnnotationsPath); err != nil {
		return err
	}

	store, err := openEmbeddings(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing embedding store")
		}
	}()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return err
	}

	events, err := initEvents(cfg, db, tree)
	if err != nil {
		return err
	}
	defer events.Close()

	var opts []feedback.Option
	if events.publisher != nil {
		opts = append(opts, feedback.WithCommitSink(events.publisher))
	}
	feedbackStore := feedback.NewStore(cfg.Retrieval.Store, logging.WithComponent("feedback"), opts...)

	eng, err := initRetrieval(ctx, cfg, store, feedbackStore)
	if err != nil {
		return err
	}

	if cfg.Embeddings.GCInterval > 0 && !cfg.Embeddings.InMemory {
		tree.AddDataService(services.NewMaintenanceService(store, cfg.Embeddings.GCInterval, logging.WithComponent("maintenance")))
	}

	handler := api.NewHandler(eng, feedbackStore, db, cfg, version)
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(&cfg.Security))
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (RATE_LIMIT_DISABLED=true)")
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}
	return nil
}
