// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package api

import (
	"context"
	"time"

	"github.com/tomtom215/framescout/internal/config"
	"github.com/tomtom215/framescout/internal/models"
	"github.com/tomtom215/framescout/internal/retrieval/engine"
	"github.com/tomtom215/framescout/internal/retrieval/feedback"
)

// Catalog resolves keyframe metadata. *database.DB implements it.
type Catalog interface {
	Get(ctx context.Context, ids []int64) (map[int64]models.Keyframe, error)
	ListKeyframes(ctx context.Context, filter models.KeyframeFilter, page, perPage int) ([]models.Keyframe, int, error)
	Ping(ctx context.Context) error
}

// Handler serves the Framescout API.
type Handler struct {
	engine    *engine.Engine
	feedback  *feedback.Store
	catalog   Catalog
	config    *config.Config
	version   string
	startTime time.Time
}

// NewHandler creates a handler.
//
// Example:
//
//	handler := api.NewHandler(eng, store, db, cfg, version)
//	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(&cfg.Security))
//	http.ListenAndServe(":8080", router.SetupChi())
func NewHandler(eng *engine.Engine, store *feedback.Store, catalog Catalog, cfg *config.Config, version string) *Handler {
	return &Handler{
		engine:    eng,
		feedback:  store,
		catalog:   catalog,
		config:    cfg,
		version:   version,
		startTime: time.Now(),
	}
}
