// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// GarbageCollector matches storage.EmbeddingStore's value log GC.
type GarbageCollector interface {
	RunGC(discardRatio float64) error
}

// MaintenanceService periodically runs value log GC on the embedding store.
// GC errors are logged and the loop continues.
type MaintenanceService struct {
	store        GarbageCollector
	interval     time.Duration
	discardRatio float64
	logger       zerolog.Logger
	name         string
}

// NewMaintenanceService creates a GC loop. interval <= 0 selects 10 minutes.
//
//nolint:gocritic // hugeParam: logger passed by value following zerolog conventions
func NewMaintenanceService(store GarbageCollector, interval time.Duration, logger zerolog.Logger) *MaintenanceService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &MaintenanceService{
		store:        store,
		interval:     interval,
		discardRatio: 0.5,
		logger:       logger.With().Str("component", "maintenance").Logger(),
		name:         "embedding-gc",
	}
}

// Serve implements suture.Service.
func (m *MaintenanceService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := m.store.RunGC(m.discardRatio); err != nil {
				m.logger.Warn().Err(err).Msg("Embedding store GC failed")
			}
		}
	}
}

// String implements fmt.Stringer for supervisor logs.
func (m *MaintenanceService) String() string {
	return m.name
}
