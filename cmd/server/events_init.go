// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package main

import (
	"github.com/tomtom215/framescout/internal/config"
	"github.com/tomtom215/framescout/internal/eventprocessor"
	"github.com/tomtom215/framescout/internal/logging"
	"github.com/tomtom215/framescout/internal/supervisor"
	"github.com/tomtom215/framescout/internal/supervisor/services"
)

// eventComponents are the feedback commit event pipeline. All fields are
// nil when events are disabled.
type eventComponents struct {
	transport *eventprocessor.Transport
	publisher *eventprocessor.Publisher
	router    *eventprocessor.Router
}

// initEvents opens the configured transport and adds the feedback log
// router to the messaging layer.
func initEvents(cfg *config.Config, recorder eventprocessor.FeedbackRecorder, tree *supervisor.SupervisorTree) (*eventComponents, error) {
	if !cfg.Events.Enabled {
		logging.Info().Msg("Feedback events disabled")
		return &eventComponents{}, nil
	}

	logger := logging.WithComponent("events")
	transport, err := eventprocessor.NewTransport(&cfg.Events, logging.NewWatermillLogger(logger))
	if err != nil {
		return nil, err
	}

	router, err := eventprocessor.NewRouter(&cfg.Events, transport, eventprocessor.NewConsumer(recorder, logger), logger)
	if err != nil {
		_ = transport.Close()
		return nil, err
	}
	tree.AddMessagingService(services.NewEventRouterService(router))

	logging.Info().Str("transport", transport.Name).Str("topic", cfg.Events.Topic).Msg("Feedback events enabled")
	return &eventComponents{
		transport: transport,
		publisher: eventprocessor.NewPublisher(transport.Publisher, &cfg.Events, logger),
		router:    router,
	}, nil
}

// Close stops publishing, then closes the router and transport.
func (e *eventComponents) Close() {
	if e.transport == nil {
		return
	}
	if err := e.publisher.Close(); err != nil {
		logging.Warn().Err(err).Msg("Error closing event publisher")
	}
	if err := e.router.Close(); err != nil {
		logging.Warn().Err(err).Msg("Error closing event router")
	}
	if err := e.transport.Close(); err != nil {
		logging.Warn().Err(err).Msg("Error closing event transport")
	}
}
