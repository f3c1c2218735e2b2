// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package eventprocessor

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/rs/zerolog"

	"github.com/tomtom215/framescout/internal/config"
	"github.com/tomtom215/framescout/internal/logging"
)

const handlerName = "feedback-recorder"

// Router wraps the Watermill Router that feeds the Consumer.
//
// Middleware, outer to inner:
//  1. Recoverer - convert panics to errors
//  2. PoisonQueue - move messages that exhausted their retries to <topic>.poison
//  3. Retry - exponential backoff for transient recorder failures
type Router struct {
	router *message.Router
	topic  string
	logger zerolog.Logger
}

// NewRouter builds a router consuming cfg.Topic from transport into consumer.
//
//nolint:gocritic // hugeParam: logger passed by value following zerolog conventions
func NewRouter(cfg *config.EventsConfig, transport *Transport, consumer *Consumer, logger zerolog.Logger) (*Router, error) {
	log := logger.With().Str("component", "events").Str("transport", transport.Name).Logger()
	wmLogger := logging.NewWatermillLogger(log)

	wmRouter, err := message.NewRouter(message.RouterConfig{
		CloseTimeout: cfg.CloseTimeout,
	}, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	poisonQueue, err := middleware.PoisonQueue(transport.Publisher, PoisonTopic(cfg.Topic))
	if err != nil {
		return nil, fmt.Errorf("create poison queue middleware: %w", err)
	}

	retry := middleware.Retry{
		MaxRetries:      cfg.RetryCount,
		InitialInterval: cfg.RetryInitialInterval,
		MaxInterval:     10 * cfg.RetryInitialInterval,
		Multiplier:      2.0,
		Logger:          wmLogger,
	}

	wmRouter.AddMiddleware(
		middleware.Recoverer,
		poisonQueue,
		retry.Middleware,
	)
	wmRouter.AddConsumerHandler(handlerName, cfg.Topic, transport.Subscriber, consumer.Handle)

	return &Router{router: wmRouter, topic: cfg.Topic, logger: log}, nil
}

// PoisonTopic returns the topic that receives messages of topic that
// failed every retry.
func PoisonTopic(topic string) string {
	return topic + ".poison"
}

// Run starts the router and blocks until ctx is canceled or Close is called.
func (r *Router) Run(ctx context.Context) error {
	r.logger.Info().Str("topic", r.topic).Msg("Event router starting")
	return r.router.Run(ctx)
}

// Running returns a channel closed once handlers are subscribed.
func (r *Router) Running() <-chan struct{} {
	return r.router.Running()
}

// Close stops the router, waiting up to CloseTimeout for handlers.
func (r *Router) Close() error {
	return r.router.Close()
}
