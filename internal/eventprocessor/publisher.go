// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package eventprocessor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/framescout/internal/config"
	"github.com/tomtom215/framescout/internal/metrics"
	"github.com/tomtom215/framescout/internal/retrieval"
)

const breakerName = "feedback-events"

// Publisher publishes FeedbackCommitted events through a circuit breaker.
// It implements feedback.CommitSink.
type Publisher struct {
	publisher message.Publisher
	topic     string
	breaker   *gobreaker.CircuitBreaker[struct{}]
	logger    zerolog.Logger

	mu     sync.RWMutex
	closed bool
}

// NewPublisher wraps pub for cfg.Topic. The caller owns pub.
//
//nolint:gocritic // hugeParam: logger passed by value following zerolog conventions
func NewPublisher(pub message.Publisher, cfg *config.EventsConfig, logger zerolog.Logger) *Publisher {
	log := logger.With().Str("component", "events").Str("topic", cfg.Topic).Logger()
	return &Publisher{
		publisher: pub,
		topic:     cfg.Topic,
		breaker: NewCircuitBreaker(BreakerConfig{
			Name:             breakerName,
			FailureThreshold: cfg.BreakerFailureThreshold,
			Timeout:          cfg.BreakerTimeout,
		}, log),
		logger: log,
	}
}

// PublishCommit publishes session's committed feedback.
func (p *Publisher) PublishCommit(ctx context.Context, session string, entries retrieval.Feedback) error {
	return p.Publish(ctx, NewFeedbackCommitted(session, entries, time.Now()))
}

// Publish serializes and publishes event. Calls rejected by an open
// breaker fail fast with gobreaker.ErrOpenState.
func (p *Publisher) Publish(ctx context.Context, event *FeedbackCommitted) (err error) {
	p.mu.RLock()
	closed := p.closed
	p.mu.RUnlock()
	if closed {
		return ErrPublisherClosed
	}

	data, err := SerializeEvent(event)
	if err != nil {
		return fmt.Errorf("serialize event: %w", err)
	}

	msg := message.NewMessage(event.EventID, data)
	msg.Metadata.Set("session_id", event.SessionID)
	msg.SetContext(ctx)

	_, err = p.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, p.publisher.Publish(p.topic, msg)
	})
	metrics.RecordEventPublished(err)

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
		return fmt.Errorf("publish %s: %w", event.EventID, err)
	case err != nil:
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
		return fmt.Errorf("publish %s: %w", event.EventID, err)
	}
	metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()

	p.logger.Debug().Str("event_id", event.EventID).Str("session_id", event.SessionID).
		Int("entries", len(event.Entries)).Msg("Feedback commit published")
	return nil
}

// BreakerState returns the circuit breaker state name.
func (p *Publisher) BreakerState() string {
	return p.breaker.State().String()
}

// Close stops further publishing. The underlying transport stays open.
func (p *Publisher) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return nil
}
