// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package eventprocessor

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/tomtom215/framescout/internal/metrics"
	"github.com/tomtom215/framescout/internal/models"
)

// FeedbackRecorder persists committed feedback. database.DB implements it.
type FeedbackRecorder interface {
	RecordFeedback(ctx context.Context, session string, entries []models.FeedbackEntry, committedAt time.Time) error
}

// Consumer writes FeedbackCommitted events to a FeedbackRecorder.
type Consumer struct {
	recorder FeedbackRecorder
	logger   zerolog.Logger
}

// NewConsumer creates a consumer writing to recorder.
//
//nolint:gocritic // hugeParam: logger passed by value following zerolog conventions
func NewConsumer(recorder FeedbackRecorder, logger zerolog.Logger) *Consumer {
	return &Consumer{
		recorder: recorder,
		logger:   logger.With().Str("component", "events").Str("handler", "feedback-recorder").Logger(),
	}
}

// Handle processes one message. Undecodable payloads are logged and
// acknowledged since redelivery cannot fix them. Recorder errors are
// returned so the router retries.
func (c *Consumer) Handle(msg *message.Message) error {
	event, err := DeserializeEvent(msg.Payload)
	if err != nil {
		c.logger.Error().Err(err).Str("message_uuid", msg.UUID).Msg("Dropping undecodable feedback event")
		metrics.RecordEventConsumed(err)
		return nil
	}

	err = c.recorder.RecordFeedback(msg.Context(), event.SessionID, event.Entries, event.CommittedAt)
	metrics.RecordEventConsumed(err)
	if err != nil {
		return err
	}

	c.logger.Debug().Str("event_id", event.EventID).Str("session_id", event.SessionID).
		Int("entries", len(event.Entries)).Msg("Feedback commit recorded")
	return nil
}
