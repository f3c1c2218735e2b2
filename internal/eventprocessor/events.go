// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package eventprocessor

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/framescout/internal/models"
	"github.com/tomtom215/framescout/internal/retrieval"
)

// FeedbackCommitted is published once per successful feedback commit. It
// carries the session's full committed set, not only the latest delta.
type FeedbackCommitted struct {
	EventID     string                 `json:"event_id"`
	SessionID   string                 `json:"session_id"`
	Entries     []models.FeedbackEntry `json:"entries"`
	CommittedAt time.Time              `json:"committed_at"`
}

// NewFeedbackCommitted builds an event for session's committed feedback.
func NewFeedbackCommitted(session string, fb retrieval.Feedback, at time.Time) *FeedbackCommitted {
	entries := make([]models.FeedbackEntry, len(fb))
	for i, e := range fb {
		entries[i] = models.FeedbackEntry{DBIdx: e.ItemID, Action: e.Action.String()}
	}
	return &FeedbackCommitted{
		EventID:     uuid.New().String(),
		SessionID:   session,
		Entries:     entries,
		CommittedAt: at.UTC(),
	}
}

// Validate checks required fields.
func (e *FeedbackCommitted) Validate() error {
	switch {
	case e.EventID == "":
		return fmt.Errorf("%w: event_id is required", ErrInvalidEvent)
	case e.SessionID == "":
		return fmt.Errorf("%w: session_id is required", ErrInvalidEvent)
	case e.CommittedAt.IsZero():
		return fmt.Errorf("%w: committed_at is required", ErrInvalidEvent)
	}
	return nil
}
