// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package eventprocessor

import "errors"

var (
	// ErrPublisherClosed is returned by PublishCommit after Close.
	ErrPublisherClosed = errors.New("publisher is closed")

	// ErrInvalidEvent is returned for an event that fails validation.
	ErrInvalidEvent = errors.New("invalid event")

	// ErrUnknownTransport is returned for an unsupported transport name.
	ErrUnknownTransport = errors.New("unknown event transport")

	// ErrNATSNotEnabled is returned when the nats transport is selected in
	// a binary built without -tags nats.
	ErrNATSNotEnabled = errors.New("NATS transport requires building with -tags nats")
)
