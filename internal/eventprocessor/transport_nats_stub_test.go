// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

//go:build !nats

package eventprocessor

import (
	"errors"
	"io"
	"testing"

	"github.com/tomtom215/framescout/internal/config"
	"github.com/tomtom215/framescout/internal/logging"
)

func TestNewTransport_NATSRequiresBuildTag(t *testing.T) {
	t.Parallel()

	logger := logging.NewWatermillLogger(logging.NewTestLogger(io.Discard))
	_, err := NewTransport(&config.EventsConfig{Transport: TransportNATS, NATSURL: "nats://127.0.0.1:4222"}, logger)
	if !errors.Is(err, ErrNATSNotEnabled) {
		t.Errorf("NewTransport(nats) error = %v, want ErrNATSNotEnabled", err)
	}
}
