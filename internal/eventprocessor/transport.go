// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package eventprocessor

import (
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/tomtom215/framescout/internal/config"
)

const (
	// TransportMemory is the in-process GoChannel transport.
	TransportMemory = "memory"
	// TransportNATS is the NATS JetStream transport.
	TransportNATS = "nats"
)

// Transport is a Watermill publisher/subscriber pair for one broker.
type Transport struct {
	Publisher  message.Publisher
	Subscriber message.Subscriber
	Name       string

	// shared is set when Publisher and Subscriber are the same object.
	shared bool
}

// NewTransport opens the transport named by cfg.Transport.
func NewTransport(cfg *config.EventsConfig, logger watermill.LoggerAdapter) (*Transport, error) {
	switch cfg.Transport {
	case "", TransportMemory:
		return newMemoryTransport(logger), nil
	case TransportNATS:
		return newNATSTransport(cfg, logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransport, cfg.Transport)
	}
}

func newMemoryTransport(logger watermill.LoggerAdapter) *Transport {
	ch := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 256,
	}, logger)
	return &Transport{Publisher: ch, Subscriber: ch, Name: TransportMemory, shared: true}
}

// Close closes the publisher and subscriber.
func (t *Transport) Close() error {
	pubErr := t.Publisher.Close()
	if t.shared {
		return pubErr
	}
	return errors.Join(pubErr, t.Subscriber.Close())
}
