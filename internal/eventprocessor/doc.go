// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

/*
Package eventprocessor transports committed feedback from the session store
to the keyframe catalog's audit log.

Flow:

	feedback.Store.Commit
	    -> Publisher.PublishCommit (gobreaker)
	    -> topic "feedback.committed" (GoChannel or NATS JetStream)
	    -> Router (Recoverer, PoisonQueue, Retry)
	    -> Consumer -> database.DB.RecordFeedback

The default transport is an in-process Watermill GoChannel. Building with
-tags nats adds a NATS JetStream transport selected by transport: nats.

Publishing never blocks a commit on the sink: the feedback store logs a
failed publish and keeps the commit. The circuit breaker stops publish
attempts while the broker is down.

Events are JSON encoded with goccy/go-json.
*/
package eventprocessor
