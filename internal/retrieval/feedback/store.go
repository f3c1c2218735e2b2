// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

// Package feedback holds per-session like/dislike reactions.
//
// Reactions are written to a session's pending set and become visible to the
// rerankers only after Commit merges them into the committed set. Sessions are
// kept in insertion order; when the session count reaches the configured
// maximum, the oldest sessions are evicted.
//
// Writers are serialized per session. Different sessions never contend
// beyond the brief store-level lookup.
package feedback

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/framescout/internal/metrics"
	"github.com/tomtom215/framescout/internal/retrieval"
)

// ErrNoFeedback is returned by Commit for a session that never submitted feedback.
var ErrNoFeedback = errors.New("no feedback to submit")

// ErrEmptySession is returned for an empty session id.
var ErrEmptySession = errors.New("session id is required")

// CommitSink receives every successful commit.
type CommitSink interface {
	PublishCommit(ctx context.Context, session string, entries retrieval.Feedback) error
}

// Store maps session ids to their feedback state.
type Store struct {
	mu          sync.Mutex
	sessions    map[string]*session
	order       []string
	maxSessions int
	evictCount  int

	sink   CommitSink
	logger zerolog.Logger
}

type session struct {
	mu        sync.Mutex
	pending   actions
	committed actions
}

// actions is an insertion-ordered item -> action map. Overwriting a key
// keeps its original position.
type actions struct {
	keys   []int64
	values map[int64]retrieval.Action
}

func (a *actions) set(id int64, action retrieval.Action) {
	if a.values == nil {
		a.values = make(map[int64]retrieval.Action)
	}
	if _, ok := a.values[id]; !ok {
		a.keys = append(a.keys, id)
	}
	a.values[id] = action
}

func (a *actions) snapshot() retrieval.Feedback {
	out := make(retrieval.Feedback, len(a.keys))
	for i, id := range a.keys {
		out[i] = retrieval.FeedbackEntry{ItemID: id, Action: a.values[id]}
	}
	return out
}

func (a *actions) reset() {
	a.keys = nil
	a.values = nil
}

// Option configures a Store.
type Option func(*Store)

// WithCommitSink forwards commits to sink.
func WithCommitSink(sink CommitSink) Option {
	return func(s *Store) {
		s.sink = sink
	}
}

// NewStore creates an empty store bounded by cfg.
//
//nolint:gocritic // hugeParam: logger passed by value following zerolog conventions
func NewStore(cfg retrieval.StoreConfig, logger zerolog.Logger, opts ...Option) *Store {
	s := &Store{
		sessions:    make(map[string]*session),
		maxSessions: cfg.MaxSessions,
		evictCount:  cfg.EvictCount,
		logger:      logger.With().Str("component", "feedback_store").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit records a pending reaction, creating the session on first use.
// The write and any resulting eviction happen under the store lock, and the
// submitting session is never among the evicted ones.
func (s *Store) Submit(sessionID string, itemID int64, action retrieval.Action) error {
	if sessionID == "" {
		return ErrEmptySession
	}

	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &session{}
		s.sessions[sessionID] = sess
		s.order = append(s.order, sessionID)
	}
	sess.mu.Lock()
	sess.pending.set(itemID, action)
	sess.mu.Unlock()
	evicted, remaining := s.evictLocked(sessionID)
	s.mu.Unlock()

	metrics.RecordFeedbackSubmission(action.String())
	metrics.UpdateFeedbackSessions(remaining, evicted)
	if evicted > 0 {
		s.logger.Info().Int("evicted", evicted).Int("remaining", remaining).Msg("Evicted oldest feedback sessions")
	}
	return nil
}

// Commit merges the session's pending reactions into its committed set,
// clears pending, and returns the committed set in insertion order.
func (s *Store) Commit(ctx context.Context, sessionID string) (retrieval.Feedback, error) {
	sess := s.lookup(sessionID)
	if sess == nil {
		return nil, ErrNoFeedback
	}

	sess.mu.Lock()
	for _, id := range sess.pending.keys {
		sess.committed.set(id, sess.pending.values[id])
	}
	sess.pending.reset()
	committed := sess.committed.snapshot()
	sess.mu.Unlock()

	metrics.RecordFeedbackCommit()

	if s.sink != nil {
		if err := s.sink.PublishCommit(ctx, sessionID, committed); err != nil {
			s.logger.Warn().Err(err).Str("session_id", sessionID).Msg("Failed to publish feedback commit")
		}
	}
	return committed, nil
}

// Committed returns a snapshot of the session's committed reactions.
func (s *Store) Committed(sessionID string) retrieval.Feedback {
	sess := s.lookup(sessionID)
	if sess == nil {
		return nil
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.committed.snapshot()
}

// Pending returns a snapshot of the session's uncommitted reactions.
func (s *Store) Pending(sessionID string) retrieval.Feedback {
	sess := s.lookup(sessionID)
	if sess == nil {
		return nil
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.pending.snapshot()
}

// HasCommitted reports whether the session has any committed reaction.
func (s *Store) HasCommitted(sessionID string) bool {
	sess := s.lookup(sessionID)
	if sess == nil {
		return false
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return len(sess.committed.keys) > 0
}

// Len returns the number of tracked sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Contains reports whether the session is tracked.
func (s *Store) Contains(sessionID string) bool {
	return s.lookup(sessionID) != nil
}

func (s *Store) lookup(sessionID string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[sessionID]
}

// evictLocked drops up to evictCount of the oldest sessions other than keep
// once the count reaches maxSessions. Callers hold s.mu.
func (s *Store) evictLocked(keep string) (evicted, remaining int) {
	if s.maxSessions <= 0 || len(s.order) < s.maxSessions {
		return 0, len(s.order)
	}
	kept := make([]string, 0, len(s.order))
	for _, id := range s.order {
		if evicted < s.evictCount && id != keep {
			delete(s.sessions, id)
			evicted++
			continue
		}
		kept = append(kept, id)
	}
	s.order = kept
	return evicted, len(s.order)
}
