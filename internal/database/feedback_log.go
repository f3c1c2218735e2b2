// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/framescout/internal/metrics"
	"github.com/tomtom215/framescout/internal/models"
)

// FeedbackRecord is one row of the feedback audit log.
type FeedbackRecord struct {
	SessionID   string
	DBIdx       int64
	Reaction    string
	CommittedAt time.Time
}

// RecordFeedback upserts a session's committed reactions into the audit
// log. A later commit for the same session and db_idx replaces the
// reaction and timestamp.
func (db *DB) RecordFeedback(ctx context.Context, session string, entries []models.FeedbackEntry, committedAt time.Time) (err error) {
	if len(entries) == 0 {
		return nil
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { metrics.RecordDBQuery("upsert", "feedback_log", time.Since(start), err) }()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO feedback_log (session_id, db_idx, reaction, committed_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (session_id, db_idx) DO UPDATE SET
			reaction = EXCLUDED.reaction,
			committed_at = EXCLUDED.committed_at`)
	if err != nil {
		return fmt.Errorf("failed to prepare feedback insert: %w", err)
	}
	defer closeWithLog(stmt, "statement")

	at := committedAt.UTC()
	for _, e := range entries {
		if _, err = stmt.ExecContext(ctx, session, e.DBIdx, e.Action, at); err != nil {
			return fmt.Errorf("failed to record feedback for %d: %w", e.DBIdx, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit feedback: %w", err)
	}
	return nil
}

// SessionFeedback returns the audit log rows of session in db_idx order.
func (db *DB) SessionFeedback(ctx context.Context, session string) ([]FeedbackRecord, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `SELECT session_id, db_idx, reaction, committed_at
		FROM feedback_log WHERE session_id = ? ORDER BY db_idx`, session)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback log: %w", err)
	}
	defer closeWithLog(rows, "rows")

	var records []FeedbackRecord
	for rows.Next() {
		var r FeedbackRecord
		if err := rows.Scan(&r.SessionID, &r.DBIdx, &r.Reaction, &r.CommittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
