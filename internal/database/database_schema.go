// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package database

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS keyframes (
		db_idx BIGINT PRIMARY KEY,
		frame_id TEXT NOT NULL,
		video_id TEXT NOT NULL,
		frame_path TEXT NOT NULL,
		timestamp_text TEXT NOT NULL DEFAULT '',
		timestamp_sec DOUBLE NOT NULL DEFAULT 0,
		caption TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS feedback_log (
		session_id TEXT NOT NULL,
		db_idx BIGINT NOT NULL,
		reaction TEXT NOT NULL,
		committed_at TIMESTAMP NOT NULL,
		PRIMARY KEY (session_id, db_idx)
	)`,
}

// createTables creates the catalog schema if it does not exist.
func (db *DB) createTables(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}
