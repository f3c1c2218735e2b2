// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

/*
Package database provides the DuckDB keyframe catalog.

The catalog holds the metadata of every indexed frame (video, frame id,
image path, timestamp, caption) keyed by db_idx, the integer id shared with
the vector indexes and the hashtag graph. It also keeps an audit log of
committed feedback. The log is write-only from the ranking's point of view:
nothing in the retrieval path reads it back.

Schema:

  - keyframes: db_idx BIGINT PRIMARY KEY, frame_id, video_id, frame_path,
    timestamp_text, timestamp_sec DOUBLE, caption
  - feedback_log: (session_id, db_idx) PRIMARY KEY, reaction, committed_at

Timestamps are stored twice: the original "HH:MM:SS[.fff]" text for display
and seconds as a DOUBLE so range filters compare numerically.

Usage Example:

	db, err := database.New(&cfg.Catalog)
	if err != nil {
	    return err
	}
	defer db.Close()

	f, _ := os.Open("annotations.json")
	n, err := db.LoadAnnotations(ctx, f)

	frames, err := db.Get(ctx, []int64{12, 40, 7})

Thread Safety:

DB is safe for concurrent use. database/sql pools the underlying DuckDB
connections.
*/
package database
