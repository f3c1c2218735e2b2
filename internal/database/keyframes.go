// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package database

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/framescout/internal/metrics"
	"github.com/tomtom215/framescout/internal/models"
)

const keyframeColumns = "db_idx, frame_id, video_id, frame_path, timestamp_text, caption"

// annotation is one entry of the annotation document. Producers emit
// frame_ID both as a string and as a number.
type annotation struct {
	FrameID   any    `json:"frame_ID"`
	VideoID   string `json:"video_ID"`
	FramePath string `json:"frame_path"`
	Timestamp any    `json:"timestamp"`
	Caption   string `json:"caption"`
}

// LoadAnnotations reads a JSON object keyed by db index and upserts every
// entry into the keyframes table. Frame paths ending in .jpg are stored as
// .webp. It returns the number of keyframes written.
func (db *DB) LoadAnnotations(ctx context.Context, r io.Reader) (int, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc map[string]annotation
	if err := dec.Decode(&doc); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAnnotations, err)
	}

	keyframes := make([]models.Keyframe, 0, len(doc))
	for key, a := range doc {
		idx, err := strconv.ParseInt(strings.TrimSpace(key), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: key %q is not a db index", ErrInvalidAnnotations, key)
		}
		keyframes = append(keyframes, models.Keyframe{
			DBIdx:     idx,
			FrameID:   stringify(a.FrameID),
			VideoID:   a.VideoID,
			FramePath: models.WebPPath(a.FramePath),
			Timestamp: stringify(a.Timestamp),
			Caption:   a.Caption,
		})
	}
	sort.Slice(keyframes, func(i, j int) bool { return keyframes[i].DBIdx < keyframes[j].DBIdx })

	if err := db.UpsertKeyframes(ctx, keyframes); err != nil {
		return 0, err
	}
	db.logger.Info().Int("keyframes", len(keyframes)).Msg("Annotations loaded")
	return len(keyframes), nil
}

func stringify(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// UpsertKeyframes writes keyframes in a single transaction, replacing rows
// with the same db_idx.
func (db *DB) UpsertKeyframes(ctx context.Context, keyframes []models.Keyframe) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { metrics.RecordDBQuery("upsert", "keyframes", time.Since(start), err) }()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO keyframes
		(db_idx, frame_id, video_id, frame_path, timestamp_text, timestamp_sec, caption)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare keyframe insert: %w", err)
	}
	defer closeWithLog(stmt, "statement")

	for i := range keyframes {
		kf := &keyframes[i]
		if _, err = stmt.ExecContext(ctx, kf.DBIdx, kf.FrameID, kf.VideoID, kf.FramePath,
			kf.Timestamp, kf.Offset().Seconds(), kf.Caption); err != nil {
			return fmt.Errorf("failed to insert keyframe %d: %w", kf.DBIdx, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit keyframes: %w", err)
	}
	return nil
}

// Get returns the keyframes for ids. Ids without a catalog entry are absent
// from the result.
func (db *DB) Get(ctx context.Context, ids []int64) (map[int64]models.Keyframe, error) {
	out := make(map[int64]models.Keyframe, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	query := "SELECT " + keyframeColumns + " FROM keyframes WHERE db_idx IN (" + placeholders + ")"

	start := time.Now()
	keyframes, err := db.queryKeyframes(ctx, query, args...)
	metrics.RecordDBQuery("select", "keyframes", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	for i := range keyframes {
		out[keyframes[i].DBIdx] = keyframes[i]
	}
	return out, nil
}

// ListKeyframes returns one page of the catalog in db_idx order and the
// total number of matching keyframes. A zero filter lists everything. A
// non-empty VideoID restricts to that video; After keeps frames strictly
// later than the given offset and defaults to "00:00:00" whenever the filter
// is not zero.
func (db *DB) ListKeyframes(ctx context.Context, filter models.KeyframeFilter, page, perPage int) ([]models.Keyframe, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 50
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	where, args := filterClause(filter)

	start := time.Now()
	var total int
	err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM keyframes"+where, args...).Scan(&total)
	if err != nil {
		metrics.RecordDBQuery("count", "keyframes", time.Since(start), err)
		return nil, 0, fmt.Errorf("failed to count keyframes: %w", err)
	}

	query := "SELECT " + keyframeColumns + " FROM keyframes" + where + " ORDER BY db_idx LIMIT ? OFFSET ?"
	args = append(args, perPage, (page-1)*perPage)
	keyframes, err := db.queryKeyframes(ctx, query, args...)
	metrics.RecordDBQuery("list", "keyframes", time.Since(start), err)
	if err != nil {
		return nil, 0, err
	}
	return keyframes, total, nil
}

func filterClause(filter models.KeyframeFilter) (string, []any) {
	if filter.IsZero() {
		return "", nil
	}
	after := filter.After
	if after == "" {
		after = "00:00:00"
	}
	clauses := []string{"timestamp_sec > ?"}
	args := []any{models.ParseTimestamp(after).Seconds()}
	if filter.VideoID != "" {
		clauses = append(clauses, "video_id = ?")
		args = append(args, filter.VideoID)
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// Count returns the number of keyframes in the catalog.
func (db *DB) Count(ctx context.Context) (int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var n int
	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM keyframes").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count keyframes: %w", err)
	}
	return n, nil
}

func (db *DB) queryKeyframes(ctx context.Context, query string, args ...any) ([]models.Keyframe, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query keyframes: %w", err)
	}
	defer closeWithLog(rows, "rows")

	keyframes := []models.Keyframe{}
	for rows.Next() {
		var kf models.Keyframe
		if err := rows.Scan(&kf.DBIdx, &kf.FrameID, &kf.VideoID, &kf.FramePath, &kf.Timestamp, &kf.Caption); err != nil {
			return nil, fmt.Errorf("failed to scan keyframe: %w", err)
		}
		keyframes = append(keyframes, kf)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate keyframes: %w", err)
	}
	return keyframes, nil
}
