// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package models

// SearchRequest is the body of POST /api/v1/search.
type SearchRequest struct {
	QueryText       string   `json:"query_text" validate:"max=2000"`
	Hashtags        []string `json:"hashtags" validate:"max=50,dive,min=1,max=100"`
	HiddenHashtags  string   `json:"hidden_hashtags" validate:"max=5000"`
	DatabaseName    string   `json:"database_name" validate:"omitempty,indexname"`
	K               int      `json:"k" validate:"omitempty,min=1,max=10000"`
	DisplayOption   string   `json:"display_option" validate:"omitempty,oneof=group_by_videoid sort_by_frame_index"`
	FullExploration bool     `json:"full_exploration"`
	Page            int      `json:"page" validate:"omitempty,min=1"`
	PerPage         int      `json:"per_page" validate:"omitempty,min=1,max=500"`
}

// FrameResult is one rendered search hit.
type FrameResult struct {
	VideoID   string  `json:"video_ID"`
	DBIdx     int64   `json:"db_idx"`
	FrameID   string  `json:"idx"`
	Timestamp string  `json:"timestamp"`
	ImagePath string  `json:"image_path"`
	Score     float64 `json:"score"`
}

// HiddenRanking carries the full ranking behind a rendered page so clients
// can reference items across pages.
type HiddenRanking struct {
	IDs    []int64   `json:"ids"`
	Scores []float64 `json:"scores"`
}

// SearchResponse is the data of a search turn.
type SearchResponse struct {
	SessionID string        `json:"session_id"`
	Mode      string        `json:"mode"`
	Hashtags  []string      `json:"hashtags,omitempty"`
	Results   []FrameResult `json:"results"`
	Page      PageInfo      `json:"page"`
	Hidden    HiddenRanking `json:"hidden"`
}

// FeedbackRequest is the body of POST /api/v1/feedback.
type FeedbackRequest struct {
	DBIdx  *int64 `json:"db_idx" validate:"required,min=0"`
	Action string `json:"action" validate:"max=32"`
}

// FeedbackResponse acknowledges a submitted reaction.
type FeedbackResponse struct {
	Message string `json:"message"`
	DBIdx   int64  `json:"db_idx"`
	Action  string `json:"action"`
}

// FeedbackEntry is one committed reaction on the wire.
type FeedbackEntry struct {
	DBIdx  int64  `json:"db_idx"`
	Action string `json:"action"`
}

// CommitResponse lists a session's committed reactions.
type CommitResponse struct {
	Message  string          `json:"message"`
	Feedback []FeedbackEntry `json:"feedback"`
}

// HashtagRequest is the body of POST /api/v1/hashtags.
type HashtagRequest struct {
	QueryText string `json:"query_text" validate:"max=2000"`
}

// HashtagResponse lists generated hashtags.
type HashtagResponse struct {
	Hashtags []string `json:"hashtags"`
}

// KeyframeQuery holds the query parameters of GET /api/v1/keyframes.
type KeyframeQuery struct {
	Page      int    `json:"page" validate:"min=1"`
	VideoID   string `json:"video_ID" validate:"max=128"`
	Timestamp string `json:"timestamp" validate:"omitempty,timestamp"`
}

// Filter returns the catalog filter for q.
func (q KeyframeQuery) Filter() KeyframeFilter {
	return KeyframeFilter{VideoID: q.VideoID, After: q.Timestamp}
}

// KeyframePage is one page of the keyframe catalog.
type KeyframePage struct {
	Keyframes []Keyframe `json:"keyframes"`
	Page      PageInfo   `json:"page"`
}

// HealthResponse reports component readiness.
type HealthResponse struct {
	Status   string            `json:"status"`
	Version  string            `json:"version"`
	Indexes  []string          `json:"indexes"`
	Sessions int               `json:"sessions"`
	Checks   map[string]string `json:"checks"`
}
