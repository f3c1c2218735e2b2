// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/framescout/internal/models"
	"github.com/tomtom215/framescout/internal/retrieval"
)

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"line\nbreak", "line\\x0abreak"},
		{"tab\there", "tab\\x09here"},
		{"del\x7f", "del\\x7f"},
	}
	for _, tt := range tests {
		if got := sanitizeLogValue(tt.in); got != tt.want {
			t.Errorf("sanitizeLogValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenerateETag(t *testing.T) {
	t.Parallel()

	a := generateETag([]byte(`{"a":1}`))
	if a == "" {
		t.Fatal("generateETag() returned empty string")
	}
	if a != generateETag([]byte(`{"a":1}`)) {
		t.Error("generateETag() not deterministic")
	}
	if a == generateETag([]byte(`{"a":2}`)) {
		t.Error("generateETag() collided for different input")
	}
}

func TestRespondJSON_Headers(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	respondSuccess(w, map[string]int{"n": 1}, models.Metadata{})

	if got := w.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
	if w.Header().Get("ETag") == "" {
		t.Error("ETag not set")
	}
	var resp models.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "success" || resp.Metadata.Timestamp.IsZero() {
		t.Errorf("response = %+v", resp)
	}
}

func TestRespondRetrievalError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"unknown index", &retrieval.RetrievalError{Op: "lookup", Index: "x", Err: retrieval.ErrUnknownIndex}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"empty query", retrieval.ErrEmptyQuery, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"missing embedding", fmt.Errorf("item 9: %w", retrieval.ErrMissingEmbedding), http.StatusNotFound, "NOT_FOUND"},
		{"index down", &retrieval.RetrievalError{Op: "search", Index: "CLIP_v2", Err: errors.New("connection refused")}, http.StatusServiceUnavailable, "UNAVAILABLE"},
		{"unavailable sentinel", fmt.Errorf("turn: %w", retrieval.ErrIndexUnavailable), http.StatusServiceUnavailable, "UNAVAILABLE"},
		{"other", errors.New("boom"), http.StatusInternalServerError, "SEARCH_FAILED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := httptest.NewRecorder()
			respondRetrievalError(w, tt.err)
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
			var resp models.APIResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Error == nil || resp.Error.Code != tt.code {
				t.Errorf("error = %+v, want %s", resp.Error, tt.code)
			}
		})
	}
}

func TestGetIntParam(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query string
		want  int
	}{
		{"", 7},
		{"?page=3", 3},
		{"?page=abc", 7},
		{"?page=-2", -2},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)
		if got := getIntParam(r, "page", 7); got != tt.want {
			t.Errorf("getIntParam(%q) = %d, want %d", tt.query, got, tt.want)
		}
	}
}
