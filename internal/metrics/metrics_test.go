// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/api/v1/search", "200"))

	RecordAPIRequest("POST", "/api/v1/search", "200", 15*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/api/v1/search", "200"))
	if after-before != 1 {
		t.Errorf("api_requests_total delta = %f, want 1", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("api_active_requests = %f, want %f", got, before+1)
	}

	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("api_active_requests = %f, want %f", got, before)
	}
}

func TestRecordSearch(t *testing.T) {
	tests := []struct {
		name      string
		mode      string
		err       error
		wantError float64
	}{
		{"successful fusion", "fusion", nil, 0},
		{"failed vector search", "vector", errors.New("index unavailable"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(SearchErrors.WithLabelValues(tt.mode))
			RecordSearch(tt.mode, 5*time.Millisecond, tt.err)
			after := testutil.ToFloat64(SearchErrors.WithLabelValues(tt.mode))
			if after-before != tt.wantError {
				t.Errorf("retrieval_search_errors_total delta = %f, want %f", after-before, tt.wantError)
			}
		})
	}
}

func TestRecordBaseCache(t *testing.T) {
	hits := testutil.ToFloat64(BaseCacheLookups.WithLabelValues("hit"))
	misses := testutil.ToFloat64(BaseCacheLookups.WithLabelValues("miss"))

	RecordBaseCache(true)
	RecordBaseCache(false)
	RecordBaseCache(false)

	if got := testutil.ToFloat64(BaseCacheLookups.WithLabelValues("hit")) - hits; got != 1 {
		t.Errorf("hit delta = %f, want 1", got)
	}
	if got := testutil.ToFloat64(BaseCacheLookups.WithLabelValues("miss")) - misses; got != 2 {
		t.Errorf("miss delta = %f, want 2", got)
	}
}

func TestUpdateFeedbackSessions(t *testing.T) {
	evictedBefore := testutil.ToFloat64(FeedbackEvictions)

	UpdateFeedbackSessions(50, 50)

	if got := testutil.ToFloat64(FeedbackSessions); got != 50 {
		t.Errorf("feedback_sessions = %f, want 50", got)
	}
	if got := testutil.ToFloat64(FeedbackEvictions) - evictedBefore; got != 50 {
		t.Errorf("feedback_sessions_evicted_total delta = %f, want 50", got)
	}

	UpdateFeedbackSessions(51, 0)
	if got := testutil.ToFloat64(FeedbackEvictions) - evictedBefore; got != 50 {
		t.Errorf("evictions changed without eviction: delta = %f, want 50", got)
	}
}

func TestRecordEventPublished(t *testing.T) {
	ok := testutil.ToFloat64(EventsPublished.WithLabelValues("success"))
	failed := testutil.ToFloat64(EventsPublished.WithLabelValues("failure"))

	RecordEventPublished(nil)
	RecordEventPublished(errors.New("nats down"))

	if got := testutil.ToFloat64(EventsPublished.WithLabelValues("success")) - ok; got != 1 {
		t.Errorf("success delta = %f, want 1", got)
	}
	if got := testutil.ToFloat64(EventsPublished.WithLabelValues("failure")) - failed; got != 1 {
		t.Errorf("failure delta = %f, want 1", got)
	}
}

func TestRecordDBQuery_TruncatesErrorLabel(t *testing.T) {
	long := errors.New("this is a very long error message that exceeds fifty characters and should be truncated")
	RecordDBQuery("SELECT", "keyframes", time.Millisecond, long)

	label := long.Error()[:50]
	if got := testutil.ToFloat64(DBQueryErrors.WithLabelValues("SELECT", "keyframes", label)); got < 1 {
		t.Errorf("duckdb_query_errors_total{error_type=%q} = %f, want >= 1", label, got)
	}
}

// histogramSnapshot reads the sample count and sum of a histogram.
func histogramSnapshot(t *testing.T, h interface{ Write(*dto.Metric) error }) (uint64, float64) {
	t.Helper()
	var m dto.Metric
	if err := h.Write(&m); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return m.GetHistogram().GetSampleCount(), m.GetHistogram().GetSampleSum()
}

func TestRecordGraphIterations(t *testing.T) {
	count, sum := histogramSnapshot(t, GraphIterations)
	RecordGraphIterations(7)
	gotCount, gotSum := histogramSnapshot(t, GraphIterations)

	if gotCount-count != 1 {
		t.Errorf("sample count delta = %d, want 1", gotCount-count)
	}
	if gotSum-sum != 7 {
		t.Errorf("sample sum delta = %f, want 7", gotSum-sum)
	}
}
