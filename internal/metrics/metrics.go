// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus Metrics Integration for Production Observability
// This package provides instrumentation for:
// - API endpoint latency and throughput
// - Retrieval pipeline (search modes, graph exploration, refinement)
// - Session feedback store
// - Remote index/encoder circuit breakers
// - Catalog (DuckDB) queries and feedback events

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}, // Optimized for API latency
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Retrieval Metrics
	SearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "retrieval_search_duration_seconds",
			Help:    "Duration of base ranking computation by retrieval mode",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"mode"}, // "vector", "graph", "fusion"
	)

	SearchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retrieval_search_errors_total",
			Help: "Total number of failed base ranking computations",
		},
		[]string{"mode"},
	)

	BaseCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retrieval_base_cache_lookups_total",
			Help: "Base ranking cache lookups",
		},
		[]string{"result"}, // "hit", "miss"
	)

	RefineTurns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retrieval_turns_total",
			Help: "Total number of session turns by refinement mode",
		},
		[]string{"mode"}, // "base", "immediate", "exploration"
	)

	GraphIterations = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "retrieval_graph_iterations",
			Help:    "Frontier entries processed per graph exploration",
			Buckets: prometheus.ExponentialBuckets(10, 4, 7), // 10 .. 40960
		},
	)

	ExpansionSeedFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "retrieval_expansion_seed_failures_total",
			Help: "Exploration seeds skipped because their secondary query failed",
		},
	)

	// Feedback Metrics
	FeedbackSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_submissions_total",
			Help: "Total number of feedback submissions by action",
		},
		[]string{"action"},
	)

	FeedbackCommits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feedback_commits_total",
			Help: "Total number of feedback commits",
		},
	)

	FeedbackSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "feedback_sessions",
			Help: "Current number of sessions in the feedback store",
		},
	)

	FeedbackEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feedback_sessions_evicted_total",
			Help: "Total number of sessions evicted from the feedback store",
		},
	)

	// Event Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_events_published_total",
			Help: "Feedback commit events published",
		},
		[]string{"result"}, // "success", "failure"
	)

	EventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_events_consumed_total",
			Help: "Feedback commit events consumed by the catalog sink",
		},
		[]string{"result"},
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordSearch records a base ranking computation.
func RecordSearch(mode string, duration time.Duration, err error) {
	SearchDuration.WithLabelValues(mode).Observe(duration.Seconds())
	if err != nil {
		SearchErrors.WithLabelValues(mode).Inc()
	}
}

// RecordBaseCache records a base ranking cache lookup.
func RecordBaseCache(hit bool) {
	if hit {
		BaseCacheLookups.WithLabelValues("hit").Inc()
		return
	}
	BaseCacheLookups.WithLabelValues("miss").Inc()
}

// RecordTurn records a session turn by refinement mode.
func RecordTurn(mode string) {
	RefineTurns.WithLabelValues(mode).Inc()
}

// RecordGraphIterations records the work done by one graph exploration.
func RecordGraphIterations(iterations int) {
	GraphIterations.Observe(float64(iterations))
}

// RecordExpansionSeedFailure counts a skipped exploration seed.
func RecordExpansionSeedFailure() {
	ExpansionSeedFailures.Inc()
}

// RecordFeedbackSubmission counts a feedback submission.
func RecordFeedbackSubmission(action string) {
	FeedbackSubmissions.WithLabelValues(action).Inc()
}

// RecordFeedbackCommit counts a feedback commit.
func RecordFeedbackCommit() {
	FeedbackCommits.Inc()
}

// UpdateFeedbackSessions sets the session gauge and counts evictions.
func UpdateFeedbackSessions(sessions, evicted int) {
	FeedbackSessions.Set(float64(sessions))
	if evicted > 0 {
		FeedbackEvictions.Add(float64(evicted))
	}
}

// RecordEventPublished records the outcome of a feedback event publish.
func RecordEventPublished(err error) {
	EventsPublished.WithLabelValues(resultLabel(err)).Inc()
}

// RecordEventConsumed records the outcome of a feedback event delivery.
func RecordEventConsumed(err error) {
	EventsConsumed.WithLabelValues(resultLabel(err)).Inc()
}

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		// Truncate long error messages
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

func resultLabel(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
