// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8090/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
  - api_active_requests: Requests in flight (gauge)

Retrieval Metrics:
  - retrieval_search_duration_seconds: Base ranking latency by mode (histogram)
  - retrieval_base_cache_lookups_total: Base ranking cache hits and misses
  - retrieval_turns_total: Session turns by refinement mode
  - retrieval_graph_iterations: Frontier entries processed per exploration
  - retrieval_expansion_seed_failures_total: Skipped exploration seeds

Feedback Metrics:
  - feedback_submissions_total, feedback_commits_total
  - feedback_sessions, feedback_sessions_evicted_total
  - feedback_events_published_total, feedback_events_consumed_total

Resilience and Storage:
  - circuit_breaker_state, circuit_breaker_requests_total,
    circuit_breaker_state_transitions_total
  - duckdb_query_duration_seconds, duckdb_query_errors_total

# Usage

Record helpers wrap the collectors so call sites stay one line:

	start := time.Now()
	list, err := engine.Search(ctx, q)
	metrics.RecordSearch(mode, time.Since(start), err)
*/
package metrics
