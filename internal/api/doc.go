// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

/*
Package api provides the Framescout HTTP surface.

Routes (all JSON, wrapped in models.APIResponse):

	POST /api/v1/search               interactive search turn
	GET  /api/v1/search/item/{db_idx} item-to-item visual search
	POST /api/v1/feedback             stage a like, dislike or reset
	POST /api/v1/feedback/commit      commit staged feedback
	POST /api/v1/hashtags             generate hashtags from query text
	GET  /api/v1/keyframes            browse the keyframe catalog
	GET  /api/v1/health               component readiness
	GET  /metrics                     Prometheus metrics

Middleware Stack:

Global: request id, real IP, panic recovery, CORS. The /api/v1 group adds
rate limiting, security headers, Prometheus request metrics and the
retrieval session middleware, which resolves the session id from the
X-Session-ID header or session_id cookie and creates one when absent.

Errors:

	VALIDATION_ERROR     400  malformed body or parameters, unknown index
	NOT_FOUND            404  unknown route or item without an embedding
	METHOD_NOT_ALLOWED   405  wrong method for a route
	RATE_LIMIT_EXCEEDED  429  per-IP limit reached
	SEARCH_FAILED        500  ranking failed
	UNAVAILABLE          503  vector index or text encoder unreachable
*/
package api
