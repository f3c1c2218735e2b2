// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

// Package middleware provides net/http middleware shared by the API router:
// Prometheus request instrumentation, request id propagation and retrieval
// session identification.
//
// The middleware use the http.HandlerFunc form; the api package adapts them
// to chi with chiMiddleware.
package middleware
