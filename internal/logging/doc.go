// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

// Package logging provides the process-wide zerolog logger for Framescout.
//
// Call Init once from main with the configured level and format; until then
// a JSON logger at info level writes to stderr. Components receive a
// zerolog.Logger and tag it with a "component" field:
//
//	logger := logging.WithComponent("feedback_store")
//	logger.Info().Str("session_id", id).Msg("Feedback committed")
//
// Request handlers log through Ctx, which adds the request and session ids
// that the API middleware stores in the request context:
//
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("Search failed")
//
// Two adapters route third-party logging into the same sink: NewSlogLogger
// for the suture supervisor (via sutureslog) and NewWatermillLogger for the
// feedback event router.
//
// Environment variables (read by the config package):
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: include caller file and line (default: false)
package logging
