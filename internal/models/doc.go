// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

/*
Package models defines the data structures shared by the Framescout HTTP API
and the keyframe catalog.

Key Components:

  - Keyframe: catalog entry of one indexed frame (db_idx, video, timestamp, path)
  - KeyframeFilter: video and offset filter for catalog listings
  - SearchRequest / SearchResponse: one interactive search turn
  - FeedbackRequest / CommitResponse: like, dislike and reset reactions
  - APIResponse: standardized response wrapper with Metadata and APIError

Timestamps:

Keyframe offsets use "HH:MM:SS" with optional fractional seconds. Comparisons
go through ParseTimestamp so "0:01:05" and "00:01:05.000" order identically.
Malformed timestamps parse as zero.

Validation:

Request structs carry go-playground/validator tags. The "timestamp" and
"indexname" tags are registered by the validation package.
*/
package models
