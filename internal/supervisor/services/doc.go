// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

// Package services adapts Framescout's long-running components to the
// suture.Service interface. Every wrapper depends only on a small
// lifecycle interface so it can be tested with fakes.
package services
