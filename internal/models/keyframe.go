// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package models

import (
	"strconv"
	"strings"
	"time"
)

// Keyframe is the catalog entry of one indexed video frame.
type Keyframe struct {
	DBIdx     int64  `json:"db_idx"`
	FrameID   string `json:"frame_ID"`
	VideoID   string `json:"video_ID"`
	FramePath string `json:"frame_path"`
	Timestamp string `json:"timestamp"`
	Caption   string `json:"caption,omitempty"`
}

// Offset returns the keyframe's position in its video.
func (k *Keyframe) Offset() time.Duration {
	return ParseTimestamp(k.Timestamp)
}

// KeyframeFilter narrows a catalog listing. The zero value matches everything.
type KeyframeFilter struct {
	VideoID string
	// After keeps frames strictly later than this HH:MM:SS[.fff] offset.
	After string
}

// IsZero reports whether the filter matches all keyframes.
func (f KeyframeFilter) IsZero() bool {
	return f.VideoID == "" && f.After == ""
}

// ParseTimestamp converts "HH:MM:SS" with optional fractional seconds to a
// duration. Malformed input yields 0.
func ParseTimestamp(s string) time.Duration {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	seconds, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0
	}
	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds*float64(time.Second))
}

// WebPPath returns path with its .jpg extension served as .webp.
func WebPPath(path string) string {
	return strings.ReplaceAll(path, ".jpg", ".webp")
}
