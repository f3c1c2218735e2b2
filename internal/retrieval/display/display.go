// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

// Package display renders ranked lists for presentation: grouped by video
// or in plain ranking order, then paginated.
package display

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/tomtom215/framescout/internal/models"
	"github.com/tomtom215/framescout/internal/retrieval"
)

// Option selects how results are laid out.
type Option string

const (
	// GroupByVideo clusters frames of the same video, best video first.
	GroupByVideo Option = "group_by_videoid"
	// SortByFrameIndex keeps the ranking order.
	SortByFrameIndex Option = "sort_by_frame_index"
)

// DefaultPerPage is the page size when none is given.
const DefaultPerPage = 50

// ErrUnsupportedOption is returned for an unknown display option.
var ErrUnsupportedOption = errors.New("unsupported display option")

// ParseOption validates s. An empty string selects SortByFrameIndex.
func ParseOption(s string) (Option, error) {
	switch Option(s) {
	case "":
		return SortByFrameIndex, nil
	case GroupByVideo, SortByFrameIndex:
		return Option(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedOption, s)
	}
}

// VideoGroup is the frames of one video with the video's aggregate score.
type VideoGroup struct {
	VideoID string
	Score   float64
	Frames  []models.FrameResult
}

// Render lays list out according to opt.
func Render(opt Option, list retrieval.RankedList, catalog map[int64]models.Keyframe, higherIsBetter bool) ([]models.FrameResult, error) {
	switch opt {
	case GroupByVideo:
		return Flatten(GroupByVideoID(list, catalog, higherIsBetter)), nil
	case SortByFrameIndex:
		return RankingOrder(list, catalog), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedOption, opt)
	}
}

// GroupByVideoID groups hits by video and ranks the videos.
//
// With k the list length and pos the 1-based rank of a frame, a video's
// score is the mean of ((k-pos)/k)*score over its frames, multiplied by
// log2(n+1) when higher scores are better, where n is its frame count.
// When lower scores are better the score is -(mean/log2(n+1)) and videos
// sort ascending. Frames inside a video sort by score in the same direction.
// Hits without catalog metadata are skipped.
func GroupByVideoID(list retrieval.RankedList, catalog map[int64]models.Keyframe, higherIsBetter bool) []VideoGroup {
	k := float64(list.Len())
	index := make(map[string]int)
	var groups []VideoGroup
	var weighted [][]float64

	for i, c := range list.Items {
		kf, ok := catalog[c.ID]
		if !ok {
			continue
		}
		g, ok := index[kf.VideoID]
		if !ok {
			g = len(groups)
			index[kf.VideoID] = g
			groups = append(groups, VideoGroup{VideoID: kf.VideoID})
			weighted = append(weighted, nil)
		}
		groups[g].Frames = append(groups[g].Frames, frameResult(&kf, c.Score))
		weighted[g] = append(weighted[g], ((k-float64(i+1))/k)*c.Score)
	}

	for g := range groups {
		groups[g].Score = videoScore(weighted[g], higherIsBetter)
		frames := groups[g].Frames
		sort.SliceStable(frames, func(i, j int) bool {
			if higherIsBetter {
				return frames[i].Score > frames[j].Score
			}
			return frames[i].Score < frames[j].Score
		})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if higherIsBetter {
			return groups[i].Score > groups[j].Score
		}
		return groups[i].Score < groups[j].Score
	})
	return groups
}

func videoScore(weighted []float64, higherIsBetter bool) float64 {
	n := float64(len(weighted))
	var sum float64
	for _, w := range weighted {
		sum += w
	}
	avg := sum / n
	if higherIsBetter {
		return avg * math.Log2(n+1)
	}
	return -(avg / math.Log2(n+1))
}

// Flatten concatenates the frames of groups in group order.
func Flatten(groups []VideoGroup) []models.FrameResult {
	out := []models.FrameResult{}
	for _, g := range groups {
		out = append(out, g.Frames...)
	}
	return out
}

// RankingOrder renders hits in ranking order, skipping hits without
// catalog metadata.
func RankingOrder(list retrieval.RankedList, catalog map[int64]models.Keyframe) []models.FrameResult {
	out := make([]models.FrameResult, 0, list.Len())
	for _, c := range list.Items {
		kf, ok := catalog[c.ID]
		if !ok {
			continue
		}
		out = append(out, frameResult(&kf, c.Score))
	}
	return out
}

func frameResult(kf *models.Keyframe, score float64) models.FrameResult {
	return models.FrameResult{
		VideoID:   kf.VideoID,
		DBIdx:     kf.DBIdx,
		FrameID:   kf.FrameID,
		Timestamp: kf.Timestamp,
		ImagePath: models.WebPPath(kf.FramePath),
		Score:     score,
	}
}

// Paginate returns the requested page of items. perPage <= 0 selects
// DefaultPerPage and page is clamped to [1, TotalPages].
func Paginate[T any](items []T, page, perPage int) ([]T, models.PageInfo) {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	total := len(items)
	totalPages := (total + perPage - 1) / perPage
	page = max(1, min(page, totalPages))

	info := models.PageInfo{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
	start := (page - 1) * perPage
	if start >= total {
		return []T{}, info
	}
	end := min(start+perPage, total)
	return items[start:end], info
}
