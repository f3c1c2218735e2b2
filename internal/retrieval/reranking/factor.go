// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package reranking

import (
	"math"

	"github.com/tomtom215/framescout/internal/retrieval"
)

// FeedbackFactor summarizes the session's recent feedback trend as a scalar
// in roughly [-1, 1].
//
// The window holds the signed values (+1 like, -1 dislike, 0 otherwise) of
// the most recent cfg.WindowSize entries. The result blends the window's
// plain mean with a recency-weighted mean in which the i-th most recent value
// is weighted by DecayFactor^i:
//
//	factor = (1-r)*mean + r*sum(f_i*d^i)/sum(d^i)
//
// An empty feedback set yields 0.
func FeedbackFactor(fb retrieval.Feedback, cfg retrieval.FeedbackConfig) float64 {
	window := fb
	if cfg.WindowSize > 0 && len(window) > cfg.WindowSize {
		window = window[len(window)-cfg.WindowSize:]
	}
	if len(window) == 0 {
		return 0
	}

	var sum, weighted, weights float64
	for i := 0; i < len(window); i++ {
		value := window[len(window)-1-i].Action.Sign()
		w := math.Pow(cfg.DecayFactor, float64(i))
		sum += value
		weighted += value * w
		weights += w
	}

	simple := sum / float64(len(window))
	timeWeighted := 0.0
	if weights > 0 {
		timeWeighted = weighted / weights
	}
	return (1-cfg.TimeWeightRatio)*simple + cfg.TimeWeightRatio*timeWeighted
}

// applyFactor adds the feedback factor to liked or disliked candidates of
// list, depending on the factor's sign, and re-sorts it.
func applyFactor(list retrieval.RankedList, fb retrieval.Feedback, factor float64) {
	if factor == 0 {
		return
	}
	signs := fb.SignVector(list)
	for i := range list.Items {
		switch {
		case factor < 0 && signs[i] < 0:
			list.Items[i].Score += factor
		case factor > 0 && signs[i] > 0:
			list.Items[i].Score += factor
		}
	}
	list.SortByScore()
}
