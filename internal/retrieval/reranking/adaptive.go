// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package reranking

import (
	"math"
)

// AdaptiveExplorationK decides whether a ranking is uncertain enough to
// warrant a wider exploration and, if so, how wide.
//
// The expansion ratio depends on the score distribution:
//   - tightly clustered low scores (std < 0.1, mean < 0.5) expand aggressively (0.9)
//   - widely spread scores (std > 0.3) expand moderately (0.5)
//   - otherwise the ratio is 1 - mean
//
// The proposed width is max(k+1, min(maxExpansion*k, ratio*maxExpansion*k)).
// It is accepted only when it exceeds k by at least max(1, k/10); otherwise
// k is returned unchanged with expand=false.
func AdaptiveExplorationK(scores []float64, k int, maxExpansion float64) (expand bool, newK int) {
	if len(scores) == 0 || k <= 0 {
		return false, max(1, k)
	}

	mean, std := meanStd(scores)

	var ratio float64
	switch {
	case std < 0.1 && mean < 0.5:
		ratio = 0.9
	case std > 0.3:
		ratio = 0.5
	default:
		ratio = 1 - mean
	}

	limit := maxExpansion * float64(k)
	proposed := max(k+1, int(math.Min(limit, ratio*limit)))
	if proposed > k+max(1, int(0.1*float64(k))) {
		return true, proposed
	}
	return false, k
}

// meanStd returns the mean and population standard deviation of values.
func meanStd(values []float64) (mean, std float64) {
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	for _, v := range values {
		d := v - mean
		std += d * d
	}
	std = math.Sqrt(std / float64(len(values)))
	return mean, std
}
