// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/framescout/internal/models"
)

const healthCheckTimeout = 2 * time.Second

// Health reports catalog connectivity, registered indexes and the number
// of live sessions. A failed catalog ping degrades the status but still
// answers 200 so probes can read the details.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	checks := map[string]string{"catalog": "ok"}
	status := "healthy"

	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()
	if h.catalog == nil {
		checks["catalog"] = "disabled"
	} else if err := h.catalog.Ping(ctx); err != nil {
		checks["catalog"] = "unreachable"
		status = "degraded"
	}

	indexes := h.engine.Indexes()
	if len(indexes) == 0 {
		checks["indexes"] = "none"
		status = "degraded"
	} else {
		checks["indexes"] = "ok"
	}

	respondSuccess(w, models.HealthResponse{
		Status:   status,
		Version:  h.version,
		Indexes:  indexes,
		Sessions: h.feedback.Len(),
		Checks:   checks,
	}, models.Metadata{})
}
