// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package api

import (
	"net/http"

	"github.com/tomtom215/framescout/internal/models"
	"github.com/tomtom215/framescout/internal/retrieval/display"
)

// Keyframes lists the catalog, optionally restricted to one video and to
// frames after a timestamp.
//
// @Summary Browse keyframes
// @Tags Catalog
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param video_ID query string false "Video id"
// @Param timestamp query string false "Only frames after HH:MM:SS"
// @Success 200 {object} models.APIResponse{data=models.KeyframePage}
// @Router /keyframes [get]
func (h *Handler) Keyframes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	q := models.KeyframeQuery{
		Page:      max(1, getIntParam(r, "page", 1)),
		VideoID:   r.URL.Query().Get("video_ID"),
		Timestamp: r.URL.Query().Get("timestamp"),
	}
	if apiErr := validateRequest(&q); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	perPage := display.DefaultPerPage
	rows, total, err := h.catalog.ListKeyframes(r.Context(), q.Filter(), q.Page, perPage)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "QUERY_FAILED", "Failed to list keyframes", err)
		return
	}
	if rows == nil {
		rows = []models.Keyframe{}
	}

	respondSuccess(w, models.KeyframePage{
		Keyframes: rows,
		Page: models.PageInfo{
			Page:       q.Page,
			PerPage:    perPage,
			Total:      total,
			TotalPages: (total + perPage - 1) / perPage,
		},
	}, models.Metadata{})
}
