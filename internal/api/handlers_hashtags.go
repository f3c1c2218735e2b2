// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package api

import (
	"net/http"

	"github.com/tomtom215/framescout/internal/models"
	"github.com/tomtom215/framescout/internal/retrieval/hashtag"
)

// Hashtags generates hashtags from free query text.
func (h *Handler) Hashtags(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	var req models.HashtagRequest
	if apiErr := decodeJSON(w, r, &req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	tags := hashtag.Generate(req.QueryText)
	if tags == nil {
		tags = []string{}
	}
	respondSuccess(w, models.HashtagResponse{Hashtags: tags}, models.Metadata{})
}
