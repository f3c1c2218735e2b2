// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/framescout/internal/middleware"
	"github.com/tomtom215/framescout/internal/models"
	"github.com/tomtom215/framescout/internal/retrieval"
	"github.com/tomtom215/framescout/internal/retrieval/display"
	"github.com/tomtom215/framescout/internal/retrieval/engine"
	"github.com/tomtom215/framescout/internal/retrieval/hashtag"
)

// maxSearchHashtags bounds the merged hashtag list of a search request.
const maxSearchHashtags = 50

// Search runs one turn of the caller's session.
//
// @Summary Interactive search turn
// @Description Ranks keyframes for query text and hashtags, refined by the session's committed feedback
// @Tags Search
// @Accept json
// @Produce json
// @Param request body models.SearchRequest true "Search request"
// @Success 200 {object} models.APIResponse{data=models.SearchResponse}
// @Failure 400 {object} models.APIResponse "Invalid request"
// @Failure 503 {object} models.APIResponse "Vector index or encoder unavailable"
// @Router /search [post]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	var req models.SearchRequest
	if apiErr := decodeJSON(w, r, &req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}
	opt, err := display.ParseOption(req.DisplayOption)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	tags := mergeHashtags(req.Hashtags, hashtag.ParseList(req.HiddenHashtags))
	if len(tags) > maxSearchHashtags {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"At most "+strconv.Itoa(maxSearchHashtags)+" hashtags are allowed", nil)
		return
	}

	start := time.Now()
	session := middleware.SessionID(r.Context())
	turn, err := h.engine.Turn(r.Context(), session, engine.Query{
		Text:     req.QueryText,
		Hashtags: tags,
		Index:    req.DatabaseName,
		K:        req.K,
	}, engine.TurnOptions{FullExploration: req.FullExploration})
	if err != nil {
		respondRetrievalError(w, err)
		return
	}

	resp, err := h.render(r.Context(), turn.Ranking, opt, req.Page, req.PerPage)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "SEARCH_FAILED", "Failed to load keyframes", err)
		return
	}
	resp.SessionID = session
	resp.Mode = string(turn.Mode)
	resp.Hashtags = tags

	respondSuccess(w, resp, models.Metadata{
		QueryTimeMS: time.Since(start).Milliseconds(),
		Cached:      turn.Cached,
		Mode:        string(turn.Mode),
	})
}

// mergeHashtags appends the hidden hashtags to the explicit ones, keeping
// first occurrences.
func mergeHashtags(explicit, hidden []string) []string {
	out := make([]string, 0, len(explicit)+len(hidden))
	seen := make(map[string]struct{}, len(explicit)+len(hidden))
	for _, list := range [][]string{explicit, hidden} {
		for _, tag := range list {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	return out
}

// SearchByItem ranks keyframes visually similar to the db_idx path item.
//
// @Summary Item-to-item search
// @Tags Search
// @Produce json
// @Param db_idx path int true "Item index"
// @Param database_name query string false "Vector index name"
// @Success 200 {object} models.APIResponse{data=models.SearchResponse}
// @Failure 404 {object} models.APIResponse "Item has no stored embedding"
// @Router /search/item/{db_idx} [get]
func (h *Handler) SearchByItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	itemID, err := strconv.ParseInt(chi.URLParam(r, "db_idx"), 10, 64)
	if err != nil || itemID < 0 {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "db_idx must be a non-negative integer", nil)
		return
	}
	indexName := r.URL.Query().Get("database_name")
	if indexName != "" {
		if apiErr := validateRequest(&struct {
			DatabaseName string `json:"database_name" validate:"indexname"`
		}{indexName}); apiErr != nil {
			respondAPIError(w, http.StatusBadRequest, apiErr, nil)
			return
		}
	}

	start := time.Now()
	ranking, err := h.engine.SearchByItem(r.Context(), itemID, indexName, engine.ItemSearchK)
	if err != nil {
		respondRetrievalError(w, err)
		return
	}

	resp, err := h.render(r.Context(), ranking, display.SortByFrameIndex, getIntParam(r, "page", 1), display.DefaultPerPage)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "SEARCH_FAILED", "Failed to load keyframes", err)
		return
	}
	resp.SessionID = middleware.SessionID(r.Context())
	resp.Mode = "item"

	respondSuccess(w, resp, models.Metadata{
		QueryTimeMS: time.Since(start).Milliseconds(),
		Mode:        "item",
	})
}

// render resolves ranking against the catalog, lays it out with opt and
// returns the requested page along with the full hidden ranking.
func (h *Handler) render(ctx context.Context, ranking retrieval.RankedList, opt display.Option, page, perPage int) (models.SearchResponse, error) {
	keyframes, err := h.catalog.Get(ctx, ranking.IDs())
	if err != nil {
		return models.SearchResponse{}, err
	}
	results, err := display.Render(opt, ranking, keyframes, ranking.Order == retrieval.Descending)
	if err != nil {
		return models.SearchResponse{}, err
	}
	pageItems, info := display.Paginate(results, page, perPage)

	return models.SearchResponse{
		Results: pageItems,
		Page:    info,
		Hidden: models.HiddenRanking{
			IDs:    ranking.IDs(),
			Scores: ranking.Scores(),
		},
	}, nil
}
