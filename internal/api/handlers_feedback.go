// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/framescout/internal/middleware"
	"github.com/tomtom215/framescout/internal/models"
	"github.com/tomtom215/framescout/internal/retrieval"
	"github.com/tomtom215/framescout/internal/retrieval/feedback"
)

// feedbackMessage acknowledges the raw action the client sent. Values
// other than like, dislike and neutral are stored as neutral.
func feedbackMessage(action string) string {
	switch action {
	case "like":
		return "You liked this"
	case "dislike":
		return "You disliked this"
	case "neutral":
		return "You reset your feedback"
	default:
		return "Unknown action"
	}
}

// SubmitFeedback stages a reaction in the caller's session. Staged
// reactions affect ranking only after CommitFeedback.
//
// @Summary Stage feedback
// @Tags Feedback
// @Accept json
// @Produce json
// @Param request body models.FeedbackRequest true "Reaction"
// @Success 200 {object} models.APIResponse{data=models.FeedbackResponse}
// @Router /feedback [post]
func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	var req models.FeedbackRequest
	if apiErr := decodeJSON(w, r, &req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	action := retrieval.ParseAction(req.Action)
	if err := h.feedback.Submit(middleware.SessionID(r.Context()), *req.DBIdx, action); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	respondSuccess(w, models.FeedbackResponse{
		Message: feedbackMessage(req.Action),
		DBIdx:   *req.DBIdx,
		Action:  action.String(),
	}, models.Metadata{})
}

// CommitFeedback merges the session's staged reactions into its committed
// feedback and returns the committed set.
//
// @Summary Commit feedback
// @Tags Feedback
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.CommitResponse}
// @Router /feedback/commit [post]
func (h *Handler) CommitFeedback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return
	}

	fb, err := h.feedback.Commit(r.Context(), middleware.SessionID(r.Context()))
	switch {
	case errors.Is(err, feedback.ErrNoFeedback):
		respondSuccess(w, models.CommitResponse{
			Message:  "No feedback to submit",
			Feedback: []models.FeedbackEntry{},
		}, models.Metadata{})
		return
	case err != nil:
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	respondSuccess(w, models.CommitResponse{
		Message:  "Feedback submitted successfully",
		Feedback: feedbackEntries(fb),
	}, models.Metadata{})
}

func feedbackEntries(fb retrieval.Feedback) []models.FeedbackEntry {
	entries := make([]models.FeedbackEntry, len(fb))
	for i, e := range fb {
		entries[i] = models.FeedbackEntry{DBIdx: e.ItemID, Action: e.Action.String()}
	}
	return entries
}
