// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/tomtom215/framescout/internal/logging"
)

const (
	// SessionHeader carries the retrieval session id.
	SessionHeader = "X-Session-ID"
	// SessionCookie is the cookie fallback for browsers.
	SessionCookie = "session_id"

	maxIDLength = 128
)

// Session identifies the retrieval session of a request.
//
// The id is taken from the X-Session-ID header, then the session_id cookie.
// Missing or malformed ids are replaced by a new UUID. The id is returned
// in the X-Session-ID header, refreshed in the cookie and stored in the
// request context.
func Session(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(SessionHeader)
		if id == "" {
			if c, err := r.Cookie(SessionCookie); err == nil {
				id = c.Value
			}
		}
		if !validSessionID(id) {
			id = uuid.New().String()
		}

		w.Header().Set(SessionHeader, id)
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		next(w, r.WithContext(logging.ContextWithSessionID(r.Context(), id)))
	}
}

// SessionID returns the session id stored by Session, or "".
func SessionID(ctx context.Context) string {
	return logging.SessionIDFromContext(ctx)
}

// validSessionID accepts 1 to 128 characters from [A-Za-z0-9_-].
func validSessionID(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}
