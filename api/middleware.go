package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"InvoiceDesk/api/auth"
	"InvoiceDesk/api/constants"
)

type contextKey string

// SessionKey carries the caller's *auth.UserSession through the request
// context so handlers never read identity from anywhere else.
const SessionKey contextKey = "userSession"

// GetSessionFromCtx returns the validated session attached by
// SessionMiddleware, or nil when the request was let through unchecked.
func GetSessionFromCtx(ctx context.Context) *auth.UserSession {
	if s, ok := ctx.Value(SessionKey).(*auth.UserSession); ok {
		return s
	}
	return nil
}

// SessionMiddleware extracts user_id from the request body (JSON or
// multipart, matching how the dashboard posts it), validates it against the
// active sessions and attaches the session to the context. Requests without
// a valid session are answered with the standard envelope, not proxied on.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var userID string
		ct := r.Header.Get(constants.ContentTypeText)
		if strings.HasPrefix(ct, constants.ContentTypeJSON) && (r.Method == http.MethodPost || r.Method == http.MethodPut) {
			var bodyMap map[string]interface{}
			_ = json.NewDecoder(r.Body).Decode(&bodyMap)
			if uid, ok := bodyMap[constants.KeyUserID].(string); ok {
				userID = uid
			}
			// reset body for the handler
			bodyBytes, _ := json.Marshal(bodyMap)
			r.Body = io.NopCloser(strings.NewReader(string(bodyBytes)))
		} else if strings.HasPrefix(ct, constants.ContentTypeMultipart) && (r.Method == http.MethodPost || r.Method == http.MethodPut) {
			if err := r.ParseMultipartForm(32 << 20); err == nil {
				userID = r.FormValue(constants.KeyUserID)
			}
		} else {
			userID = r.URL.Query().Get(constants.KeyUserID)
		}

		if userID == "" {
			LogError("Missing user_id in request for %s", r.URL.Path)
			RespondWithPayload(w, false, constants.ErrMissingUserID, nil)
			return
		}

		session := auth.GetSessionByUserID(userID)
		if session == nil || !session.IsLoggedIn {
			LogError("Invalid session for user_id: %s", userID)
			RespondWithPayload(w, false, constants.ErrInvalidSessionShort, nil)
			return
		}

		ctx := context.WithValue(r.Context(), SessionKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
