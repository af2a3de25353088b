package http

import (
	"context"
	"net/http"
	"strings"

	"chatline/auth"
)

type ctxKey string

const ctxKeyUserID ctxKey = "user_id"

const authCookieName = "jwt"

// RequireAuth validates the session token and injects the caller id into
// the request context. The token may arrive as the auth cookie or as an
// Authorization: Bearer header; credential checks never go deeper than
// this middleware.
func RequireAuth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := tokenFromRequest(r)
			if tokenString == "" {
				writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "missing auth token"})
				return
			}

			claims, err := tokens.Validate(tokenString)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "invalid or expired token"})
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUserID, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(authCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(header[len("Bearer "):])
	}
	return ""
}

// CallerID returns the authenticated user id placed in the context by
// RequireAuth, or "" when the request was not authenticated.
func CallerID(ctx context.Context) string {
	if v := ctx.Value(ctxKeyUserID); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
