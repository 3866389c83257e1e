// Package api implements the journal REST API using chi.
package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// tokenParam carries the token for clients that cannot set headers, such
// as a browser EventSource on /events.
const tokenParam = "access_token"

// AuthMiddleware returns middleware that validates a Bearer token.
// If enabled is false, all requests pass through (disabled mode).
// Otherwise requests need "Authorization: Bearer <token>", or the token in
// the access_token query parameter on GET requests.
func AuthMiddleware(enabled bool, token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !enabled {
				next.ServeHTTP(w, r)
				return
			}
			if !validToken(requestToken(r), token) {
				w.Header().Set("WWW-Authenticate", `Bearer realm="tag"`)
				writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func requestToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		t, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok {
			return ""
		}
		return t
	}
	if r.Method == http.MethodGet {
		return r.URL.Query().Get(tokenParam)
	}
	return ""
}

func validToken(got, want string) bool {
	if got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
