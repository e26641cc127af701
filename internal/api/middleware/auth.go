// Package middleware holds the gorilla/mux middleware the router
// wires in: a trivial header-based actor shim (real auth/session
// handling lives outside this repository), request-id tagging, and
// HTTP metrics.
package middleware

import (
	"context"
	"net/http"
	"strconv"
)

type userIDKey struct{}

// Auth extracts the X-User-ID header and stores it in the request
// context; GetUserID reads it back. There is no session/credential
// verification here, that belongs to an external auth service.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-User-ID")
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"missing or invalid X-User-ID header"}`))
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey{}, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID reads the actor id Auth stashed in ctx.
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey{}).(int64)
	return id, ok
}
