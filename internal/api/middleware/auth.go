package middleware

import (
	"context"
	"net/http"
	"strconv"
)

// UserIDHeader carries the authenticated user's ID, set by the API gateway
// in front of this service.
const UserIDHeader = "X-User-ID"

type userIDKey struct{}

// Auth extracts the gateway-provided user ID into the request context.
// Requests without the header pass through; handlers that require identity
// check with GetUserID and respond 401 themselves.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if raw := r.Header.Get(UserIDHeader); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
				r = r.WithContext(context.WithValue(r.Context(), userIDKey{}, id))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID returns the authenticated user ID from the context.
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey{}).(int64)
	return id, ok
}
