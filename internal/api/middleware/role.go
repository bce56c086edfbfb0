package middleware

import (
	"context"
	"net/http"

	"github.com/resqlink/dispatch/internal/domain/providers"
)

type contextKey string

// RoleContextKey is the context key under which the caller's role is stored
const RoleContextKey contextKey = "role"

// RoleHeader carries the caller's department role. Authentication itself
// is handled upstream; this core only consumes the resulting role
// context.
const RoleHeader = "X-Dispatch-Role"

// RoleMiddleware extracts the caller's role from the request header and
// stores it in the request context
func RoleMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := providers.Role(r.Header.Get(RoleHeader))
		ctx := context.WithValue(r.Context(), RoleContextKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RoleFromContext returns the caller's role, if any
func RoleFromContext(ctx context.Context) providers.Role {
	if role, ok := ctx.Value(RoleContextKey).(providers.Role); ok {
		return role
	}
	return ""
}
