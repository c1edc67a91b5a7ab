package middleware

import (
	"context"
	"net/http"
	"strings"

	jwtinfra "github.com/ray-auth-api/internal/infrastructure/jwt"
)

type contextKey string

const ClaimsKey contextKey = "claims"

// SessionCookieName mirrors the cookie set by the session handlers.
const SessionCookieName = "token"

// Auth returns middleware that validates the session credential and injects
// claims into context. The credential is read from the session cookie first
// (browser clients), falling back to a Bearer header (API clients).
func Auth(provider *jwtinfra.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := ""
			if c, err := r.Cookie(SessionCookieName); err == nil {
				tokenStr = c.Value
			}
			if tokenStr == "" {
				if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
					tokenStr = strings.TrimPrefix(h, "Bearer ")
				}
			}
			if tokenStr == "" {
				http.Error(w, `{"error":"missing session credential"}`, http.StatusUnauthorized)
				return
			}
			claims, err := provider.Verify(tokenStr)
			if err != nil {
				http.Error(w, `{"error":"invalid or expired session credential"}`, http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext extracts session claims from the request context.
func ClaimsFromContext(ctx context.Context) (*jwtinfra.Claims, bool) {
	c, ok := ctx.Value(ClaimsKey).(*jwtinfra.Claims)
	return c, ok
}
