package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/Vasu1712/zenith-backend/internal/auth"
)

// SessionCookie carries the admin token for browser clients.
const SessionCookie = "zenith_session"

type claimsKey struct{}

// Verifier checks a session token.
type Verifier interface {
	Verify(token string) (*auth.Claims, error)
}

// RequireAdmin rejects any request that does not carry a valid admin
// session, from the Authorization header or the session cookie.
func RequireAdmin(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			claims, err := v.Verify(token)
			if err != nil || claims.Role != auth.RoleAdmin {
				log.Printf("[Auth] rejected %s %s: %v", r.Method, r.URL.Path, err)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
		})
	}
}

// TokenFromRequest returns the bearer token, falling back to the cookie.
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

// ClaimsFrom returns the claims RequireAdmin stored on the context.
func ClaimsFrom(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return c, ok
}
