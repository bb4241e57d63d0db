package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/lamsashop/lamsa/internal/domain"
	"github.com/lamsashop/lamsa/internal/service"
)

const (
	// SessionCookieName is the cookie holding the session token.
	SessionCookieName = "lamsa_session"

	// UserContextKey is the context key for the authenticated user.
	UserContextKey contextKey = "user"
)

// WithUser resolves the session token, if any, and attaches the user to
// the request context. Requests without a valid session pass through
// anonymously; gating happens in RequireAuth and RequireAdmin.
func WithUser(accounts service.AccountService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := accounts.Resolve(r.Context(), token)
			if err != nil {
				// Expired or unknown token reads as anonymous.
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous requests.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUser(r.Context()) == nil {
			respondUnauthorized(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests from anyone but an admin account.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUser(r.Context())
		if user == nil {
			respondUnauthorized(w, r)
			return
		}
		if !user.IsAdmin {
			respondForbidden(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUser retrieves the authenticated user from the context, or nil.
func GetUser(ctx context.Context) *domain.User {
	if user, ok := ctx.Value(UserContextKey).(*domain.User); ok {
		return user
	}
	return nil
}

// sessionToken pulls the session token from the Authorization header or
// the session cookie.
func sessionToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if c, err := r.Cookie(SessionCookieName); err == nil {
		return c.Value
	}
	return ""
}
