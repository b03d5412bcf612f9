package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mkkalpana/text-morph/internal/domain/users"
)

type contextKey string

const userKey contextKey = "user"

// TokenVerifier resolves a bearer token to its subject (the user's email).
type TokenVerifier interface {
	Verify(raw string) (string, error)
}

// BearerAuth validates the Authorization header, loads the user behind the
// token and stores it in the request context. Deactivated accounts are
// rejected even when their token is still valid.
func BearerAuth(tokens TokenVerifier, repo users.Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				http.Error(w, "missing Authorization header", http.StatusUnauthorized)
				return
			}

			// Support both "Bearer <token>" and "<token>" formats
			raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if raw == "" {
				http.Error(w, "invalid Authorization header format", http.StatusUnauthorized)
				return
			}

			email, err := tokens.Verify(raw)
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			u, err := repo.GetByEmail(r.Context(), email)
			if err != nil || !u.IsActive {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext extracts the authenticated user from context.
func GetUserFromContext(ctx context.Context) *users.User {
	if u, ok := ctx.Value(userKey).(*users.User); ok {
		return u
	}
	return nil
}
