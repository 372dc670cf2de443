package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/anmolv/kittysplit/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UserIDKey is the context key for storing the authenticated user ID.
	UserIDKey contextKey = "user_id"
	// EmailKey is the context key for storing the authenticated user's email.
	EmailKey contextKey = "email"
)

// GetUserID extracts the user ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

// GetEmail extracts the user email from the context.
// Returns empty string if not found.
func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}

// WithUser returns a context carrying the authenticated user's ID and email.
// Exposed so tests can simulate an authenticated request.
func WithUser(ctx context.Context, userID, email string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	return context.WithValue(ctx, EmailKey, email)
}

// RequireAuth wraps a handler with JWT validation. It extracts the token
// from the Authorization header, validates it, and adds the user ID and
// email to the request context. Requests without a valid token get 401.
func RequireAuth(jwtManager *auth.JWTManager, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := claimsFromRequest(jwtManager, r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), claims.UserID, claims.Email)))
	})
}

// OptionalAuth validates a JWT token if present but lets unauthenticated
// requests through. Useful for endpoints that behave differently for
// authenticated users.
func OptionalAuth(jwtManager *auth.JWTManager, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, err := claimsFromRequest(jwtManager, r); err == nil {
			r = r.WithContext(WithUser(r.Context(), claims.UserID, claims.Email))
		}
		next.ServeHTTP(w, r)
	})
}

func claimsFromRequest(jwtManager *auth.JWTManager, r *http.Request) (*auth.Claims, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, auth.ErrMissingToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, auth.ErrInvalidToken
	}
	return jwtManager.Validate(parts[1])
}
