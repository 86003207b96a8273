// Package middleware provides HTTP middleware for authentication and authorization.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/Linda-Mensah/hire-link/internal/types"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// roleKey is the context key for the role carried by a validated token.
const roleKey ContextKey = "role"

// TokenQueryParam carries the token for clients that cannot set headers (EventSource, WebSocket).
const TokenQueryParam = "access_token"

// TokenValidator is an interface for validating JWT tokens.
// This allows the middleware to work with any JWT service implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (RoleGetter, error)
}

// RoleGetter is an interface for extracting the session role from token claims.
type RoleGetter interface {
	GetRole() types.Role
}

// SessionChecker reports whether the process-wide session is signed in.
type SessionChecker interface {
	IsAuthenticated() bool
}

// AuthMiddleware creates middleware that validates bearer tokens and adds the role to the request context.
func AuthMiddleware(jwtService TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := tokenFromRequest(r)
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := jwtService.ValidateToken(tokenString)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), roleKey, claims.GetRole())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession rejects requests while the session is signed out. A token issued
// before a logout stops working until the next login.
func RequireSession(sessions SessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !sessions.IsAuthenticated() {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// tokenFromRequest reads "Authorization: Bearer <token>", falling back to the
// access_token query parameter on GET requests.
func tokenFromRequest(r *http.Request) (string, bool) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		// Handle case-insensitive "Bearer" prefix
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", false
		}
		token := strings.TrimSpace(parts[1])
		return token, token != ""
	}

	if r.Method == http.MethodGet {
		if token := strings.TrimSpace(r.URL.Query().Get(TokenQueryParam)); token != "" {
			return token, true
		}
	}
	return "", false
}

// GetRole extracts the authenticated role from the request context.
func GetRole(r *http.Request) (types.Role, error) {
	role, ok := r.Context().Value(roleKey).(types.Role)
	if !ok {
		return types.RoleNone, fmt.Errorf("role not found in request context")
	}
	return role, nil
}

// RoleKey returns the context key for the role (for testing purposes).
func RoleKey() ContextKey {
	return roleKey
}
