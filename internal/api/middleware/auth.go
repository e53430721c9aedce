package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/alec/wallet-auth-backend/internal/domain"
	"github.com/alec/wallet-auth-backend/internal/service"
)

type contextKey string

const userKey contextKey = "user"

// Auth gates protected routes. It extracts the bearer token, validates it,
// resolves the user id to a live record, and attaches the record to the
// request context. Every failure mode collapses to a generic 401 so the
// response never reveals which check failed; the precise cause is logged.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Printf("ERROR [middleware.Auth] missing authorization header")
				unauthorized(w, "Authorization token required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				log.Printf("ERROR [middleware.Auth] invalid authorization header format")
				unauthorized(w, "Authorization token required")
				return
			}

			userID, err := authService.ValidateToken(parts[1])
			if err != nil {
				log.Printf("ERROR [middleware.Auth] token validation failed: %v", err)
				unauthorized(w, "Request is not authorized")
				return
			}

			user, err := authService.GetUserByID(r.Context(), userID)
			if err != nil {
				// Token outlived the record it was minted for.
				log.Printf("ERROR [middleware.Auth] failed to resolve user %s: %v", userID, err)
				unauthorized(w, "User not found")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser returns the authenticated user attached by Auth.
func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"` + msg + `"}`))
}
