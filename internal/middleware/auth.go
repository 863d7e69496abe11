package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gamevault/backend/internal/database"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

var blacklist database.KV

// InitAuthMiddleware wires the storage used for logout token blacklisting.
func InitAuthMiddleware(kv database.KV) {
	blacklist = kv
}

// AuthMiddleware validates the bearer token and places user_id and role in
// the request context. Blacklisted (logged out) tokens are rejected.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header required", http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "Invalid authorization header format", http.StatusUnauthorized)
			return
		}

		token := parts[1]

		if blacklist != nil {
			if _, revoked, _ := blacklist.Get(r.Context(), fmt.Sprintf("blacklist:%s", token)); revoked {
				http.Error(w, "Token revoked", http.StatusUnauthorized)
				return
			}
		}

		userID, role, err := validateToken(token)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), "userID", userID)
		ctx = context.WithValue(ctx, "role", role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole gates a route group on the context role set by AuthMiddleware.
// The admin surface uses it as a coarse view-level gate.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			current, _ := r.Context().Value("role").(string)
			if current != role {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func validateToken(tokenString string) (string, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(viper.GetString("jwt.secret_key")), nil
	})

	if err != nil || !token.Valid {
		return "", "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", fmt.Errorf("unexpected claims type")
	}

	return fmt.Sprintf("%v", claims["user_id"]), fmt.Sprintf("%v", claims["role"]), nil
}
