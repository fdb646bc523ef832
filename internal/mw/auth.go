package mw

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const EmailCtxKey contextKey = "user_email"

// CallerEmail returns the verified identity email attached by AuthMiddleware.
func CallerEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(EmailCtxKey).(string)
	return email, ok
}

func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				deny(w, http.StatusUnauthorized, "unauthorized access")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				deny(w, http.StatusUnauthorized, "unauthorized access")
				return
			}

			token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				deny(w, http.StatusForbidden, "forbidden access")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				deny(w, http.StatusForbidden, "forbidden access")
				return
			}

			email, ok := claims["email"].(string)
			if !ok || email == "" {
				deny(w, http.StatusForbidden, "forbidden access")
				return
			}

			ctx := context.WithValue(r.Context(), EmailCtxKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func deny(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
