package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

// ContextKeyEmail carries the authenticated admin email through the request
const ContextKeyEmail contextKey = "auth_email"

// Middleware rejects requests that do not carry a valid bearer token
func (s *Service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			s.writeUnauthorized(w, "Authorization token required")
			return
		}

		email, err := s.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			s.writeUnauthorized(w, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyEmail, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Service) writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"message":"` + message + `"}`))
}
