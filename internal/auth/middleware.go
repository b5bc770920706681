package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// Middleware rejects requests without a valid bearer token unless public
// reports the path as open.
func Middleware(service *Service, public func(*http.Request) bool, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions || (public != nil && public(r)) {
				next.ServeHTTP(w, r)
				return
			}

			token := extractBearer(r)
			if token == "" {
				// Browsers cannot set headers on WebSocket upgrades.
				token = r.URL.Query().Get("token")
			}
			if token == "" {
				unauthorized(w, "missing credentials")
				return
			}

			user, err := service.Authenticate(token)
			if err != nil {
				logger.Warn("jwt validation failed", "path", r.URL.Path, "error", err)
				unauthorized(w, "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func extractBearer(r *http.Request) string {
	value := r.Header.Get("Authorization")
	if len(value) > len("bearer ") && strings.EqualFold(value[:len("bearer ")], "bearer ") {
		return strings.TrimSpace(value[len("bearer "):])
	}
	return ""
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
