package auth

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/naitik09090/backend-games/internal/logger"
)

// RequireToken rejects requests without a valid bearer token and stores the
// verified claims on the request context. A nil manager disables the gate.
func RequireToken(tokens *TokenManager, log logger.Logger) func(http.Handler) http.Handler {
	if tokens == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := BearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w, "missing bearer token")
				return
			}
			claims, err := tokens.Parse(raw)
			if err != nil {
				log.Debug("bearer token rejected", logger.Error(err))
				unauthorized(w, "invalid or expired token")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="games"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
