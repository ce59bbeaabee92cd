package mw

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/naitik09090/backend-games/internal/httpserver/handlers"
	"github.com/naitik09090/backend-games/internal/utils"
)

type RateLimitConfig struct {
	RequestsPerMin int
	TrustProxy     bool // resolve IP from proxy headers when true
}

// RateLimit limits requests per client IP over a sliding one-minute window.
// A non-positive limit disables it.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	if cfg.RequestsPerMin <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		cfg.RequestsPerMin,
		time.Minute,
		httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
			return utils.ClientIP(r, cfg.TrustProxy), nil
		}),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			handlers.WriteError(w, http.StatusTooManyRequests, "Too many requests, please try again later")
		}),
	)
}
