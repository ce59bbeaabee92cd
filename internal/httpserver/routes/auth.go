package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/naitik09090/backend-games/internal/auth"
	"github.com/naitik09090/backend-games/internal/httpserver/deps"
	"github.com/naitik09090/backend-games/internal/httpserver/handlers"
	"github.com/naitik09090/backend-games/internal/httpserver/mw"
)

func init() { Register(registerAuth) }

func registerAuth(r chi.Router, d deps.Deps) {
	limited := r.With(mw.RateLimit(mw.RateLimitConfig{
		RequestsPerMin: d.AuthRateLimit,
		TrustProxy:     d.TrustProxy,
	}))
	limited.Post("/register", handlers.Register(d))
	limited.Post("/login", handlers.Login(d))
}

// requireToken gates mutations when auth is enforced.
func requireToken(d deps.Deps) func(http.Handler) http.Handler {
	if !d.RequireAuth || d.Auth == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return auth.RequireToken(d.Auth.Tokens(), d.Logger)
}
