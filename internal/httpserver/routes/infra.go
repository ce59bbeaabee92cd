package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/naitik09090/backend-games/internal/httpserver/deps"
	"github.com/naitik09090/backend-games/internal/httpserver/handlers"
	"github.com/naitik09090/backend-games/internal/httpserver/mw"
)

func init() { Register(registerInfra) }

func registerInfra(r chi.Router, d deps.Deps) {
	restricted := r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))
	restricted.Get("/infra", handlers.Infra(d))
	if d.Metrics != nil {
		restricted.Method("GET", "/metrics", d.Metrics.Handler())
	}
}
