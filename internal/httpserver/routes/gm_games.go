package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/naitik09090/backend-games/internal/httpserver/deps"
	"github.com/naitik09090/backend-games/internal/httpserver/handlers"
)

func init() { Register(registerCatalog) }

func registerCatalog(r chi.Router, d deps.Deps) {
	r.Route("/gm_games", func(r chi.Router) {
		r.Get("/", handlers.ListCatalog(d))
		r.Get("/{id}", handlers.GetCatalog(d))

		r.Group(func(r chi.Router) {
			r.Use(requireToken(d))
			r.Post("/", handlers.CreateCatalog(d))
			r.Put("/{id}", handlers.UpdateCatalog(d))
			r.Delete("/{id}", handlers.DeleteCatalog(d))
		})
	})
}
