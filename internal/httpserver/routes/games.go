package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/naitik09090/backend-games/internal/httpserver/deps"
	"github.com/naitik09090/backend-games/internal/httpserver/handlers"
)

func init() { Register(registerGames) }

func registerGames(r chi.Router, d deps.Deps) {
	r.Route("/games", func(r chi.Router) {
		r.Get("/", handlers.ListGames(d))
		r.Get("/{id}", handlers.GetGame(d))

		r.Group(func(r chi.Router) {
			r.Use(requireToken(d))
			r.Post("/", handlers.CreateGame(d))
			r.Put("/{id}", handlers.UpdateGame(d))
			r.Patch("/{id}/toggle-status", handlers.ToggleGameStatus(d))
			r.Delete("/{id}", handlers.DeleteGame(d))
		})
	})
}
