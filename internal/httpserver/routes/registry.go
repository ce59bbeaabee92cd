// Package routes attaches every route group to the router. Each file adds
// its group from init() so the server never lists them by hand.
package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/naitik09090/backend-games/internal/httpserver/deps"
)

// Registrar mounts one route group.
type Registrar func(r chi.Router, d deps.Deps)

type group struct {
	mount Registrar
	use   []func(http.Handler) http.Handler
}

var groups []group

// Register adds a route group. mws wrap only the routes of that group.
func Register(mount Registrar, mws ...func(http.Handler) http.Handler) {
	groups = append(groups, group{mount: mount, use: mws})
}

// RegisterAll mounts every registered group on r.
func RegisterAll(r chi.Router, d deps.Deps) {
	for _, g := range groups {
		if len(g.use) == 0 {
			g.mount(r, d)
			continue
		}
		r.Group(func(sub chi.Router) {
			sub.Use(g.use...)
			g.mount(sub, d)
		})
	}
}
