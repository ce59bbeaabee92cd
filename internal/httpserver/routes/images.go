package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/naitik09090/backend-games/internal/httpserver/deps"
)

func init() { Register(registerImages) }

// registerImages serves the legacy static logo files referenced by relative
// /images/... paths.
func registerImages(r chi.Router, d deps.Deps) {
	if d.ImagesDir == "" {
		return
	}
	fs := http.StripPrefix("/images/", http.FileServer(http.Dir(d.ImagesDir)))
	r.Handle("/images/*", fs)
}
