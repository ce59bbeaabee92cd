package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/naitik09090/backend-games/internal/domain"
	"github.com/naitik09090/backend-games/internal/httpserver/deps"
	"github.com/naitik09090/backend-games/internal/store/docs"
)

// The /gm_games routes answer with the raw stored document shape, which
// existing clients of the catalog depend on.

func ListCatalog(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := d.Catalog.List(r.Context(), queryInt(r, "page"), queryInt(r, "limit"))
		if err != nil {
			fail(w, r, d, err)
			return
		}
		out := make([]*docs.Catalog, 0, len(list))
		for _, g := range list {
			doc, err := docs.FromCatalog(g)
			if err != nil {
				fail(w, r, d, err)
				return
			}
			out = append(out, doc)
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func GetCatalog(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, err := d.Catalog.Get(r.Context(), chi.URLParam(r, "id"))
		writeCatalog(w, r, d, http.StatusOK, g, err)
	}
}

func CreateCatalog(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := parseGameForm(w, r, d.MaxUploadBytes)
		if err != nil {
			fail(w, r, d, err)
			return
		}
		g, err := d.Catalog.Create(r.Context(), form.catalog())
		writeCatalog(w, r, d, http.StatusCreated, g, err)
	}
}

func UpdateCatalog(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := parseGameForm(w, r, d.MaxUploadBytes)
		if err != nil {
			fail(w, r, d, err)
			return
		}
		g, err := d.Catalog.Update(r.Context(), chi.URLParam(r, "id"), form.catalog())
		writeCatalog(w, r, d, http.StatusOK, g, err)
	}
}

func DeleteCatalog(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Catalog.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			fail(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: "Game deleted successfully"})
	}
}

func writeCatalog(w http.ResponseWriter, r *http.Request, d deps.Deps, status int, g *domain.CatalogGame, err error) {
	if err != nil {
		fail(w, r, d, err)
		return
	}
	doc, err := docs.FromCatalog(g)
	if err != nil {
		fail(w, r, d, err)
		return
	}
	writeJSON(w, status, doc)
}
