package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/naitik09090/backend-games/internal/domain"
	"github.com/naitik09090/backend-games/internal/httpserver/deps"
)

type statusResponse struct {
	Message string `json:"message"`
	Status  bool   `json:"status"`
}

// ListGames serves the unified listing. Missing or invalid page and limit
// values fall back to the defaults.
func ListGames(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := d.Lister.List(r.Context(), queryInt(r, "page"), queryInt(r, "limit"))
		if err != nil {
			fail(w, r, d, err)
			return
		}
		for i := range page.Items {
			page.Items[i] = resolveView(d, page.Items[i])
		}
		writeJSON(w, http.StatusOK, page)
	}
}

func GetGame(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := d.Resolver.Resolve(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			fail(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusOK, resolveView(d, v))
	}
}

func CreateGame(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := parseGameForm(w, r, d.MaxUploadBytes)
		if err != nil {
			fail(w, r, d, err)
			return
		}
		g, err := d.Games.Create(r.Context(), form.create())
		if err != nil {
			fail(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusCreated, resolveView(d, domain.NormalizeLocal(g)))
	}
}

func UpdateGame(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := parseGameForm(w, r, d.MaxUploadBytes)
		if err != nil {
			fail(w, r, d, err)
			return
		}
		g, err := d.Games.Update(r.Context(), chi.URLParam(r, "id"), form.update())
		if err != nil {
			fail(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusOK, resolveView(d, domain.NormalizeLocal(g)))
	}
}

func ToggleGameStatus(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		active, err := d.Games.ToggleActive(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			fail(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusOK, statusResponse{Message: "Status updated", Status: active})
	}
}

func DeleteGame(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Games.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			fail(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: "Game deleted successfully"})
	}
}

// queryInt returns the integer query value, or 0 when missing or malformed.
func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}
