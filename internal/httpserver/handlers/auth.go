package handlers

import (
	"net/http"

	"github.com/naitik09090/backend-games/internal/auth"
	"github.com/naitik09090/backend-games/internal/httpserver/deps"
)

func Register(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in auth.Credentials
		if err := decodeJSON(r, &in); err != nil {
			fail(w, r, d, err)
			return
		}
		if _, err := d.Auth.Register(r.Context(), in); err != nil {
			fail(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusCreated, messageResponse{Message: "User created successfully"})
	}
}

func Login(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in auth.Credentials
		if err := decodeJSON(r, &in); err != nil {
			fail(w, r, d, err)
			return
		}
		sess, err := d.Auth.Login(r.Context(), in)
		if err != nil {
			fail(w, r, d, err)
			return
		}
		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, http.StatusOK, sess)
	}
}
