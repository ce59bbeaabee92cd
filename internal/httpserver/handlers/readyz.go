package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/naitik09090/backend-games/internal/httpserver/deps"
)

const probeTimeout = 2 * time.Second

type readyzResponse struct {
	Ready   bool   `json:"ready"`
	Backend string `json:"backend"`
	Error   string `json:"error,omitempty"`
}

// Readyz pings the record store. The first call opens the lazy connection.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
		defer cancel()

		w.Header().Set("Cache-Control", "no-store")
		if err := d.Store.Ping(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{
				Backend: d.Store.Backend(),
				Error:   err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, readyzResponse{Ready: true, Backend: d.Store.Backend()})
	}
}
