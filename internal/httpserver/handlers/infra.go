package handlers

import (
	"context"
	"net/http"

	"github.com/naitik09090/backend-games/internal/httpserver/deps"
)

type componentStatus struct {
	OK          bool     `json:"ok"`
	Backend     string   `json:"backend,omitempty"`
	Target      string   `json:"target,omitempty"`
	Database    string   `json:"database,omitempty"`
	Collections []string `json:"collections,omitempty"`
	Connected   bool     `json:"connected"`
	Count       *int     `json:"count,omitempty"`
	Mode        string   `json:"mode,omitempty"`
	Error       string   `json:"error,omitempty"`
}

type infraResponse struct {
	Status     string                     `json:"status"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports store connectivity and collection sizes.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
		defer cancel()

		components := map[string]componentStatus{
			"store":   checkStore(ctx, d),
			"local":   countComponent(d.Store.Local().Count(ctx)),
			"catalog": countComponent(d.Store.Catalog().Count(ctx)),
			"auth": {
				OK:   d.Auth != nil,
				Mode: authMode(d),
			},
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Status:     determineStatus(components),
			Components: components,
		})
	}
}

func checkStore(ctx context.Context, d deps.Deps) componentStatus {
	info, err := d.Store.Describe(ctx)
	st := componentStatus{
		Backend:     d.Store.Backend(),
		Target:      info.Target,
		Database:    info.Database,
		Collections: info.Collections,
	}
	if err != nil {
		st.Error = err.Error()
		return st
	}
	if err := d.Store.Ping(ctx); err != nil {
		st.Error = err.Error()
		return st
	}
	st.OK = true
	st.Connected = true
	return st
}

func countComponent(n int, err error) componentStatus {
	if err != nil {
		return componentStatus{Error: err.Error()}
	}
	return componentStatus{OK: true, Connected: true, Count: &n}
}

func authMode(d deps.Deps) string {
	if d.RequireAuth {
		return "mutations-require-token"
	}
	return "open"
}

// determineStatus is "critical" when the store is down and "degraded" when
// any other component fails.
func determineStatus(components map[string]componentStatus) string {
	if !components["store"].OK {
		return "critical"
	}
	for _, c := range components {
		if !c.OK {
			return "degraded"
		}
	}
	return "ok"
}
