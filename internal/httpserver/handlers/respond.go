package handlers

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/naitik09090/backend-games/internal/domain"
	"github.com/naitik09090/backend-games/internal/httpserver/deps"
	"github.com/naitik09090/backend-games/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes {"error": msg}. Exported for middlewares.
func WriteError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// fail maps a service error onto the HTTP error taxonomy.
func fail(w http.ResponseWriter, r *http.Request, d deps.Deps, err error) {
	var (
		verr *domain.ValidationError
		aerr *domain.AuthError
		serr *domain.StoreError
	)
	switch {
	case errors.As(err, &verr):
		WriteError(w, http.StatusBadRequest, verr.Error())
	case errors.As(err, &aerr):
		WriteError(w, http.StatusBadRequest, aerr.Message)
	case errors.Is(err, domain.ErrNotFound):
		WriteError(w, http.StatusNotFound, domain.ErrNotFound.Error())
	default:
		op := "unknown"
		if errors.As(err, &serr) {
			op = serr.Op
		}
		if d.Metrics != nil {
			d.Metrics.StoreError(op)
		}
		d.Logger.Error("request failed",
			logger.String("path", r.URL.Path),
			logger.String("op", op),
			logger.Error(err))
		WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

// resolveView turns relative static logo paths into absolute URLs when a
// public base URL is configured.
func resolveView(d deps.Deps, v domain.View) domain.View {
	if d.PublicBaseURL != "" && v.Logo.Kind == domain.LogoStatic {
		v.Logo = domain.Logo{Kind: domain.LogoRemote, Value: v.Logo.Resolve(d.PublicBaseURL)}
	}
	return v
}
