// Package apphttp assembles the feature routers into the single handler the
// server exposes, plus the operational endpoints.
package apphttp

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"onboard/internal/http/shared"
)

// Registrar is implemented by every feature handler.
type Registrar interface {
	Register(r chi.Router)
}

// NewRouter mounts every feature handler and the operational endpoints.
// Feature routers carry their own middleware chains.
func NewRouter(features ...Registrar) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		shared.WriteJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	for _, f := range features {
		f.Register(r)
	}
	return r
}
