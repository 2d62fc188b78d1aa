// Package handler exposes the dashboard aggregates over HTTP.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"onboard/internal/dashboard"
	"onboard/internal/http/shared"
	"onboard/internal/platform/metrics"
	"onboard/internal/platform/middleware"
)

// Handler handles the dashboard endpoints.
type Handler struct {
	logger       *slog.Logger
	service      *dashboard.Service
	feed         *dashboard.Feed
	metrics      *metrics.Metrics
	jwtValidator middleware.JWTValidator
}

func New(service *dashboard.Service, feed *dashboard.Feed, logger *slog.Logger, m *metrics.Metrics, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		service:      service,
		feed:         feed,
		metrics:      m,
		jwtValidator: jwtValidator,
	}
}

// Register mounts the dashboard routes.
func (h *Handler) Register(r chi.Router) {
	dashboardRouter := chi.NewRouter()
	dashboardRouter.Use(middleware.Recovery(h.logger))
	dashboardRouter.Use(middleware.RequestID)
	dashboardRouter.Use(middleware.Logger(h.logger))
	dashboardRouter.Use(middleware.Timeout(30 * time.Second))
	dashboardRouter.Use(middleware.ContentTypeJSON)
	dashboardRouter.Use(middleware.Latency(h.metrics))
	dashboardRouter.Use(middleware.RequireAuth(h.jwtValidator, h.logger))

	dashboardRouter.Get("/overview/{email}", h.handleOverview)
	dashboardRouter.Get("/fleet", h.handleFleet)

	r.Mount("/dashboard", dashboardRouter)
}

func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	email := chi.URLParam(r, "email")

	overview, err := h.service.Overview(ctx, email)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to build overview",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"overview": overview,
	})
}

func (h *Handler) handleFleet(w http.ResponseWriter, r *http.Request) {
	shared.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"fleet":   h.feed.Snapshot(),
	})
}
