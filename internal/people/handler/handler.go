// Package handler exposes the people directory over HTTP. All routes are
// admin-facing and sit behind JWT auth.
package handler

//go:generate mockgen -source=handler.go -destination=mocks/people-mocks.go -package=mocks Service

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"onboard/internal/http/shared"
	"onboard/internal/people"
	"onboard/internal/platform/metrics"
	"onboard/internal/platform/middleware"
	"onboard/pkg/domainerrors"
)

// Service defines the directory operations the handler exposes.
type Service interface {
	Save(ctx context.Context, person people.Person) (*people.Person, error)
	Resolve(ctx context.Context, email string) (*people.Person, error)
	List(ctx context.Context, personType people.Type) ([]people.Person, error)
}

// Handler handles the people directory endpoints.
type Handler struct {
	logger       *slog.Logger
	service      Service
	metrics      *metrics.Metrics
	jwtValidator middleware.JWTValidator
}

func New(service Service, logger *slog.Logger, m *metrics.Metrics, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		service:      service,
		metrics:      m,
		jwtValidator: jwtValidator,
	}
}

// Register mounts the people routes.
func (h *Handler) Register(r chi.Router) {
	peopleRouter := chi.NewRouter()
	peopleRouter.Use(middleware.Recovery(h.logger))
	peopleRouter.Use(middleware.RequestID)
	peopleRouter.Use(middleware.Logger(h.logger))
	peopleRouter.Use(middleware.Timeout(30 * time.Second))
	peopleRouter.Use(middleware.ContentTypeJSON)
	peopleRouter.Use(middleware.Latency(h.metrics))
	peopleRouter.Use(middleware.RequireAuth(h.jwtValidator, h.logger))

	peopleRouter.Post("/", h.handleSave)
	peopleRouter.Get("/", h.handleList)
	peopleRouter.Get("/{email}", h.handleGet)

	r.Mount("/people", peopleRouter)
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var person people.Person
	if err := json.NewDecoder(r.Body).Decode(&person); err != nil {
		h.logger.WarnContext(ctx, "invalid save person request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, domainerrors.New(domainerrors.CodeBadRequest, "invalid request body"))
		return
	}

	saved, err := h.service.Save(ctx, person)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to save person",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"person":  saved,
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	personType := people.Type(r.URL.Query().Get("type"))

	list, err := h.service.List(ctx, personType)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list people",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}
	if list == nil {
		list = []people.Person{}
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"people":  list,
	})
}

// handleGet resolves a single person. A missing record returns success with
// a null person: absence is a normal outcome for recipient emails.
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	email := chi.URLParam(r, "email")

	person, err := h.service.Resolve(ctx, email)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to resolve person",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"person":  person,
	})
}
