// Package handler is the thin HTTP layer over the onboarding service. It
// delegates to the service without embedding business logic so transport
// concerns remain isolated.
package handler

//go:generate mockgen -source=handler.go -destination=mocks/onboarding-mocks.go -package=mocks Service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"onboard/internal/draft"
	"onboard/internal/http/shared"
	"onboard/internal/onboarding/models"
	"onboard/internal/onboarding/progress"
	"onboard/internal/platform/metrics"
	"onboard/internal/platform/middleware"
	"onboard/pkg/domainerrors"
	"onboard/pkg/sentinel"
)

// Service defines the onboarding operations the handler exposes.
type Service interface {
	Send(ctx context.Context, title string, fields []models.FieldInstance, recipients []models.Recipient) (*models.FormSchema, error)
	Resolve(ctx context.Context, token, recipientEmail string) (*models.FormSchema, *models.Recipient, error)
	Submit(ctx context.Context, token, recipientEmail string, answers []models.AnsweredField) (*models.Recipient, progress.Progress, error)
	FormsByRecipient(ctx context.Context, recipientEmail string) ([]*models.FormSchema, error)
}

// Handler handles the onboarding endpoints.
type Handler struct {
	logger       *slog.Logger
	service      Service
	drafts       draft.Cache
	metrics      *metrics.Metrics
	jwtValidator middleware.JWTValidator
}

// New creates an onboarding Handler. drafts may be nil, which disables the
// draft endpoints.
func New(service Service, drafts draft.Cache, logger *slog.Logger, m *metrics.Metrics, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		service:      service,
		drafts:       drafts,
		metrics:      m,
		jwtValidator: jwtValidator,
	}
}

// Register mounts the onboarding routes. Recipient-facing routes are
// public: the emailed tokenized link is the credential. Authoring routes
// require a bearer token.
func (h *Handler) Register(r chi.Router) {
	onboardingRouter := chi.NewRouter()
	onboardingRouter.Use(middleware.Recovery(h.logger))
	onboardingRouter.Use(middleware.RequestID)
	onboardingRouter.Use(middleware.Logger(h.logger))
	onboardingRouter.Use(middleware.Timeout(30 * time.Second))
	onboardingRouter.Use(middleware.ContentTypeJSON)
	onboardingRouter.Use(middleware.Latency(h.metrics))

	onboardingRouter.Get("/form/{token}", h.handleGetForm)
	onboardingRouter.Post("/submit/{token}", h.handleSubmit)
	if h.drafts != nil {
		onboardingRouter.Put("/draft/{token}", h.handleSaveDraft)
		onboardingRouter.Get("/draft/{token}", h.handleGetDraft)
	}

	onboardingRouter.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		authed.Post("/send-form", h.handleSendForm)
		authed.Get("/forms-by-recipient/{email}", h.handleFormsByRecipient)
		authed.Get("/my-forms/{email}", h.handleMyForms)
	})

	r.Mount("/onboarding", onboardingRouter)
}

type sendFormRequest struct {
	FormTitle  string                 `json:"formTitle"`
	Fields     []models.FieldInstance `json:"fields"`
	Recipients []models.Recipient     `json:"recipients"`
}

func (h *Handler) handleSendForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req sendFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid send form request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, domainerrors.New(domainerrors.CodeBadRequest, "invalid request body"))
		return
	}

	form, err := h.service.Send(ctx, req.FormTitle, req.Fields, req.Recipients)
	if err != nil {
		h.logError(ctx, "failed to send form", err)
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"token":   form.Token,
	})
}

func (h *Handler) handleGetForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := chi.URLParam(r, "token")
	recipientEmail := r.URL.Query().Get("email")

	form, recipient, err := h.service.Resolve(ctx, token, recipientEmail)
	if err != nil {
		h.logError(ctx, "failed to resolve form", err)
		shared.WriteError(w, err)
		return
	}

	resp := map[string]any{
		"success": true,
		"form":    form,
	}
	if recipient != nil {
		resp["recipient"] = recipient
		resp["progress"] = progress.Compute(form.Fields, recipient)
	}
	shared.WriteJSON(w, http.StatusOK, resp)
}

type submitRequest struct {
	RecipientEmail  string                 `json:"recipientEmail"`
	CompletedFields []models.AnsweredField `json:"completedFields"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := chi.URLParam(r, "token")

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid submit request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, domainerrors.New(domainerrors.CodeBadRequest, "invalid request body"))
		return
	}

	recipient, p, err := h.service.Submit(ctx, token, req.RecipientEmail, req.CompletedFields)
	if err != nil {
		h.logError(ctx, "failed to accept submission", err)
		shared.WriteError(w, err)
		return
	}

	if h.drafts != nil {
		if err := draft.ClearIfComplete(ctx, h.drafts, token, recipient.Email, p); err != nil {
			h.logger.WarnContext(ctx, "failed to clear draft",
				"request_id", middleware.GetRequestID(ctx),
				"token", token,
				"error", err.Error(),
			)
		}
	}

	message := "submission saved"
	if recipient.CompletedAt != nil {
		message = "form completed"
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"message":  message,
		"progress": p,
	})
}

func (h *Handler) handleFormsByRecipient(w http.ResponseWriter, r *http.Request) {
	h.listForms(w, r)
}

// handleMyForms serves the recipient's own "sent to me" view; it shares the
// forms-by-recipient query.
func (h *Handler) handleMyForms(w http.ResponseWriter, r *http.Request) {
	h.listForms(w, r)
}

func (h *Handler) listForms(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	recipientEmail := chi.URLParam(r, "email")

	forms, err := h.service.FormsByRecipient(ctx, recipientEmail)
	if err != nil {
		h.logError(ctx, "failed to list forms", err)
		shared.WriteError(w, err)
		return
	}
	if forms == nil {
		forms = []*models.FormSchema{}
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"forms":   forms,
	})
}

type saveDraftRequest struct {
	RecipientEmail string         `json:"recipientEmail"`
	Values         map[string]any `json:"values"`
}

// handleSaveDraft caches in-progress values for one (token, email) pair.
// Values are sanitized against the schema so file-like answers degrade to
// their filename before caching.
func (h *Handler) handleSaveDraft(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := chi.URLParam(r, "token")

	var req saveDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, domainerrors.New(domainerrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.RecipientEmail == "" {
		shared.WriteError(w, domainerrors.New(domainerrors.CodeBadRequest, "recipient email is required"))
		return
	}

	form, _, err := h.service.Resolve(ctx, token, "")
	if err != nil {
		h.logError(ctx, "failed to resolve form for draft", err)
		shared.WriteError(w, err)
		return
	}

	entry := draft.Entry{
		Values:  draft.Sanitize(form.Fields, req.Values),
		SavedAt: time.Now(),
	}
	if err := h.drafts.Put(ctx, token, req.RecipientEmail, entry); err != nil {
		h.logError(ctx, "failed to save draft", err)
		shared.WriteError(w, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to save draft"))
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}

// handleGetDraft returns the cached draft reconciled with server-confirmed
// answers. A missing draft still returns the server answers.
func (h *Handler) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	token := chi.URLParam(r, "token")
	recipientEmail := r.URL.Query().Get("email")
	if recipientEmail == "" {
		shared.WriteError(w, domainerrors.New(domainerrors.CodeBadRequest, "recipient email is required"))
		return
	}

	_, recipient, err := h.service.Resolve(ctx, token, recipientEmail)
	if err != nil {
		h.logError(ctx, "failed to resolve form for draft", err)
		shared.WriteError(w, err)
		return
	}

	var cached map[string]any
	entry, err := h.drafts.Get(ctx, token, recipientEmail)
	if err == nil {
		cached = entry.Values
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		h.logError(ctx, "failed to load draft", err)
		shared.WriteError(w, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to load draft"))
		return
	}

	var serverAnswers []models.AnsweredField
	if recipient != nil {
		serverAnswers = recipient.CompletedFields
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"values":  draft.Reconcile(serverAnswers, cached),
	})
}

func (h *Handler) logError(ctx context.Context, msg string, err error) {
	if domainerrors.HasCode(err, domainerrors.CodeBadRequest) || domainerrors.HasCode(err, domainerrors.CodeNotFound) {
		h.logger.WarnContext(ctx, msg,
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		return
	}
	h.logger.ErrorContext(ctx, msg,
		"request_id", middleware.GetRequestID(ctx),
		"error", err.Error(),
	)
}
