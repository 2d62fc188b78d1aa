// Package service orchestrates form distribution and recipient
// submissions: token issuance, recipient seeding, answer filtering,
// completion stamping and the notification/audit side effects.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"onboard/internal/audit"
	"onboard/internal/notify"
	"onboard/internal/onboarding/catalog"
	"onboard/internal/onboarding/fillstate"
	"onboard/internal/onboarding/models"
	"onboard/internal/onboarding/progress"
	"onboard/internal/onboarding/store"
	"onboard/internal/platform/metrics"
	"onboard/internal/platform/middleware"
	"onboard/pkg/domainerrors"
	"onboard/pkg/email"
	"onboard/pkg/sentinel"
)

// Service owns the distribution and submission protocol for onboarding
// forms.
type Service struct {
	store    store.Store
	logger   *slog.Logger
	notifier notify.Notifier
	audit    *audit.Publisher
	metrics  *metrics.Metrics
	clock    func() time.Time
	baseURL  string
}

// Option configures a Service.
type Option func(*Service)

func WithNotifier(n notify.Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

func WithAudit(p *audit.Publisher) Option {
	return func(s *Service) { s.audit = p }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

// WithBaseURL sets the public base used to build recipient links.
func WithBaseURL(base string) Option {
	return func(s *Service) { s.baseURL = strings.TrimRight(base, "/") }
}

func New(st store.Store, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:  st,
		logger: logger,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.notifier == nil {
		s.notifier = notify.NewLogNotifier(logger)
	}
	return s
}

// Send persists a new form and fans out one tokenized link per recipient.
// An empty distribution list is rejected before anything is stored.
func (s *Service) Send(ctx context.Context, title string, fields []models.FieldInstance, recipients []models.Recipient) (*models.FormSchema, error) {
	if len(recipients) == 0 {
		return nil, domainerrors.New(domainerrors.CodeBadRequest, "at least one recipient is required")
	}

	now := s.clock()
	form := &models.FormSchema{
		Token:     uuid.NewString(),
		Title:     title,
		Fields:    fields,
		CreatedAt: now,
	}
	for _, rec := range recipients {
		addr := strings.TrimSpace(rec.Email)
		if addr == "" || form.Recipient(addr) != nil {
			continue
		}
		seeded := models.Recipient{
			Name:            rec.Name,
			Email:           addr,
			Type:            rec.Type,
			CompletedFields: []models.AnsweredField{},
		}
		if seeded.Name == "" {
			seeded.Name = email.DeriveDisplayName(addr)
		}
		if seeded.Type == "" {
			seeded.Type = models.RecipientCandidate
		}
		form.Recipients = append(form.Recipients, seeded)
	}
	if len(form.Recipients) == 0 {
		return nil, domainerrors.New(domainerrors.CodeBadRequest, "at least one recipient is required")
	}

	if err := s.store.SaveForm(ctx, form); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to persist form")
	}

	for _, rec := range form.Recipients {
		event := notify.FormSentEvent{
			Token:          form.Token,
			FormTitle:      form.Title,
			RecipientName:  rec.Name,
			RecipientEmail: rec.Email,
			Link:           s.recipientLink(form.Token, rec.Email),
			SentAt:         now,
		}
		if err := s.notifier.FormSent(ctx, event); err != nil {
			s.countNotifyFailure()
			s.logger.WarnContext(ctx, "form sent notification failed",
				"token", form.Token,
				"recipient", rec.Email,
				"error", err,
			)
		}
	}

	s.emitAudit(ctx, audit.Event{Action: audit.ActionFormSent, Token: form.Token})
	if s.metrics != nil {
		s.metrics.FormsSent.Inc()
	}
	return form, nil
}

// Resolve loads a form by token and locates the recipient by exact email
// match. An email missing from the distribution list yields an empty
// recipient view rather than an error: links are long-lived and lists
// drift after a form was sent.
func (s *Service) Resolve(ctx context.Context, token, recipientEmail string) (*models.FormSchema, *models.Recipient, error) {
	form, err := s.findForm(ctx, token)
	if err != nil {
		return nil, nil, err
	}

	if recipientEmail == "" {
		return form, nil, nil
	}
	if rec := form.Recipient(recipientEmail); rec != nil {
		return form, rec, nil
	}
	return form, &models.Recipient{
		Email:           recipientEmail,
		Type:            models.RecipientCandidate,
		CompletedFields: []models.AnsweredField{},
	}, nil
}

// Submit replaces the recipient's answer set. Answers are filtered to those
// the evaluator considers filled, except checkbox answers, which are kept
// regardless of value: false is a meaningful checkbox answer. Answers whose
// id matches no schema field are dropped, never created.
//
// When every schema field is covered, CompletedAt is stamped. The stamp is
// one-way: later partial edits do not clear it.
func (s *Service) Submit(ctx context.Context, token, recipientEmail string, answers []models.AnsweredField) (*models.Recipient, progress.Progress, error) {
	recipientEmail = strings.TrimSpace(recipientEmail)
	if recipientEmail == "" {
		return nil, progress.Progress{}, domainerrors.New(domainerrors.CodeBadRequest, "recipient email is required")
	}

	form, err := s.findForm(ctx, token)
	if err != nil {
		return nil, progress.Progress{}, err
	}

	rec := form.Recipient(recipientEmail)
	if rec == nil {
		// Tolerate recipients who were not on the original distribution
		// list: their submission creates a fresh candidate row.
		rec = &models.Recipient{
			Name:  email.DeriveDisplayName(recipientEmail),
			Email: recipientEmail,
			Type:  models.RecipientCandidate,
		}
	}

	rec.CompletedFields = filterAnswers(form, answers)

	p := progress.Compute(form.Fields, rec)
	completedNow := false
	if rec.CompletedAt == nil && p.Total > 0 && p.Completed == p.Total {
		now := s.clock()
		rec.CompletedAt = &now
		completedNow = true
	}

	if err := s.store.UpsertRecipient(ctx, token, *rec); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, progress.Progress{}, domainerrors.New(domainerrors.CodeNotFound, "form not found")
		}
		return nil, progress.Progress{}, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to save submission")
	}

	event := notify.SubmissionReceivedEvent{
		Token:          token,
		FormTitle:      form.Title,
		RecipientEmail: recipientEmail,
		Completed:      rec.CompletedAt != nil,
		ReceivedAt:     s.clock(),
	}
	if err := s.notifier.SubmissionReceived(ctx, event); err != nil {
		s.countNotifyFailure()
		s.logger.WarnContext(ctx, "submission notification failed",
			"token", token,
			"recipient", recipientEmail,
			"error", err,
		)
	}

	s.emitAudit(ctx, audit.Event{Action: audit.ActionFormSubmitted, Token: token, Email: recipientEmail})
	if completedNow {
		s.emitAudit(ctx, audit.Event{Action: audit.ActionFormCompleted, Token: token, Email: recipientEmail})
		if s.metrics != nil {
			s.metrics.CompletionsStamped.Inc()
		}
	}
	if s.metrics != nil {
		s.metrics.SubmissionsAccepted.Inc()
	}

	// Recompute so the returned status reflects the stamp.
	return rec, progress.Compute(form.Fields, rec), nil
}

// FormsByRecipient lists every form whose distribution list contains the
// email, newest first.
func (s *Service) FormsByRecipient(ctx context.Context, recipientEmail string) ([]*models.FormSchema, error) {
	forms, err := s.store.ListByRecipient(ctx, recipientEmail)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to list forms")
	}
	return forms, nil
}

func (s *Service) findForm(ctx context.Context, token string) (*models.FormSchema, error) {
	form, err := s.store.FindByToken(ctx, token)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, domainerrors.New(domainerrors.CodeNotFound, "form not found")
	}
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to load form")
	}
	return form, nil
}

// filterAnswers keeps answers the evaluator considers filled, snapshotting
// the schema label so display survives later relabels. Checkbox answers
// are always kept; dangling ids are dropped.
func filterAnswers(form *models.FormSchema, answers []models.AnsweredField) []models.AnsweredField {
	out := make([]models.AnsweredField, 0, len(answers))
	for _, a := range answers {
		field := form.Field(a.ID)
		if field == nil {
			continue
		}
		a.Kind = field.Kind
		a.Label = field.Label
		if field.Kind == catalog.KindCheckbox || fillstate.IsFilled(field.Kind, a.Value) {
			out = append(out, a)
		}
	}
	return out
}

func (s *Service) recipientLink(token, recipientEmail string) string {
	return fmt.Sprintf("%s/onboarding/form/%s?email=%s", s.baseURL, token, url.QueryEscape(recipientEmail))
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.audit == nil {
		return
	}
	event.RequestID = middleware.GetRequestID(ctx)
	if err := s.audit.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", string(event.Action), "error", err)
	}
}

func (s *Service) countNotifyFailure() {
	if s.metrics != nil {
		s.metrics.NotifyFailures.Inc()
	}
}
