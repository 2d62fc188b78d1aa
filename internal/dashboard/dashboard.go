// Package dashboard builds the aggregate views behind the portal landing
// pages: a per-person overview and a periodically refreshed fleet snapshot.
package dashboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"onboard/internal/onboarding/models"
	"onboard/internal/onboarding/progress"
	"onboard/internal/people"
	"onboard/pkg/domainerrors"
)

// FormStore is the read side of the onboarding store the dashboard needs.
type FormStore interface {
	ListByRecipient(ctx context.Context, email string) ([]*models.FormSchema, error)
	ListForms(ctx context.Context) ([]*models.FormSchema, error)
}

// PersonResolver looks up directory records by email.
type PersonResolver interface {
	Resolve(ctx context.Context, email string) (*people.Person, error)
}

// FormSummary is one row in the overview's form list.
type FormSummary struct {
	Token     string            `json:"token"`
	Title     string            `json:"title"`
	CreatedAt time.Time         `json:"createdAt"`
	Progress  progress.Progress `json:"progress"`
}

// Overview is everything one person's dashboard needs in a single response.
type Overview struct {
	Email   string            `json:"email"`
	Person  *people.Person    `json:"person,omitempty"`
	Buckets progress.Buckets  `json:"buckets"`
	Forms   []FormSummary     `json:"forms"`
}

// Service composes per-person overviews from the form store and the people
// directory.
type Service struct {
	forms  FormStore
	people PersonResolver
	logger *slog.Logger
}

func NewService(forms FormStore, resolver PersonResolver, logger *slog.Logger) *Service {
	return &Service{forms: forms, people: resolver, logger: logger}
}

// Overview fetches the person record and the form list concurrently; the
// directory lookup is optional and yields a nil Person when absent.
func (s *Service) Overview(ctx context.Context, email string) (*Overview, error) {
	if email == "" {
		return nil, domainerrors.New(domainerrors.CodeBadRequest, "email is required")
	}

	var (
		forms  []*models.FormSchema
		person *people.Person
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		forms, err = s.forms.ListByRecipient(gctx, email)
		return err
	})
	g.Go(func() error {
		if s.people == nil {
			return nil
		}
		var err error
		person, err = s.people.Resolve(gctx, email)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to build overview")
	}

	out := &Overview{
		Email:   email,
		Person:  person,
		Buckets: progress.Bucket(forms, email),
		Forms:   make([]FormSummary, 0, len(forms)),
	}
	for _, form := range forms {
		out.Forms = append(out.Forms, FormSummary{
			Token:     form.Token,
			Title:     form.Title,
			CreatedAt: form.CreatedAt,
			Progress:  progress.Compute(form.Fields, form.Recipient(email)),
		})
	}
	return out, nil
}

// FleetSnapshot is the admin-wide rollup the feed refreshes on a timer.
type FleetSnapshot struct {
	TotalForms      int       `json:"totalForms"`
	TotalRecipients int       `json:"totalRecipients"`
	Completed       int       `json:"completed"`
	InProgress      int       `json:"inProgress"`
	NotStarted      int       `json:"notStarted"`
	RefreshedAt     time.Time `json:"refreshedAt"`
}

// Feed recomputes the fleet snapshot on an interval so the admin dashboard
// can poll a cheap pre-aggregated endpoint instead of scanning every form
// per request.
type Feed struct {
	forms    FormStore
	logger   *slog.Logger
	interval time.Duration
	clock    func() time.Time

	mu       sync.RWMutex
	snapshot FleetSnapshot
}

func NewFeed(forms FormStore, logger *slog.Logger, interval time.Duration) *Feed {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &Feed{
		forms:    forms,
		logger:   logger,
		interval: interval,
		clock:    time.Now,
	}
}

// Run refreshes immediately, then on every tick until ctx is cancelled.
func (f *Feed) Run(ctx context.Context) {
	f.refresh(ctx)
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.refresh(ctx)
		}
	}
}

// Snapshot returns the latest rollup. The zero snapshot is returned before
// the first refresh completes.
func (f *Feed) Snapshot() FleetSnapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.snapshot
}

func (f *Feed) refresh(ctx context.Context) {
	forms, err := f.forms.ListForms(ctx)
	if err != nil {
		f.logger.WarnContext(ctx, "dashboard feed refresh failed", "error", err)
		return
	}

	snap := FleetSnapshot{TotalForms: len(forms), RefreshedAt: f.clock()}
	for _, form := range forms {
		for i := range form.Recipients {
			snap.TotalRecipients++
			p := progress.Compute(form.Fields, &form.Recipients[i])
			switch p.Status {
			case progress.StatusCompleted:
				snap.Completed++
			case progress.StatusInProgress:
				snap.InProgress++
			default:
				snap.NotStarted++
			}
		}
	}

	f.mu.Lock()
	f.snapshot = snap
	f.mu.Unlock()
}
