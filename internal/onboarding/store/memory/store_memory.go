// Package memory is the in-memory form store used for development and
// tests. It favors clarity over performance and hands out deep copies so
// callers never alias internal state.
package memory

import (
	"context"
	"sort"
	"sync"

	"onboard/internal/onboarding/models"
	"onboard/pkg/sentinel"
)

type Store struct {
	mu    sync.RWMutex
	forms map[string]*models.FormSchema
}

func New() *Store {
	return &Store{forms: make(map[string]*models.FormSchema)}
}

func (s *Store) SaveForm(_ context.Context, form *models.FormSchema) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.forms[form.Token]; exists {
		return sentinel.ErrConflict
	}
	s.forms[form.Token] = form.Clone()
	return nil
}

func (s *Store) FindByToken(_ context.Context, token string) (*models.FormSchema, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	form, ok := s.forms[token]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return form.Clone(), nil
}

func (s *Store) UpsertRecipient(_ context.Context, token string, rec models.Recipient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	form, ok := s.forms[token]
	if !ok {
		return sentinel.ErrNotFound
	}
	for i := range form.Recipients {
		if form.Recipients[i].Email == rec.Email {
			form.Recipients[i] = rec
			return nil
		}
	}
	form.Recipients = append(form.Recipients, rec)
	return nil
}

func (s *Store) ListByRecipient(_ context.Context, email string) ([]*models.FormSchema, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.FormSchema
	for _, form := range s.forms {
		if form.Recipient(email) != nil {
			out = append(out, form.Clone())
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *Store) ListForms(_ context.Context) ([]*models.FormSchema, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.FormSchema, 0, len(s.forms))
	for _, form := range s.forms {
		out = append(out, form.Clone())
	}
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(forms []*models.FormSchema) {
	sort.Slice(forms, func(i, j int) bool {
		if forms[i].CreatedAt.Equal(forms[j].CreatedAt) {
			return forms[i].Token < forms[j].Token
		}
		return forms[i].CreatedAt.After(forms[j].CreatedAt)
	})
}
