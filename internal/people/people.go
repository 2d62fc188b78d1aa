// Package people is the directory of candidates, employees and clients the
// portals manage. Recipients reference people by email only; there is no
// foreign key, and nothing here may assume a recipient email resolves.
package people

import (
	"context"
	"errors"
	"strings"
	"time"

	"onboard/pkg/domainerrors"
	"onboard/pkg/sentinel"
)

// Type classifies which directory a person belongs to. The values match
// models.RecipientType on purpose: both sides key off the same vocabulary.
type Type string

const (
	TypeCandidate Type = "candidate"
	TypeEmployee  Type = "employee"
	TypeClient    Type = "client"
)

// Person is one directory record. ResumeRef is an opaque blob reference
// owned by the file-storage collaborator.
type Person struct {
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Type       Type      `json:"type"`
	Phone      string    `json:"phone,omitempty"`
	Department string    `json:"department,omitempty"`
	ResumeRef  string    `json:"resumeRef,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Store persists directory records keyed by email.
type Store interface {
	Upsert(ctx context.Context, person Person) error
	FindByEmail(ctx context.Context, email string) (*Person, error)
	List(ctx context.Context, personType Type) ([]Person, error)
}

// Service wraps the store with validation and the tolerant lookup the
// onboarding flows rely on.
type Service struct {
	store Store
	clock func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, clock: time.Now}
}

// Save validates and upserts one person.
func (s *Service) Save(ctx context.Context, person Person) (*Person, error) {
	person.Email = strings.TrimSpace(person.Email)
	if person.Email == "" {
		return nil, domainerrors.New(domainerrors.CodeBadRequest, "email is required")
	}
	switch person.Type {
	case TypeCandidate, TypeEmployee, TypeClient:
	default:
		return nil, domainerrors.New(domainerrors.CodeBadRequest, "unknown person type")
	}
	if person.CreatedAt.IsZero() {
		person.CreatedAt = s.clock()
	}
	if err := s.store.Upsert(ctx, person); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to save person")
	}
	return &person, nil
}

// Resolve looks a person up by email. A missing record is a fact, not an
// error: recipients may never have been registered, so callers get nil.
func (s *Service) Resolve(ctx context.Context, email string) (*Person, error) {
	person, err := s.store.FindByEmail(ctx, email)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to resolve person")
	}
	return person, nil
}

// List returns the directory for one portal, or every record when
// personType is empty.
func (s *Service) List(ctx context.Context, personType Type) ([]Person, error) {
	out, err := s.store.List(ctx, personType)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to list people")
	}
	return out, nil
}
