// Package store defines persistence for distributed forms. Implementations
// return sentinel errors; services translate them into domain errors.
package store

import (
	"context"

	"onboard/internal/onboarding/models"
)

// Store persists form schemas and per-recipient answer state. A schema is
// written once at send time; afterwards only recipient rows change, one
// writer per recipient, last write wins.
type Store interface {
	// SaveForm persists a new schema with its seeded recipients. Returns
	// sentinel.ErrConflict if the token already exists.
	SaveForm(ctx context.Context, form *models.FormSchema) error

	// FindByToken returns the schema with all recipient state. Returns
	// sentinel.ErrNotFound when the token is unknown.
	FindByToken(ctx context.Context, token string) (*models.FormSchema, error)

	// UpsertRecipient replaces the recipient row matching rec.Email within
	// the form, or appends it when the email was not on the distribution
	// list. Returns sentinel.ErrNotFound when the token is unknown.
	UpsertRecipient(ctx context.Context, token string, rec models.Recipient) error

	// ListByRecipient returns every form whose distribution list contains
	// the email, newest first.
	ListByRecipient(ctx context.Context, email string) ([]*models.FormSchema, error)

	// ListForms returns all forms, newest first. Used by the dashboard
	// activity feed, which is read-only.
	ListForms(ctx context.Context) ([]*models.FormSchema, error)
}
