// Package models holds the onboarding form data model. A FormSchema is
// created once at send time and is structurally immutable afterwards; only
// per-recipient answer state changes.
package models

import (
	"time"

	"onboard/internal/onboarding/catalog"
)

// RecipientType classifies which portal a recipient belongs to.
type RecipientType string

const (
	RecipientCandidate RecipientType = "candidate"
	RecipientEmployee  RecipientType = "employee"
	RecipientClient    RecipientType = "client"
)

// FieldInstance is one question within a form, bound to a catalog kind.
// ID is stable across schema edits so submitted answers can be matched back
// to their definition even after reordering.
type FieldInstance struct {
	ID       string       `json:"id"`
	Kind     catalog.Kind `json:"type"`
	Label    string       `json:"label"`
	Required bool         `json:"required"`
	Options  []string     `json:"options,omitempty"`
	Value    any          `json:"value,omitempty"`
}

// AnsweredField is one recipient's recorded value for one FieldInstance.
// Label is snapshotted at submission time so answers stay displayable even
// if the schema's label later changes.
type AnsweredField struct {
	ID    string       `json:"id"`
	Label string       `json:"label"`
	Kind  catalog.Kind `json:"type"`
	Value any          `json:"value"`
}

// Recipient is one person assigned to answer a form. Email is the unique
// key within a form; the same email identifies the person across the
// candidate/employee/client directories, so there is no foreign key here.
type Recipient struct {
	Name            string          `json:"name,omitempty"`
	Email           string          `json:"email"`
	Type            RecipientType   `json:"type"`
	CompletedFields []AnsweredField `json:"completedFields"`
	// CompletedAt is a one-way stamp: set the first time a submission
	// covers every schema field, never cleared by later partial edits.
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Answer returns the recipient's answer for a field id.
func (r *Recipient) Answer(id string) (AnsweredField, bool) {
	for _, a := range r.CompletedFields {
		if a.ID == id {
			return a, true
		}
	}
	return AnsweredField{}, false
}

// AnswerValue returns the raw value for a field id, or nil when unanswered.
func (r *Recipient) AnswerValue(id string) any {
	if a, ok := r.Answer(id); ok {
		return a.Value
	}
	return nil
}

// FormSchema is one distributed onboarding questionnaire, identified by a
// server-issued token.
type FormSchema struct {
	Token      string          `json:"token"`
	Title      string          `json:"title"`
	Fields     []FieldInstance `json:"fields"`
	Recipients []Recipient     `json:"recipients"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// Recipient finds the recipient with the given email, or nil. Matching is
// exact: links carry the email verbatim as it was entered at send time.
func (f *FormSchema) Recipient(email string) *Recipient {
	for i := range f.Recipients {
		if f.Recipients[i].Email == email {
			return &f.Recipients[i]
		}
	}
	return nil
}

// Field finds the field instance with the given id, or nil.
func (f *FormSchema) Field(id string) *FieldInstance {
	for i := range f.Fields {
		if f.Fields[i].ID == id {
			return &f.Fields[i]
		}
	}
	return nil
}

// Clone deep-copies the schema so stores can hand out snapshots without
// aliasing their internal state.
func (f *FormSchema) Clone() *FormSchema {
	out := *f
	out.Fields = make([]FieldInstance, len(f.Fields))
	copy(out.Fields, f.Fields)
	for i := range out.Fields {
		out.Fields[i].Options = append([]string(nil), f.Fields[i].Options...)
	}
	out.Recipients = make([]Recipient, len(f.Recipients))
	for i, r := range f.Recipients {
		out.Recipients[i] = r
		out.Recipients[i].CompletedFields = append([]AnsweredField(nil), r.CompletedFields...)
		if r.CompletedAt != nil {
			ts := *r.CompletedAt
			out.Recipients[i].CompletedAt = &ts
		}
	}
	return &out
}
