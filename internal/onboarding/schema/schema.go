// Package schema holds the pure mutations the form builder applies to a
// draft field list before send. All operations are tolerant: absent ids and
// invalid targets are no-ops, never errors.
package schema

import (
	"fmt"
	"strings"
	"time"

	"onboard/internal/onboarding/catalog"
	"onboard/internal/onboarding/models"
)

// NewField creates a field instance of the given kind with its catalog
// default label and zero value. The id embeds the creation timestamp so it
// stays stable and unique across later edits.
func NewField(kind catalog.Kind, now time.Time) models.FieldInstance {
	f := models.FieldInstance{
		ID:    fmt.Sprintf("%s-%d", kind, now.UnixMilli()),
		Kind:  kind,
		Label: catalog.DefaultLabel(kind),
		Value: catalog.DefaultValue(kind),
	}
	if catalog.HasOptions(kind) {
		f.Options = []string{}
	}
	return f
}

// Relabel replaces the field's label. Labels are display-only, so empty and
// duplicate labels are accepted.
func Relabel(f *models.FieldInstance, label string) {
	f.Label = label
}

// Reorder removes the dragged field and reinserts it at the target's
// original index, so a forward drag lands just past the fields that shifted
// left to fill the gap. All other fields keep their relative order. No-op
// when the ids match or either id is absent.
func Reorder(fields []models.FieldInstance, draggedID, targetID string) []models.FieldInstance {
	if draggedID == targetID {
		return fields
	}
	from, to := -1, -1
	for i, f := range fields {
		switch f.ID {
		case draggedID:
			from = i
		case targetID:
			to = i
		}
	}
	if from < 0 || to < 0 {
		return fields
	}

	rest := make([]models.FieldInstance, 0, len(fields)-1)
	rest = append(rest, fields[:from]...)
	rest = append(rest, fields[from+1:]...)

	out := make([]models.FieldInstance, 0, len(fields))
	out = append(out, rest[:to]...)
	out = append(out, fields[from])
	out = append(out, rest[to:]...)
	return out
}

// Remove filters out the field with the given id. Idempotent: removing an
// absent id returns the list unchanged.
func Remove(fields []models.FieldInstance, id string) []models.FieldInstance {
	out := make([]models.FieldInstance, 0, len(fields))
	for _, f := range fields {
		if f.ID != id {
			out = append(out, f)
		}
	}
	return out
}

// SetOptions replaces the option set. Only fields of an enumerated kind
// carry options; for any other kind this is a no-op.
func SetOptions(f *models.FieldInstance, options []string) {
	if !catalog.HasOptions(f.Kind) {
		return
	}
	f.Options = append([]string(nil), options...)
}

// AddOption appends one option. Blank and whitespace-only options are
// silently ignored, as are fields without option sets. Reports whether the
// option was added.
func AddOption(f *models.FieldInstance, option string) bool {
	if !catalog.HasOptions(f.Kind) {
		return false
	}
	if strings.TrimSpace(option) == "" {
		return false
	}
	f.Options = append(f.Options, option)
	return true
}

// RemoveOption deletes the option at index. Out-of-range indexes are
// ignored.
func RemoveOption(f *models.FieldInstance, index int) {
	if index < 0 || index >= len(f.Options) {
		return
	}
	f.Options = append(f.Options[:index], f.Options[index+1:]...)
}
