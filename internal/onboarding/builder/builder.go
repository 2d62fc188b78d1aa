// Package builder is the authoring session for one form draft. It tracks
// the field list, the distribution list, per-field edit cycles and the two
// drag interactions the canvas supports. The two drags are deliberately
// separate: reordering existing fields and dropping a new field from the
// catalog palette never share state.
package builder

import (
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"onboard/internal/onboarding/catalog"
	"onboard/internal/onboarding/models"
	"onboard/internal/onboarding/schema"
	"onboard/pkg/domainerrors"
)

// SendPayload is the fully-formed body handed to the distribution service.
type SendPayload struct {
	FormTitle  string                 `json:"formTitle"`
	Fields     []models.FieldInstance `json:"fields"`
	Recipients []models.Recipient     `json:"recipients"`
}

// CatalogDropPayload is the serialized payload carried by a palette drag.
type CatalogDropPayload struct {
	Kind  catalog.Kind `json:"kind"`
	Label string       `json:"label"`
}

// Builder mutates a draft schema in authoring order. It is not safe for
// concurrent use; one builder belongs to one authoring session.
type Builder struct {
	logger     *slog.Logger
	clock      func() time.Time
	title      string
	fields     []models.FieldInstance
	recipients []models.Recipient

	// Reorder drag channel: id captured at dragstart, cleared at dragend.
	dragID string

	// Catalog drop channel: visual flag toggled while a palette drag
	// hovers the canvas.
	dropZoneActive bool

	editingLabel   string
	editingOptions string
}

// Option configures a Builder.
type Option func(*Builder)

// WithClock overrides the timestamp source used for field ids.
func WithClock(clock func() time.Time) Option {
	return func(b *Builder) { b.clock = clock }
}

// New creates an empty builder session.
func New(logger *slog.Logger, opts ...Option) *Builder {
	b := &Builder{logger: logger, clock: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Builder) SetTitle(title string) { b.title = title }
func (b *Builder) Title() string         { return b.title }

// Fields returns the draft field list in authoring order.
func (b *Builder) Fields() []models.FieldInstance { return b.fields }

// AddField appends a new field of the given kind to the end of the draft.
func (b *Builder) AddField(kind catalog.Kind) models.FieldInstance {
	f := schema.NewField(kind, b.clock())
	b.fields = append(b.fields, f)
	return f
}

// RemoveField drops a field from the draft; absent ids are ignored.
func (b *Builder) RemoveField(id string) {
	b.fields = schema.Remove(b.fields, id)
}

// SetRequired toggles the required flag on a field.
func (b *Builder) SetRequired(id string, required bool) {
	if f := b.field(id); f != nil {
		f.Required = required
	}
}

// AddRecipient appends a recipient to the distribution list, skipping blank
// emails and duplicates.
func (b *Builder) AddRecipient(r models.Recipient) {
	if strings.TrimSpace(r.Email) == "" {
		return
	}
	for _, existing := range b.recipients {
		if existing.Email == r.Email {
			return
		}
	}
	b.recipients = append(b.recipients, r)
}

// RemoveRecipient drops a recipient by email.
func (b *Builder) RemoveRecipient(email string) {
	out := b.recipients[:0]
	for _, r := range b.recipients {
		if r.Email != email {
			out = append(out, r)
		}
	}
	b.recipients = out
}

func (b *Builder) Recipients() []models.Recipient { return b.recipients }

// BeginLabelEdit enters the label edit cycle for one field.
func (b *Builder) BeginLabelEdit(id string) {
	if b.field(id) != nil {
		b.editingLabel = id
	}
}

// CommitLabel applies the new label and returns to idle. The commit happens
// on blur or Enter; a commit for a field not being edited is ignored.
func (b *Builder) CommitLabel(id, label string) {
	if b.editingLabel != id {
		return
	}
	if f := b.field(id); f != nil {
		schema.Relabel(f, label)
	}
	b.editingLabel = ""
}

// EditingLabel reports which field, if any, is in the label edit cycle.
func (b *Builder) EditingLabel() string { return b.editingLabel }

// BeginOptionsEdit enters the option edit cycle ("Edit Options").
func (b *Builder) BeginOptionsEdit(id string) {
	if f := b.field(id); f != nil && catalog.HasOptions(f.Kind) {
		b.editingOptions = id
	}
}

// EndOptionsEdit returns to idle ("Done").
func (b *Builder) EndOptionsEdit() { b.editingOptions = "" }

// EditingOptions reports which field, if any, is in the option edit cycle.
func (b *Builder) EditingOptions() string { return b.editingOptions }

// AddOption appends an option to a field's option set. Blank options are
// ignored per the schema rules.
func (b *Builder) AddOption(id, option string) {
	if f := b.field(id); f != nil {
		schema.AddOption(f, option)
	}
}

// RemoveOption removes an option by index.
func (b *Builder) RemoveOption(id string, index int) {
	if f := b.field(id); f != nil {
		schema.RemoveOption(f, index)
	}
}

// DragStart begins the reorder drag, capturing the source field id.
func (b *Builder) DragStart(id string) {
	if b.field(id) != nil {
		b.dragID = id
	}
}

// DragOver live-reorders the list on every hover so the canvas reflects the
// drag position before drop, not just after it.
func (b *Builder) DragOver(targetID string) {
	if b.dragID == "" {
		return
	}
	b.fields = schema.Reorder(b.fields, b.dragID, targetID)
}

// DragEnd clears the captured source id.
func (b *Builder) DragEnd() { b.dragID = "" }

// Dragging reports the id captured by the reorder drag, if any.
func (b *Builder) Dragging() string { return b.dragID }

// DragEnterCanvas marks the drop zone active while a palette drag hovers.
func (b *Builder) DragEnterCanvas() { b.dropZoneActive = true }

// DragLeaveCanvas clears the drop zone flag.
func (b *Builder) DragLeaveCanvas() { b.dropZoneActive = false }

// DropZoneActive reports the drop zone visual flag.
func (b *Builder) DropZoneActive() bool { return b.dropZoneActive }

// DropFromCatalog parses a serialized palette payload and appends a new
// field of that kind to the end of the draft. It never inserts at the drop
// position. Malformed payloads are logged and leave the field list
// unchanged.
func (b *Builder) DropFromCatalog(payload []byte) (models.FieldInstance, error) {
	b.dropZoneActive = false

	var drop CatalogDropPayload
	if err := json.Unmarshal(payload, &drop); err != nil {
		b.logger.Warn("discarding malformed catalog drop payload", "error", err)
		return models.FieldInstance{}, domainerrors.Wrap(err, domainerrors.CodeBadRequest, "malformed drag payload")
	}
	if !catalog.Valid(drop.Kind) {
		b.logger.Warn("discarding catalog drop with unknown kind", "kind", string(drop.Kind))
		return models.FieldInstance{}, domainerrors.New(domainerrors.CodeBadRequest, "unknown field kind")
	}

	f := b.AddField(drop.Kind)
	if drop.Label != "" {
		schema.Relabel(b.field(f.ID), drop.Label)
		f.Label = drop.Label
	}
	return f, nil
}

// Payload emits the send-ready body. The empty-recipient check belongs to
// the distribution service; the builder emits whatever the author composed.
func (b *Builder) Payload() SendPayload {
	return SendPayload{
		FormTitle:  b.title,
		Fields:     b.fields,
		Recipients: b.recipients,
	}
}

func (b *Builder) field(id string) *models.FieldInstance {
	for i := range b.fields {
		if b.fields[i].ID == id {
			return &b.fields[i]
		}
	}
	return nil
}
