// Package draft is the recipient-side scratch storage that lets an
// in-progress submission survive a page reload before the next sync to the
// server. Entries are scoped to one (token, email) pair and reconciled with
// server truth on load: server-confirmed answers win, the draft only fills
// gaps the server has no record of.
package draft

import (
	"context"
	"time"

	"onboard/internal/onboarding/catalog"
	"onboard/internal/onboarding/models"
	"onboard/internal/onboarding/progress"
)

// Entry is one cached draft: raw field values keyed by field id.
type Entry struct {
	Values  map[string]any `json:"values"`
	SavedAt time.Time      `json:"savedAt"`
}

// Cache stores draft entries. Implementations return sentinel.ErrNotFound
// from Get when no draft exists.
type Cache interface {
	Put(ctx context.Context, token, email string, entry Entry) error
	Get(ctx context.Context, token, email string) (Entry, error)
	Delete(ctx context.Context, token, email string) error
}

// Sanitize prepares values for caching. A raw file reference cannot be
// serialized, so file-like fields degrade to their filename string; values
// that cannot degrade are dropped.
func Sanitize(fields []models.FieldInstance, values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	kinds := make(map[string]catalog.Kind, len(fields))
	for _, f := range fields {
		kinds[f.ID] = f.Kind
	}

	for id, v := range values {
		kind, known := kinds[id]
		if known && (kind == catalog.KindFile || kind == catalog.KindImage) {
			switch fv := v.(type) {
			case string:
				out[id] = fv
			case map[string]any:
				if name, ok := fv["name"].(string); ok {
					out[id] = name
				}
			}
			continue
		}
		out[id] = v
	}
	return out
}

// Reconcile overlays server-confirmed answers on the cached draft. The
// result starts from the draft and then takes every server answer verbatim,
// so the draft only survives where the server has no record.
func Reconcile(serverAnswers []models.AnsweredField, cached map[string]any) map[string]any {
	out := make(map[string]any, len(cached)+len(serverAnswers))
	for id, v := range cached {
		out[id] = v
	}
	for _, a := range serverAnswers {
		out[a.ID] = a.Value
	}
	return out
}

// ClearIfComplete drops the cached draft once the recipient's submission is
// fully complete; otherwise it leaves the draft in place for retry.
func ClearIfComplete(ctx context.Context, cache Cache, token, email string, p progress.Progress) error {
	if p.Total == 0 || p.Completed < p.Total {
		return nil
	}
	return cache.Delete(ctx, token, email)
}
