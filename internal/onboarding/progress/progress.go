// Package progress rolls per-field fill-state up into per-recipient and
// per-form completion figures for progress bars, status badges and the
// dashboard cards.
package progress

import (
	"math"

	"onboard/internal/onboarding/catalog"
	"onboard/internal/onboarding/fillstate"
	"onboard/internal/onboarding/models"
)

// Status classifies a recipient's overall state on one form.
type Status string

const (
	StatusNotStarted Status = "Not Started"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// Progress is the aggregate consumed by progress bars and status badges.
type Progress struct {
	Total      int    `json:"total"`
	Completed  int    `json:"completed"`
	Percentage int    `json:"percentage"`
	Status     Status `json:"status"`
}

// Compute evaluates a recipient against the schema's field list.
//
// Status is deliberately not derived from Percentage: "Completed" reads the
// CompletedAt stamp, which is set once at submit time and never re-derived.
// A recipient can therefore sit at 100% numeric completion while still
// showing "In Progress" if the stamp was never written.
func Compute(fields []models.FieldInstance, recipient *models.Recipient) Progress {
	p := Progress{Total: len(fields)}

	if recipient != nil {
		for _, f := range fields {
			answer, answered := recipient.Answer(f.ID)
			// A checkbox answer is meaningful either way: false is "no",
			// not "unanswered". Any recorded checkbox answer counts.
			if answered && f.Kind == catalog.KindCheckbox {
				p.Completed++
				continue
			}
			if fillstate.IsFilled(f.Kind, answer.Value) {
				p.Completed++
			}
		}
	}

	p.Percentage = percent(p.Completed, p.Total)

	switch {
	case recipient == nil || len(recipient.CompletedFields) == 0:
		p.Status = StatusNotStarted
	case recipient.CompletedAt != nil:
		p.Status = StatusCompleted
	default:
		p.Status = StatusInProgress
	}
	return p
}

// Buckets is the form-level aggregation across every form assigned to one
// person, used by dashboard cards and list rows.
type Buckets struct {
	TotalForms        int `json:"totalForms"`
	NotStarted        int `json:"notStarted"`
	InProgress        int `json:"inProgress"`
	Completed         int `json:"completed"`
	OverallPercentage int `json:"overallPercentage"`
}

// Bucket classifies each form by the same per-recipient status rule as
// Compute and reports the share of completed forms.
func Bucket(forms []*models.FormSchema, email string) Buckets {
	b := Buckets{TotalForms: len(forms)}
	for _, form := range forms {
		p := Compute(form.Fields, form.Recipient(email))
		switch p.Status {
		case StatusCompleted:
			b.Completed++
		case StatusInProgress:
			b.InProgress++
		default:
			b.NotStarted++
		}
	}
	b.OverallPercentage = percent(b.Completed, b.TotalForms)
	return b
}

func percent(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}
