package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"onboard/internal/onboarding/catalog"
	"onboard/internal/onboarding/models"
)

func requiredFourFieldSchema() []models.FieldInstance {
	return []models.FieldInstance{
		{ID: "text-1", Kind: catalog.KindText, Label: "Name", Required: true},
		{ID: "checkbox-2", Kind: catalog.KindCheckbox, Label: "NDA signed", Required: true},
		{ID: "number-3", Kind: catalog.KindNumber, Label: "Years of experience", Required: true},
		{ID: "multiselect-4", Kind: catalog.KindMultiselect, Label: "Skills", Required: true, Options: []string{"a", "b"}},
	}
}

func TestComputePartialSubmission(t *testing.T) {
	rec := &models.Recipient{
		Email: "jane@example.com",
		CompletedFields: []models.AnsweredField{
			{ID: "text-1", Kind: catalog.KindText, Value: "Jane"},
			{ID: "checkbox-2", Kind: catalog.KindCheckbox, Value: false},
			{ID: "number-3", Kind: catalog.KindNumber, Value: float64(0)},
		},
	}

	p := Compute(requiredFourFieldSchema(), rec)

	// text counts; the recorded checkbox answer counts even though it is
	// false; number 0 is treated as unanswered.
	assert.Equal(t, 4, p.Total)
	assert.Equal(t, 2, p.Completed)
	assert.Equal(t, 50, p.Percentage)
	assert.Equal(t, StatusInProgress, p.Status)
}

func TestComputeFullSubmission(t *testing.T) {
	now := time.Now()
	rec := &models.Recipient{
		Email: "jane@example.com",
		CompletedFields: []models.AnsweredField{
			{ID: "text-1", Kind: catalog.KindText, Value: "Jane"},
			{ID: "checkbox-2", Kind: catalog.KindCheckbox, Value: true},
			{ID: "number-3", Kind: catalog.KindNumber, Value: float64(5)},
			{ID: "multiselect-4", Kind: catalog.KindMultiselect, Value: []any{"a"}},
		},
		CompletedAt: &now,
	}

	p := Compute(requiredFourFieldSchema(), rec)
	assert.Equal(t, 4, p.Completed)
	assert.Equal(t, 100, p.Percentage)
	assert.Equal(t, StatusCompleted, p.Status)
}

func TestComputeStatus(t *testing.T) {
	fields := requiredFourFieldSchema()

	t.Run("nil recipient is not started", func(t *testing.T) {
		p := Compute(fields, nil)
		assert.Equal(t, StatusNotStarted, p.Status)
		assert.Equal(t, 0, p.Completed)
	})

	t.Run("no answers is not started", func(t *testing.T) {
		p := Compute(fields, &models.Recipient{Email: "x@example.com"})
		assert.Equal(t, StatusNotStarted, p.Status)
	})

	t.Run("100 percent without stamp stays in progress", func(t *testing.T) {
		rec := &models.Recipient{
			Email: "x@example.com",
			CompletedFields: []models.AnsweredField{
				{ID: "text-1", Kind: catalog.KindText, Value: "Jane"},
				{ID: "checkbox-2", Kind: catalog.KindCheckbox, Value: true},
				{ID: "number-3", Kind: catalog.KindNumber, Value: float64(5)},
				{ID: "multiselect-4", Kind: catalog.KindMultiselect, Value: []any{"a"}},
			},
		}
		p := Compute(fields, rec)
		assert.Equal(t, 100, p.Percentage)
		assert.Equal(t, StatusInProgress, p.Status)
	})
}

func TestComputeEmptySchema(t *testing.T) {
	p := Compute(nil, &models.Recipient{Email: "x@example.com"})
	assert.Equal(t, 0, p.Total)
	assert.Equal(t, 0, p.Percentage)
}

func TestComputeDanglingAnswer(t *testing.T) {
	// Answers whose id no longer matches a schema field are tolerated for
	// display but contribute nothing to the counts.
	rec := &models.Recipient{
		Email: "x@example.com",
		CompletedFields: []models.AnsweredField{
			{ID: "ghost-9", Kind: catalog.KindText, Value: "orphan"},
		},
	}
	p := Compute(requiredFourFieldSchema(), rec)
	assert.Equal(t, 0, p.Completed)
	assert.Equal(t, StatusInProgress, p.Status)
}

func TestBucket(t *testing.T) {
	now := time.Now()
	email := "jane@example.com"
	fields := requiredFourFieldSchema()

	completed := &models.FormSchema{
		Token:  "t1",
		Fields: fields,
		Recipients: []models.Recipient{{
			Email: email,
			CompletedFields: []models.AnsweredField{
				{ID: "text-1", Kind: catalog.KindText, Value: "Jane"},
			},
			CompletedAt: &now,
		}},
	}
	inProgress := &models.FormSchema{
		Token:  "t2",
		Fields: fields,
		Recipients: []models.Recipient{{
			Email: email,
			CompletedFields: []models.AnsweredField{
				{ID: "text-1", Kind: catalog.KindText, Value: "Jane"},
			},
		}},
	}
	untouched := &models.FormSchema{
		Token:      "t3",
		Fields:     fields,
		Recipients: []models.Recipient{{Email: email}},
	}

	b := Bucket([]*models.FormSchema{completed, inProgress, untouched}, email)
	assert.Equal(t, 3, b.TotalForms)
	assert.Equal(t, 1, b.Completed)
	assert.Equal(t, 1, b.InProgress)
	assert.Equal(t, 1, b.NotStarted)
	assert.Equal(t, 33, b.OverallPercentage)

	t.Run("no forms", func(t *testing.T) {
		b := Bucket(nil, email)
		assert.Equal(t, 0, b.OverallPercentage)
	})
}
