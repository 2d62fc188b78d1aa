package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onboard/internal/onboarding/catalog"
	"onboard/internal/onboarding/models"
)

func TestNewField(t *testing.T) {
	now := time.UnixMilli(1756400000000)

	t.Run("id embeds kind and timestamp", func(t *testing.T) {
		f := NewField(catalog.KindText, now)
		assert.Equal(t, "text-1756400000000", f.ID)
		assert.Equal(t, "Text", f.Label)
		assert.Equal(t, "", f.Value)
		assert.False(t, f.Required)
		assert.Nil(t, f.Options)
	})

	t.Run("checkbox defaults to false", func(t *testing.T) {
		f := NewField(catalog.KindCheckbox, now)
		assert.Equal(t, false, f.Value)
	})

	t.Run("file defaults to nil", func(t *testing.T) {
		f := NewField(catalog.KindFile, now)
		assert.Nil(t, f.Value)
	})

	t.Run("multiselect defaults to empty slice and gets options", func(t *testing.T) {
		f := NewField(catalog.KindMultiselect, now)
		assert.Equal(t, []string{}, f.Value)
		assert.NotNil(t, f.Options)
	})
}

func fourFields() []models.FieldInstance {
	base := time.UnixMilli(1756400000000)
	return []models.FieldInstance{
		NewField(catalog.KindText, base),
		NewField(catalog.KindCheckbox, base.Add(time.Second)),
		NewField(catalog.KindNumber, base.Add(2*time.Second)),
		NewField(catalog.KindMultiselect, base.Add(3*time.Second)),
	}
}

func ids(fields []models.FieldInstance) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.ID
	}
	return out
}

func TestReorder(t *testing.T) {
	t.Run("drag index 0 before index 2", func(t *testing.T) {
		fields := fourFields()
		orig := ids(fields)

		got := Reorder(fields, orig[0], orig[2])
		assert.Equal(t, []string{orig[1], orig[2], orig[0], orig[3]}, ids(got))
	})

	t.Run("drag backwards", func(t *testing.T) {
		fields := fourFields()
		orig := ids(fields)

		got := Reorder(fields, orig[3], orig[0])
		assert.Equal(t, []string{orig[3], orig[0], orig[1], orig[2]}, ids(got))
	})

	t.Run("drag to last position", func(t *testing.T) {
		fields := fourFields()
		orig := ids(fields)

		got := Reorder(fields, orig[0], orig[3])
		assert.Equal(t, []string{orig[1], orig[2], orig[3], orig[0]}, ids(got))
	})

	t.Run("forward drag onto the next field swaps them", func(t *testing.T) {
		fields := fourFields()
		orig := ids(fields)

		got := Reorder(fields, orig[1], orig[2])
		assert.Equal(t, []string{orig[0], orig[2], orig[1], orig[3]}, ids(got))
	})

	t.Run("same id is a no-op", func(t *testing.T) {
		fields := fourFields()
		got := Reorder(fields, fields[1].ID, fields[1].ID)
		assert.Equal(t, ids(fields), ids(got))
	})

	t.Run("absent id is a no-op", func(t *testing.T) {
		fields := fourFields()
		got := Reorder(fields, "ghost-1", fields[0].ID)
		assert.Equal(t, ids(fields), ids(got))
		got = Reorder(fields, fields[0].ID, "ghost-2")
		assert.Equal(t, ids(fields), ids(got))
	})

	t.Run("reorder is a permutation", func(t *testing.T) {
		fields := fourFields()
		orig := ids(fields)
		for _, a := range orig {
			for _, b := range orig {
				got := Reorder(fourFields(), a, b)
				require.Len(t, got, len(orig))
				assert.ElementsMatch(t, orig, ids(got), "drag %s onto %s", a, b)
			}
		}
	})
}

func TestRemove(t *testing.T) {
	fields := fourFields()
	target := fields[2].ID

	once := Remove(fields, target)
	assert.Len(t, once, 3)
	assert.NotContains(t, ids(once), target)

	t.Run("idempotent", func(t *testing.T) {
		twice := Remove(once, target)
		assert.Equal(t, ids(once), ids(twice))
	})
}

func TestOptions(t *testing.T) {
	now := time.UnixMilli(1756400000000)

	t.Run("add and remove", func(t *testing.T) {
		f := NewField(catalog.KindDropdown, now)
		require.True(t, AddOption(&f, "Engineering"))
		require.True(t, AddOption(&f, "Sales"))
		assert.Equal(t, []string{"Engineering", "Sales"}, f.Options)

		RemoveOption(&f, 0)
		assert.Equal(t, []string{"Sales"}, f.Options)
	})

	t.Run("blank option rejected silently", func(t *testing.T) {
		f := NewField(catalog.KindRadio, now)
		assert.False(t, AddOption(&f, ""))
		assert.False(t, AddOption(&f, "   "))
		assert.Empty(t, f.Options)
	})

	t.Run("non-enum kind has no options", func(t *testing.T) {
		f := NewField(catalog.KindText, now)
		assert.False(t, AddOption(&f, "x"))
		SetOptions(&f, []string{"a"})
		assert.Nil(t, f.Options)
	})

	t.Run("remove out of range ignored", func(t *testing.T) {
		f := NewField(catalog.KindDecision, now)
		AddOption(&f, "Yes")
		RemoveOption(&f, 5)
		RemoveOption(&f, -1)
		assert.Equal(t, []string{"Yes"}, f.Options)
	})

	t.Run("set options copies the input", func(t *testing.T) {
		f := NewField(catalog.KindMultiselect, now)
		in := []string{"a", "b"}
		SetOptions(&f, in)
		in[0] = "mutated"
		assert.Equal(t, "a", f.Options[0])
	})
}

func TestRelabel(t *testing.T) {
	f := NewField(catalog.KindText, time.Now())
	Relabel(&f, "Full Name")
	assert.Equal(t, "Full Name", f.Label)

	// Labels are display-only; empty is accepted.
	Relabel(&f, "")
	assert.Equal(t, "", f.Label)
}
