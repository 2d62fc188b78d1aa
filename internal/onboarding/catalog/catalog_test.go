package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	got := List()
	require.Len(t, got, 23)

	t.Run("every entry has a label and icon", func(t *testing.T) {
		for _, e := range got {
			assert.NotEmpty(t, e.DisplayLabel, "kind %s", e.Kind)
			assert.NotEmpty(t, e.Icon, "kind %s", e.Kind)
		}
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		got[0].DisplayLabel = "mutated"
		assert.Equal(t, "Text", List()[0].DisplayLabel)
	})
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(KindText))
	assert.True(t, Valid(KindFormula))
	assert.False(t, Valid(Kind("wysiwyg")))
	assert.False(t, Valid(Kind("")))
}

func TestDefaultValue(t *testing.T) {
	assert.Equal(t, false, DefaultValue(KindCheckbox))
	assert.Nil(t, DefaultValue(KindFile))
	assert.Nil(t, DefaultValue(KindImage))
	assert.Equal(t, []string{}, DefaultValue(KindMultiselect))
	assert.Equal(t, "", DefaultValue(KindText))
	assert.Equal(t, "", DefaultValue(KindDecision))
	assert.Equal(t, "", DefaultValue(KindNumber))
}

func TestHasOptions(t *testing.T) {
	for _, k := range []Kind{KindDropdown, KindRadio, KindMultiselect, KindDecision} {
		assert.True(t, HasOptions(k), "kind %s", k)
	}
	for _, k := range []Kind{KindText, KindCountry, KindGender, KindBlood, KindCheckbox} {
		assert.False(t, HasOptions(k), "kind %s", k)
	}
}

func TestDefaultLabel(t *testing.T) {
	assert.Equal(t, "Blood Group", DefaultLabel(KindBlood))
	assert.Equal(t, "mystery", DefaultLabel(Kind("mystery")))
}
