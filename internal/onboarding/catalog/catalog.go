// Package catalog is the static registry of field types an onboarding form
// can be composed from. The table is fixed at compile time; the builder and
// the fill-state evaluator both key off it.
package catalog

// Kind identifies one of the supported field variants.
type Kind string

const (
	KindText        Kind = "text"
	KindTextarea    Kind = "textarea"
	KindNumber      Kind = "number"
	KindCurrency    Kind = "currency"
	KindDecimal     Kind = "decimal"
	KindDate        Kind = "date"
	KindDatetime    Kind = "datetime"
	KindEmail       Kind = "email"
	KindPhone       Kind = "phone"
	KindURL         Kind = "url"
	KindFile        Kind = "file"
	KindImage       Kind = "image"
	KindCheckbox    Kind = "checkbox"
	KindDropdown    Kind = "dropdown"
	KindRadio       Kind = "radio"
	KindMultiselect Kind = "multiselect"
	KindDecision    Kind = "decision"
	KindCountry     Kind = "country"
	KindGender      Kind = "gender"
	KindBlood       Kind = "blood"
	KindLookup      Kind = "lookup"
	KindNotes       Kind = "notes"
	KindFormula     Kind = "formula"
)

// Entry describes one catalog row as shown in the builder palette.
type Entry struct {
	Kind         Kind   `json:"kind"`
	DisplayLabel string `json:"displayLabel"`
	Icon         string `json:"icon"`
}

// entries is the authoring-order palette. Order matters: it drives the
// builder panel display.
var entries = []Entry{
	{KindText, "Text", "type"},
	{KindTextarea, "Long Text", "align-left"},
	{KindNumber, "Number", "hash"},
	{KindCurrency, "Currency", "dollar-sign"},
	{KindDecimal, "Decimal", "percent"},
	{KindDate, "Date", "calendar"},
	{KindDatetime, "Date & Time", "clock"},
	{KindEmail, "Email", "mail"},
	{KindPhone, "Phone", "phone"},
	{KindURL, "Website", "link"},
	{KindFile, "File Upload", "paperclip"},
	{KindImage, "Image Upload", "image"},
	{KindCheckbox, "Checkbox", "check-square"},
	{KindDropdown, "Dropdown", "chevron-down"},
	{KindRadio, "Radio Group", "circle"},
	{KindMultiselect, "Multi Select", "list"},
	{KindDecision, "Decision", "git-branch"},
	{KindCountry, "Country", "globe"},
	{KindGender, "Gender", "users"},
	{KindBlood, "Blood Group", "droplet"},
	{KindLookup, "Lookup", "search"},
	{KindNotes, "Notes", "file-text"},
	{KindFormula, "Formula", "function"},
}

// List returns the palette in display order. Callers must not mutate the
// returned slice.
func List() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Valid reports whether k names a known field kind.
func Valid(k Kind) bool {
	for _, e := range entries {
		if e.Kind == k {
			return true
		}
	}
	return false
}

// DefaultLabel returns the palette display label for k, falling back to the
// raw kind string for unknown kinds.
func DefaultLabel(k Kind) string {
	for _, e := range entries {
		if e.Kind == k {
			return e.DisplayLabel
		}
	}
	return string(k)
}

// HasOptions reports whether fields of this kind carry an editable option
// set.
func HasOptions(k Kind) bool {
	switch k {
	case KindDropdown, KindRadio, KindMultiselect, KindDecision:
		return true
	}
	return false
}

// DefaultValue returns the zero answer for a freshly created field of kind
// k: false for checkbox-like kinds, nil for file-like kinds, an empty slice
// for multiselect, an empty string for everything else.
func DefaultValue(k Kind) any {
	switch k {
	case KindCheckbox:
		return false
	case KindFile, KindImage:
		return nil
	case KindMultiselect:
		return []string{}
	default:
		return ""
	}
}

// Bundled option sets for the enumerated kinds. These ship with the catalog
// rather than being configured per form.
var (
	BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

	Genders = []string{"Male", "Female", "Non-binary", "Prefer not to say"}

	Countries = []string{
		"Australia", "Brazil", "Canada", "China", "France", "Germany",
		"India", "Indonesia", "Italy", "Japan", "Mexico", "Netherlands",
		"New Zealand", "Nigeria", "Philippines", "Singapore", "South Africa",
		"South Korea", "Spain", "Sweden", "Switzerland", "United Arab Emirates",
		"United Kingdom", "United States",
	}
)
