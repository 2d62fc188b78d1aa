// Package fillstate owns the single predicate deciding whether an answer
// counts as "provided". Builder preview, submission filtering, progress
// computation and the dashboard all call this one function; it must not be
// duplicated at call sites.
package fillstate

import (
	"reflect"
	"strings"

	"onboard/internal/onboarding/catalog"
)

// IsFilled reports whether value counts as a provided answer for a field of
// the given kind. It is a pure function of (kind, value); values arrive as
// untyped JSON payloads, so numeric answers may be float64, int or string.
//
// Known quirk, kept deliberately: for number/currency/decimal kinds the
// literal zero (numeric 0 or string "0") is treated as "not yet answered",
// not as a valid numeric answer.
func IsFilled(kind catalog.Kind, value any) bool {
	switch kind {
	case catalog.KindCheckbox:
		b, ok := value.(bool)
		return ok && b

	case catalog.KindDecision:
		// A decision stores the chosen option; any non-empty choice counts.
		// A bool true also counts for yes/no decisions recorded as flags.
		switch v := value.(type) {
		case bool:
			return v
		case string:
			return v != ""
		}
		return false

	case catalog.KindFile, catalog.KindImage:
		// Non-string values are pending local upload references; strings
		// are filenames or URLs recorded from a prior submission.
		switch v := value.(type) {
		case nil:
			return false
		case string:
			return strings.TrimSpace(v) != ""
		default:
			return true
		}

	case catalog.KindMultiselect:
		switch v := value.(type) {
		case nil:
			return false
		case []string:
			return len(v) > 0
		case []any:
			return len(v) > 0
		}
		rv := reflect.ValueOf(value)
		return rv.Kind() == reflect.Slice && rv.Len() > 0

	case catalog.KindNumber, catalog.KindCurrency, catalog.KindDecimal:
		switch v := value.(type) {
		case nil:
			return false
		case string:
			t := strings.TrimSpace(v)
			return t != "" && t != "0"
		case float64:
			return v != 0
		case float32:
			return v != 0
		case int:
			return v != 0
		case int64:
			return v != 0
		}
		return true

	default:
		switch v := value.(type) {
		case nil:
			return false
		case string:
			return v != ""
		default:
			return true
		}
	}
}
