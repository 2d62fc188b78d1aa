// Package shared centralizes the JSON envelope and domain error translation
// used by every handler, so transport concerns stay in one place.
package shared

import (
	"encoding/json"
	"net/http"

	"onboard/pkg/domainerrors"
)

// WriteJSON encodes payload with the given status.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteError translates a domain error into the standard failure envelope.
func WriteError(w http.ResponseWriter, err error) {
	code := domainerrors.CodeOf(err)
	WriteJSON(w, domainerrors.ToHTTPStatus(code), map[string]any{
		"success": false,
		"error":   string(code),
		"message": domainerrors.MessageOf(err),
	})
}
