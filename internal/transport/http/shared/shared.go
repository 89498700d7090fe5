// Package shared holds the JSON helpers every handler package uses so error
// envelopes stay identical across the API surface.
package shared

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "registrar/pkg/domain-errors"
)

// ErrorResponse is the JSON error envelope. Reason carries the stable
// machine-readable string clients branch on (e.g. SERVICE_ID_ALREADY_EXISTS).
type ErrorResponse struct {
	Error   string `json:"error"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

// WriteJSON writes v with the given status. Encoding failures are swallowed;
// the status line is already on the wire.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into its HTTP envelope. Non-domain
// errors render as an opaque 500 so internals never leak to clients.
func WriteError(w http.ResponseWriter, err error) {
	var de *dErrors.DomainError
	if !errors.As(err, &de) {
		WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error: string(dErrors.CodeInternal),
		})
		return
	}
	WriteJSON(w, dErrors.ToHTTPStatus(de.Code), ErrorResponse{
		Error:   string(de.Code),
		Reason:  de.Reason,
		Message: de.Message,
	})
}
