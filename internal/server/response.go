package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/anmolv/kittysplit/internal/auth"
	"github.com/anmolv/kittysplit/internal/service"
	"github.com/anmolv/kittysplit/internal/storage"
)

// writeJSON encodes a success response.
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError encodes an error response as {"error": "..."} with a status
// code derived from the error's kind. Service-layer sentinels map to
// client errors; anything unrecognized is a 500.
func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotMember):
		code = http.StatusForbidden
	case errors.Is(err, service.ErrOwnerRemoval),
		errors.Is(err, service.ErrInvalidExpense),
		errors.Is(err, service.ErrInvalidMember),
		errors.Is(err, service.ErrInvalidKitty):
		code = http.StatusBadRequest
	case errors.Is(err, service.ErrUnknownTransaction),
		errors.Is(err, storage.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		code = http.StatusUnauthorized
	case errors.Is(err, auth.ErrEmailExists):
		code = http.StatusConflict
	case errors.Is(err, auth.ErrWeakPassword):
		code = http.StatusBadRequest
	}
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

// decode parses a JSON request body into v.
func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// writeBadRequest reports a malformed request body.
func writeBadRequest(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
}
