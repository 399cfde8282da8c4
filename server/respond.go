package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/seedvault/seedvault/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Err(err).Msg("Failed to encode response body")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeErrorFromErr maps the error taxonomy onto HTTP statuses. Anything
// unrecognised is an internal error; its detail stays in the log, not the
// response.
func writeErrorFromErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errors.ErrAuthenticationRequired),
		errors.Is(err, errors.ErrSessionNotFound),
		errors.Is(err, errors.ErrSessionExpired),
		errors.Is(err, errors.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, errors.ErrCsrfTokenMissing),
		errors.Is(err, errors.ErrCsrfTokenInvalid),
		errors.Is(err, errors.ErrAuthorizationDenied):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, errors.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, errors.ErrValidationFailed),
		errors.Is(err, errors.ErrInvalidOperation),
		errors.Is(err, errors.ErrNotImpersonating),
		errors.Is(err, errors.ErrDataCorruption),
		errors.Is(err, errors.ErrDuplicateEmail):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Err(err).Msg("Unhandled error in request")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSONBody(r *http.Request, dest any) error {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return errors.Wrapf(errors.ErrValidationFailed, "invalid request body")
	}
	return nil
}
