package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"tripsplit/internal/core"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// writeDomainError maps core errors onto HTTP statuses: missing things
// are 404, rejected input is 422, everything else is a 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case isRejection(err):
		writeError(w, http.StatusUnprocessableEntity, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

func isRejection(err error) bool {
	var exact core.ExactSplitMismatchError
	var pct core.PercentageSplitMismatchError
	return errors.Is(err, core.ErrEmptyLabel) ||
		errors.Is(err, core.ErrNonPositiveAmount) ||
		errors.Is(err, core.ErrNoParticipants) ||
		errors.Is(err, core.ErrUnknownPayer) ||
		errors.Is(err, core.ErrUnknownParticipant) ||
		errors.Is(err, core.ErrShareNotParticipant) ||
		errors.Is(err, core.ErrUnknownCurrency) ||
		errors.Is(err, core.ErrParticipantInUse) ||
		errors.Is(err, core.ErrInvalidAmount) ||
		errors.Is(err, core.ErrInvalidParticipant) ||
		errors.Is(err, core.ErrInvalidTrip) ||
		errors.As(err, &exact) ||
		errors.As(err, &pct)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
