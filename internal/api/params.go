package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"agentstudio/internal/store"
)

// PathID parses an integer path parameter. On failure it writes a validation
// error and returns false.
func PathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v := r.PathValue(name)
	id, err := strconv.Atoi(v)
	if err != nil || id <= 0 {
		WriteError(w, http.StatusBadRequest, NewValidationError(
			fmt.Sprintf("invalid %s %q", name, v),
			CorrelationID(r.Context()), nil))
		return 0, false
	}
	return id, true
}

// WriteStoreError maps store sentinel errors to their HTTP status codes.
func WriteStoreError(w http.ResponseWriter, corrID string, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		WriteError(w, http.StatusNotFound, NewNotFoundError(err.Error(), corrID))
	case errors.Is(err, store.ErrConflict):
		WriteError(w, http.StatusConflict, NewConflictError(err.Error(), corrID))
	default:
		WriteError(w, http.StatusInternalServerError, NewInternalError(err.Error(), corrID))
	}
}
