package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	mlog "github.com/BrandonDHaskell/makerspace-crm/internal/log"
	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/service"
	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/store"
	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/types"
	"github.com/BrandonDHaskell/makerspace-crm/internal/makerspace/volunteer"
)

const maxJSONBody = 64 << 10

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	writeJSON(w, status, types.ErrorResponse{Error: code, Detail: detail})
}

// decodeJSON reads a single JSON object, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return false
	}
	return true
}

// pathID parses a positive integer URL parameter, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_id", name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

type errorMapping struct {
	target error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{service.ErrInvalidInput, http.StatusBadRequest, "invalid_request"},
	{service.ErrInvalidAction, http.StatusBadRequest, "invalid_action"},
	{volunteer.ErrInvalidRange, http.StatusBadRequest, "invalid_range"},
	{volunteer.ErrTooManyEvents, http.StatusUnprocessableEntity, "too_many_events"},
	{service.ErrUnknownCard, http.StatusUnprocessableEntity, "unknown_card"},
	{store.ErrInvalidReference, http.StatusUnprocessableEntity, "invalid_reference"},
	{service.ErrDeleted, http.StatusNotFound, "deleted"},
	{store.ErrNotFound, http.StatusNotFound, "not_found"},
	{service.ErrHidden, http.StatusForbidden, "hidden"},
	{service.ErrNotEditable, http.StatusForbidden, "not_editable"},
	{store.ErrConflict, http.StatusConflict, "conflict"},
}

// writeServiceError maps domain errors onto HTTP statuses. Anything
// unrecognised is logged and reported as a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger zerolog.Logger, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			writeError(w, m.status, m.code, err.Error())
			return
		}
	}
	mlog.WithContext(r.Context(), logger).Error().Err(err).
		Str(mlog.FieldMethod, r.Method).Str(mlog.FieldPath, r.URL.Path).
		Msg("request failed")
	writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
}
