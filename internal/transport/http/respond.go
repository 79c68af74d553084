package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"parish/internal/domain"
	obsmw "parish/internal/observability/middleware"
	"parish/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

type errBody struct {
	Error string `json:"error"`
}

// writeError maps domain errors onto status codes. Anything unmapped is
// an internal error: logged with the upstream message preserved, but
// surfaced as a generic failure.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	msg := err.Error()

	switch {
	case errors.Is(err, domain.ErrNoSession), errors.Is(err, domain.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrNotOwner):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrMassNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyPaid):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrNoSlots),
		errors.Is(err, domain.ErrWeakPassword),
		errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrInvalidResetToken),
		errors.Is(err, domain.ErrBadSignature),
		errors.Is(err, service.ErrInvalidRequest):
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
		slog.Error("internal error",
			"error", err,
			"path", r.URL.Path,
			"request_id", obsmw.RequestIDFromContext(r.Context()),
		)
		msg = "something went wrong"
	}

	writeJSON(w, status, errBody{Error: msg})
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errBody{Error: "malformed JSON body"})
		return false
	}
	return true
}
