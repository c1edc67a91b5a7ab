package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ray-auth-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Warning string `json:"warning,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ProfileEnvelope wraps account profile responses.
type ProfileEnvelope struct {
	Account *domain.Account `json:"account,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// SessionEnvelope wraps session status responses.
type SessionEnvelope struct {
	Authenticated bool   `json:"authenticated"`
	AccountID     string `json:"account_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// httpError maps a domain error kind to its HTTP status. Anything outside
// the taxonomy (including store failures) becomes an opaque 500; the cause
// is logged server-side only.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrMissingOTP),
		errors.Is(err, domain.ErrInvalidOTP),
		errors.Is(err, domain.ErrOTPExpired):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrAccountNotFound):
		writeError(w, http.StatusNotFound, domain.ErrAccountNotFound.Error())
	case errors.Is(err, domain.ErrDuplicateAccount):
		writeError(w, http.StatusConflict, domain.ErrDuplicateAccount.Error())
	case errors.Is(err, domain.ErrAlreadyVerified):
		writeError(w, http.StatusConflict, domain.ErrAlreadyVerified.Error())
	case errors.Is(err, domain.ErrMailDispatch):
		writeError(w, http.StatusBadGateway, "could not send email")
	default:
		slog.Error("internal error", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
