package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ray-auth-api/internal/application/verification"
	"github.com/ray-auth-api/internal/domain"
)

// PasswordResetHandler handles the password reset OTP flow. Both endpoints
// are public: the caller proves identity with the mailed OTP.
type PasswordResetHandler struct {
	svc verification.Service
}

func NewPasswordResetHandler(svc verification.Service) *PasswordResetHandler {
	return &PasswordResetHandler{svc: svc}
}

func (h *PasswordResetHandler) Action(w http.ResponseWriter, r *http.Request) {
	switch chi.URLParam(r, "action") {
	case "request":
		var body struct {
			Email string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" {
			writeError(w, http.StatusBadRequest, "email is required")
			return
		}
		err := h.svc.RequestPasswordReset(r.Context(), body.Email)
		if errors.Is(err, domain.ErrAccountNotFound) {
			// Respond as if the OTP was sent so the endpoint cannot be used
			// to probe which addresses are registered.
			slog.Info("password reset requested for unknown email")
			writeJSON(w, http.StatusOK, MessageEnvelope{Message: "OTP sent to your email"})
			return
		}
		if err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: "OTP sent to your email"})
	case "confirm":
		var body struct {
			Email       string `json:"email"`
			OTP         string `json:"otp"`
			NewPassword string `json:"new_password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if body.Email == "" || body.OTP == "" || body.NewPassword == "" {
			writeError(w, http.StatusBadRequest, "email, otp and new_password are required")
			return
		}
		if err := h.svc.ConfirmPasswordReset(r.Context(), body.Email, body.OTP, body.NewPassword); err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: "password has been reset successfully"})
	default:
		writeError(w, http.StatusBadRequest, "unknown action")
	}
}
