package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ray-auth-api/internal/application/verification"
	"github.com/ray-auth-api/internal/transport/http/middleware"
)

// EmailVerifyHandler handles the email verification OTP flow.
type EmailVerifyHandler struct {
	svc verification.Service
}

func NewEmailVerifyHandler(svc verification.Service) *EmailVerifyHandler {
	return &EmailVerifyHandler{svc: svc}
}

func (h *EmailVerifyHandler) Action(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	switch chi.URLParam(r, "action") {
	case "request":
		if err := h.svc.RequestEmailVerification(r.Context(), claims.AccountID); err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: "verification OTP sent on email"})
	case "confirm":
		var body struct {
			OTP string `json:"otp"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := h.svc.ConfirmEmailVerification(r.Context(), claims.AccountID, body.OTP); err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: "email verified successfully"})
	default:
		writeError(w, http.StatusBadRequest, "unknown action")
	}
}
