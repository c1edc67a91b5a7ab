package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ray-auth-api/internal/application/account"
	"github.com/ray-auth-api/internal/domain"
	"github.com/ray-auth-api/internal/transport/http/middleware"
)

// AccountHandler handles registration and profile endpoints.
type AccountHandler struct {
	svc     account.Service
	cookies CookiePolicy
}

func NewAccountHandler(svc account.Service, cookies CookiePolicy) *AccountHandler {
	return &AccountHandler{svc: svc, cookies: cookies}
}

func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := h.svc.Register(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	http.SetCookie(w, h.cookies.Issue(result.Token))
	env := MessageEnvelope{Message: "account created"}
	if result.MailErr != nil {
		env.Warning = "welcome email could not be sent"
	}
	writeJSON(w, http.StatusCreated, env)
}

func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	a, err := h.svc.Profile(r.Context(), claims.AccountID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ProfileEnvelope{Account: a})
}
