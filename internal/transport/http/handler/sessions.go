package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ray-auth-api/internal/application/account"
	"github.com/ray-auth-api/internal/application/session"
	"github.com/ray-auth-api/internal/domain"
)

// SessionHandler handles login, logout and session-status endpoints.
type SessionHandler struct {
	accounts account.Service
	sessions session.Service
	cookies  CookiePolicy
}

func NewSessionHandler(accounts account.Service, sessions session.Service, cookies CookiePolicy) *SessionHandler {
	return &SessionHandler{accounts: accounts, sessions: sessions, cookies: cookies}
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	_, token, err := h.accounts.Login(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	http.SetCookie(w, h.cookies.Issue(token))
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "login successful"})
}

// Logout clears the session cookie. It is public and idempotent: a request
// without a valid credential still succeeds.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := ""
	if c, err := r.Cookie(SessionCookieName); err == nil {
		token = c.Value
	}
	_ = h.sessions.Logout(token)
	http.SetCookie(w, h.cookies.Clear())
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "logged out successfully"})
}

// Status reports whether the caller holds a valid session credential. It is
// public and never mutates state: an invalid or absent credential yields
// authenticated=false, not an error.
func (h *SessionHandler) Status(w http.ResponseWriter, r *http.Request) {
	token := ""
	if c, err := r.Cookie(SessionCookieName); err == nil {
		token = c.Value
	}
	if !h.sessions.IsAuthenticated(token) {
		writeJSON(w, http.StatusOK, SessionEnvelope{Authenticated: false})
		return
	}
	accountID, err := h.sessions.Identity(token)
	if err != nil {
		writeJSON(w, http.StatusOK, SessionEnvelope{Authenticated: false})
		return
	}
	writeJSON(w, http.StatusOK, SessionEnvelope{Authenticated: true, AccountID: accountID})
}
