package handler

import (
	"net/http"
	"time"
)

// SessionCookieName is the cookie that carries the signed session credential.
const SessionCookieName = "token"

// CookiePolicy renders the session cookie. In production the cookie is
// Secure with SameSite=None (the original deployment serves the SPA from a
// different origin); everywhere else it is SameSite=Strict.
type CookiePolicy struct {
	Secure bool
	MaxAge time.Duration
}

func (p CookiePolicy) Issue(token string) *http.Cookie {
	c := &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   p.Secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(p.MaxAge.Seconds()),
	}
	if p.Secure {
		c.SameSite = http.SameSiteNoneMode
	}
	return c
}

func (p CookiePolicy) Clear() *http.Cookie {
	c := p.Issue("")
	c.MaxAge = -1
	return c
}
