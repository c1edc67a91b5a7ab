package session

import (
	"fmt"

	"github.com/ray-auth-api/internal/domain"
	jwtinfra "github.com/ray-auth-api/internal/infrastructure/jwt"
)

// Service owns the stateless session credential lifecycle. There is no
// server-side session record: a credential stays valid until its expiry, and
// logout relies on the client discarding the cookie.
type Service interface {
	// IsAuthenticated reports whether the credential is currently valid.
	IsAuthenticated(token string) bool
	// Identity returns the account id the credential was issued for.
	Identity(token string) (string, error)
	// Logout is idempotent and never fails: an absent, invalid or expired
	// credential is treated the same as a valid one. The token itself cannot
	// be revoked server-side; it expires with its bounded validity window.
	Logout(token string) error
}

type tokenVerifier interface {
	Verify(token string) (*jwtinfra.Claims, error)
}

type service struct {
	tokens tokenVerifier
}

func NewService(tokens tokenVerifier) Service {
	return &service{tokens: tokens}
}

func (s *service) IsAuthenticated(token string) bool {
	if token == "" {
		return false
	}
	_, err := s.tokens.Verify(token)
	return err == nil
}

func (s *service) Identity(token string) (string, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return "", fmt.Errorf("verify session credential: %w", domain.ErrInvalidCredentials)
	}
	return claims.AccountID, nil
}

func (s *service) Logout(string) error {
	return nil
}
