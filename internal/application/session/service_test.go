package session

import (
	"errors"
	"testing"

	"github.com/ray-auth-api/internal/domain"
	jwtinfra "github.com/ray-auth-api/internal/infrastructure/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockVerifier struct{ mock.Mock }

func (m *mockVerifier) Verify(token string) (*jwtinfra.Claims, error) {
	args := m.Called(token)
	if c, _ := args.Get(0).(*jwtinfra.Claims); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestIsAuthenticated_ValidToken(t *testing.T) {
	v := &mockVerifier{}
	v.On("Verify", "good").Return(&jwtinfra.Claims{AccountID: "a1"}, nil)

	svc := NewService(v)
	assert.True(t, svc.IsAuthenticated("good"))
}

func TestIsAuthenticated_InvalidToken(t *testing.T) {
	v := &mockVerifier{}
	v.On("Verify", "bad").Return(nil, errors.New("token is expired"))

	svc := NewService(v)
	assert.False(t, svc.IsAuthenticated("bad"))
}

func TestIsAuthenticated_EmptyToken(t *testing.T) {
	svc := NewService(&mockVerifier{})
	assert.False(t, svc.IsAuthenticated(""))
}

func TestIdentity_ReturnsAccountID(t *testing.T) {
	v := &mockVerifier{}
	v.On("Verify", "good").Return(&jwtinfra.Claims{AccountID: "a1"}, nil)

	svc := NewService(v)
	accountID, err := svc.Identity("good")
	require.NoError(t, err)
	assert.Equal(t, "a1", accountID)
}

func TestIdentity_InvalidToken_CollapsesError(t *testing.T) {
	v := &mockVerifier{}
	v.On("Verify", "bad").Return(nil, errors.New("signature is invalid"))

	svc := NewService(v)
	_, err := svc.Identity("bad")
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))
}

func TestLogout_Idempotent(t *testing.T) {
	svc := NewService(&mockVerifier{})
	// Logout never fails, with or without a valid credential.
	require.NoError(t, svc.Logout("whatever"))
	require.NoError(t, svc.Logout("whatever"))
	require.NoError(t, svc.Logout(""))
}

func TestLogout_ThenIsAuthenticated_WithDiscardedToken(t *testing.T) {
	v := &mockVerifier{}
	svc := NewService(v)
	require.NoError(t, svc.Logout("tok"))
	// The client discards the cookie; the empty credential no longer authenticates.
	assert.False(t, svc.IsAuthenticated(""))
}
