package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ray-auth-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- mocks ---

type mockAccountStore struct{ mock.Mock }

func (m *mockAccountStore) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if a, _ := args.Get(0).(*domain.Account); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockAccountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if a, _ := args.Get(0).(*domain.Account); a != nil {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockAccountStore) Put(ctx context.Context, a *domain.Account) error {
	return m.Called(ctx, a).Error(0)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(to, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}

type mockSigner struct{ mock.Mock }

func (m *mockSigner) Sign(accountID string) (string, error) {
	args := m.Called(accountID)
	return args.String(0), args.Error(1)
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// --- builder ---

func newService(repo *mockAccountStore, ml *mockMailer, sg *mockSigner) Service {
	return NewService(ServiceDeps{
		Repo:   repo,
		Mailer: ml,
		Tokens: sg,
		Clock:  fixedClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
	})
}

// --- Register ---

func TestRegister_HappyPath(t *testing.T) {
	repo := &mockAccountStore{}
	ml := &mockMailer{}
	sg := &mockSigner{}

	repo.On("GetByEmail", mock.Anything, "alice@x.com").Return(nil, domain.ErrAccountNotFound)
	var stored *domain.Account
	repo.On("Put", mock.Anything, mock.AnythingOfType("*domain.Account")).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*domain.Account)
	}).Return(nil)
	sg.On("Sign", mock.Anything).Return("signed-token", nil)
	ml.On("SendEmail", "alice@x.com", "Welcome to Ray", mock.Anything).Return(nil)

	svc := newService(repo, ml, sg)
	result, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name:     "Alice",
		Email:    "ALICE@X.COM", // must be stored lower-case
		Password: "password123",
	})

	require.NoError(t, err)
	assert.Equal(t, "signed-token", result.Token)
	assert.Nil(t, result.MailErr)
	require.NotNil(t, stored)
	assert.Equal(t, "alice@x.com", stored.Email)
	assert.False(t, stored.Verified)
	assert.NotEmpty(t, stored.AccountID)
	// Only the hash is stored, and it validates the original password.
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")))
	ml.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := &mockAccountStore{}
	repo.On("GetByEmail", mock.Anything, "alice@x.com").Return(&domain.Account{AccountID: "a1"}, nil)

	svc := newService(repo, nil, nil)
	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@x.com",
		Password: "password123",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicateAccount))
}

func TestRegister_EmptyFields_InvalidInput(t *testing.T) {
	svc := newService(nil, nil, nil)
	_, err := svc.Register(context.Background(), domain.RegisterRequest{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestRegister_MailFailure_DoesNotRollBack(t *testing.T) {
	repo := &mockAccountStore{}
	ml := &mockMailer{}
	sg := &mockSigner{}

	repo.On("GetByEmail", mock.Anything, "bob@x.com").Return(nil, domain.ErrAccountNotFound)
	repo.On("Put", mock.Anything, mock.AnythingOfType("*domain.Account")).Return(nil)
	sg.On("Sign", mock.Anything).Return("signed-token", nil)
	ml.On("SendEmail", "bob@x.com", mock.Anything, mock.Anything).Return(errors.New("smtp refused"))

	svc := newService(repo, ml, sg)
	result, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name:     "Bob",
		Email:    "bob@x.com",
		Password: "password123",
	})

	require.NoError(t, err)
	require.NotNil(t, result.MailErr)
	assert.True(t, errors.Is(result.MailErr, domain.ErrMailDispatch))
	assert.Equal(t, "signed-token", result.Token)
	repo.AssertExpectations(t)
}

// --- Login ---

func registeredAccount(t *testing.T, password string) *domain.Account {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	return &domain.Account{AccountID: "a1", Email: "alice@x.com", PasswordHash: string(hash)}
}

func TestLogin_HappyPath_CaseInsensitiveEmail(t *testing.T) {
	repo := &mockAccountStore{}
	sg := &mockSigner{}
	repo.On("GetByEmail", mock.Anything, "alice@x.com").Return(registeredAccount(t, "pw123soLong"), nil)
	sg.On("Sign", "a1").Return("signed-token", nil)

	svc := newService(repo, nil, sg)
	a, token, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "ALICE@X.COM",
		Password: "pw123soLong",
	})

	require.NoError(t, err)
	assert.Equal(t, "a1", a.AccountID)
	assert.Equal(t, "signed-token", token)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := &mockAccountStore{}
	repo.On("GetByEmail", mock.Anything, "alice@x.com").Return(registeredAccount(t, "correct-pw"), nil)

	svc := newService(repo, nil, nil)
	_, _, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "alice@x.com",
		Password: "wrong-pw",
	})

	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))
}

func TestLogin_UnknownEmail_SameError(t *testing.T) {
	repo := &mockAccountStore{}
	repo.On("GetByEmail", mock.Anything, "ghost@x.com").Return(nil, domain.ErrAccountNotFound)

	svc := newService(repo, nil, nil)
	_, _, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "ghost@x.com",
		Password: "whatever",
	})

	// Indistinguishable from the wrong-password case.
	assert.Equal(t, domain.ErrInvalidCredentials, err)
}

func TestLogin_MissingFields_InvalidInput(t *testing.T) {
	svc := newService(nil, nil, nil)
	_, _, err := svc.Login(context.Background(), domain.LoginRequest{Email: "a@b.com"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// --- Profile ---

func TestProfile_ReturnsAccount(t *testing.T) {
	repo := &mockAccountStore{}
	repo.On("Get", mock.Anything, "a1").Return(&domain.Account{AccountID: "a1", Name: "Alice", Verified: true}, nil)

	svc := newService(repo, nil, nil)
	a, err := svc.Profile(context.Background(), "a1")

	require.NoError(t, err)
	assert.Equal(t, "Alice", a.Name)
	assert.True(t, a.Verified)
}
