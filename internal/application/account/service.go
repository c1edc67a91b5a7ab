package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ray-auth-api/internal/domain"
	"github.com/ray-auth-api/internal/infrastructure/smtp"
	"github.com/ray-auth-api/internal/pkg/clock"
	"github.com/ray-auth-api/internal/pkg/id"
	"github.com/ray-auth-api/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

// RegisterResult carries the outcome of a successful registration. MailErr is
// set (wrapping domain.ErrMailDispatch) when the welcome email could not be
// sent; the account itself is kept either way.
type RegisterResult struct {
	Account *domain.Account
	Token   string
	MailErr error
}

type Service interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*RegisterResult, error)
	Login(ctx context.Context, req domain.LoginRequest) (*domain.Account, string, error)
	Profile(ctx context.Context, accountID string) (*domain.Account, error)
}

type accountStore interface {
	Get(ctx context.Context, accountID string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	Put(ctx context.Context, a *domain.Account) error
}

type tokenSigner interface {
	Sign(accountID string) (string, error)
}

type service struct {
	repo   accountStore
	mailer smtp.Mailer
	tokens tokenSigner
	clock  clock.Clock
}

type ServiceDeps struct {
	Repo   accountStore
	Mailer smtp.Mailer
	Tokens tokenSigner
	Clock  clock.Clock
}

func NewService(deps ServiceDeps) Service {
	if deps.Clock == nil {
		deps.Clock = clock.System{}
	}
	return &service{
		repo:   deps.Repo,
		mailer: deps.Mailer,
		tokens: deps.Tokens,
		clock:  deps.Clock,
	}
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*RegisterResult, error) {
	if err := validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrInvalidInput)
	}
	email := domain.NormalizeEmail(req.Email)
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", domain.ErrDuplicateAccount)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	a := &domain.Account{
		AccountID:    id.New(),
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Put(ctx, a); err != nil {
		return nil, err
	}
	token, err := s.tokens.Sign(a.AccountID)
	if err != nil {
		return nil, err
	}
	result := &RegisterResult{Account: a, Token: token}
	body := fmt.Sprintf("Welcome to Ray! Your account has been successfully created with email: %s.", email)
	if err := s.mailer.SendEmail(email, "Welcome to Ray", body); err != nil {
		slog.Warn("welcome email failed", "account_id", a.AccountID, "err", err)
		result.MailErr = fmt.Errorf("welcome email: %w", domain.ErrMailDispatch)
	}
	return result, nil
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*domain.Account, string, error) {
	if err := validate.Struct(&req); err != nil {
		return nil, "", fmt.Errorf("%v: %w", err, domain.ErrInvalidInput)
	}
	// Unknown email and wrong password collapse into the same error so the
	// response never reveals whether the account exists.
	a, err := s.repo.GetByEmail(ctx, domain.NormalizeEmail(req.Email))
	if err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}
	token, err := s.tokens.Sign(a.AccountID)
	if err != nil {
		return nil, "", err
	}
	return a, token, nil
}

func (s *service) Profile(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.repo.Get(ctx, accountID)
}
