package verification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ray-auth-api/internal/domain"
	"github.com/ray-auth-api/internal/infrastructure/dynamo"
	"github.com/ray-auth-api/internal/infrastructure/smtp"
	"github.com/ray-auth-api/internal/pkg/clock"
	"github.com/ray-auth-api/internal/pkg/otp"
	"golang.org/x/crypto/bcrypt"
)

// OTP validity windows. Re-requesting overwrites the outstanding code and
// restarts the window.
const (
	verifyOTPTTL = 24 * time.Hour
	resetOTPTTL  = 15 * time.Minute
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldVerified           = "verified"
	fieldVerifyOTP          = "verify_otp"
	fieldVerifyOTPExpiresAt = "verify_otp_expires_at"
	fieldResetOTP           = "reset_otp"
	fieldResetOTPExpiresAt  = "reset_otp_expires_at"
	fieldPasswordHash       = "password_hash"
)

type Service interface {
	RequestEmailVerification(ctx context.Context, accountID string) error
	ConfirmEmailVerification(ctx context.Context, accountID, code string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, email, code, newPassword string) error
}

type accountStore interface {
	Get(ctx context.Context, accountID string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	Update(ctx context.Context, accountID string, updates map[string]interface{}) error
	UpdateIf(ctx context.Context, accountID string, updates map[string]interface{}, condAttr, condValue string) error
}

type service struct {
	repo   accountStore
	mailer smtp.Mailer
	codes  *otp.Generator
	clock  clock.Clock
}

type ServiceDeps struct {
	Repo   accountStore
	Mailer smtp.Mailer
	Codes  *otp.Generator
	Clock  clock.Clock
}

func NewService(deps ServiceDeps) Service {
	if deps.Codes == nil {
		deps.Codes = otp.NewGenerator(nil)
	}
	if deps.Clock == nil {
		deps.Clock = clock.System{}
	}
	return &service{
		repo:   deps.Repo,
		mailer: deps.Mailer,
		codes:  deps.Codes,
		clock:  deps.Clock,
	}
}

func (s *service) RequestEmailVerification(ctx context.Context, accountID string) error {
	a, err := s.repo.Get(ctx, accountID)
	if err != nil {
		return err
	}
	if a.Verified {
		return fmt.Errorf("account %s: %w", accountID, domain.ErrAlreadyVerified)
	}
	code, err := s.codes.Code()
	if err != nil {
		return err
	}
	if err := s.repo.Update(ctx, accountID, map[string]interface{}{
		fieldVerifyOTP:          code,
		fieldVerifyOTPExpiresAt: s.clock.Now().Add(verifyOTPTTL).Unix(),
	}); err != nil {
		return err
	}
	body := fmt.Sprintf("Your OTP is %s. Verify your account using this OTP.", code)
	if err := s.mailer.SendEmail(a.Email, "Account Verification OTP", body); err != nil {
		slog.Warn("verification email failed", "account_id", accountID, "err", err)
		return fmt.Errorf("verification email: %w", domain.ErrMailDispatch)
	}
	return nil
}

func (s *service) ConfirmEmailVerification(ctx context.Context, accountID, code string) error {
	a, err := s.repo.Get(ctx, accountID)
	if err != nil {
		return err
	}
	if err := checkOTP(a.VerifyOTP, a.VerifyOTPExpiresAt, code, s.clock.Now()); err != nil {
		return err
	}
	// Clearing the code and marking verified happen in one conditional write:
	// a concurrent confirm that already consumed the code fails the condition.
	err = s.repo.UpdateIf(ctx, accountID, map[string]interface{}{
		fieldVerified:           true,
		fieldVerifyOTP:          "",
		fieldVerifyOTPExpiresAt: int64(0),
	}, fieldVerifyOTP, code)
	if errors.Is(err, dynamo.ErrConditionFailed) {
		return fmt.Errorf("OTP already consumed: %w", domain.ErrMissingOTP)
	}
	return err
}

func (s *service) RequestPasswordReset(ctx context.Context, email string) error {
	a, err := s.repo.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return err
	}
	code, err := s.codes.Code()
	if err != nil {
		return err
	}
	if err := s.repo.Update(ctx, a.AccountID, map[string]interface{}{
		fieldResetOTP:          code,
		fieldResetOTPExpiresAt: s.clock.Now().Add(resetOTPTTL).Unix(),
	}); err != nil {
		return err
	}
	body := fmt.Sprintf("Your OTP for resetting your password is %s. Use this OTP to proceed with resetting your password.", code)
	if err := s.mailer.SendEmail(a.Email, "Password Reset OTP", body); err != nil {
		slog.Warn("reset email failed", "account_id", a.AccountID, "err", err)
		return fmt.Errorf("reset email: %w", domain.ErrMailDispatch)
	}
	return nil
}

func (s *service) ConfirmPasswordReset(ctx context.Context, email, code, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("new password required: %w", domain.ErrInvalidInput)
	}
	a, err := s.repo.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return err
	}
	if err := checkOTP(a.ResetOTP, a.ResetOTPExpiresAt, code, s.clock.Now()); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	err = s.repo.UpdateIf(ctx, a.AccountID, map[string]interface{}{
		fieldPasswordHash:      string(hash),
		fieldResetOTP:          "",
		fieldResetOTPExpiresAt: int64(0),
	}, fieldResetOTP, code)
	if errors.Is(err, dynamo.ErrConditionFailed) {
		return fmt.Errorf("OTP already consumed: %w", domain.ErrMissingOTP)
	}
	return err
}

// checkOTP validates an outstanding code against the submitted one.
// Expiry is strict: a code is rejected only once now is past expiresAt.
func checkOTP(stored string, expiresAt int64, submitted string, now time.Time) error {
	if stored == "" {
		return domain.ErrMissingOTP
	}
	if stored != submitted {
		return domain.ErrInvalidOTP
	}
	if now.After(time.Unix(expiresAt, 0)) {
		return domain.ErrOTPExpired
	}
	return nil
}
