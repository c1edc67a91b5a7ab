package domain

import (
	"strings"
	"time"
)

// Account is the single entity owned by this service. The OTP field pairs
// (code + expiry) are always written and cleared together: an empty code with
// a zero expiry means no OTP is outstanding.
type Account struct {
	AccountID          string    `json:"id" dynamodbav:"account_id"`
	Name               string    `json:"name" dynamodbav:"name"`
	Email              string    `json:"email" dynamodbav:"email"` // stored lower-case
	PasswordHash       string    `json:"-" dynamodbav:"password_hash"`
	Verified           bool      `json:"verified" dynamodbav:"verified"`
	VerifyOTP          string    `json:"-" dynamodbav:"verify_otp"`
	VerifyOTPExpiresAt int64     `json:"-" dynamodbav:"verify_otp_expires_at"` // Unix seconds
	ResetOTP           string    `json:"-" dynamodbav:"reset_otp"`
	ResetOTPExpiresAt  int64     `json:"-" dynamodbav:"reset_otp_expires_at"` // Unix seconds
	CreatedAt          time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt          time.Time `json:"updated" dynamodbav:"updated_at"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// NormalizeEmail lower-cases and trims an email address. Applied on every
// write and every lookup so that differing case can never produce duplicate
// accounts.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
