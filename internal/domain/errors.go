package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without
// leaking infrastructure details. Lookup failures during login deliberately
// collapse into ErrInvalidCredentials so callers cannot enumerate accounts.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateAccount   = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotFound    = errors.New("account not found")
	ErrAlreadyVerified    = errors.New("account already verified")
	ErrMissingOTP         = errors.New("no OTP outstanding")
	ErrInvalidOTP         = errors.New("invalid OTP")
	ErrOTPExpired         = errors.New("OTP expired")

	// ErrMailDispatch is non-fatal for registration: the account is kept and
	// the failure is reported alongside the success payload.
	ErrMailDispatch = errors.New("mail dispatch failed")

	// ErrStoreUnavailable is surfaced to callers as an internal error; the
	// underlying storage cause is flattened into the message for logs only.
	ErrStoreUnavailable = errors.New("store unavailable")
)
