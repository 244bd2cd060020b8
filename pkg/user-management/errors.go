package usermanagement

import (
	"errors"
	"fmt"
)

var (
	ErrEmailTaken       = errors.New("account with given email already exists")
	ErrUserNotFound     = errors.New("user not found")
	ErrWrongPassword    = errors.New("wrong email or password")
	ErrEmailNotVerified = errors.New("email address not verified")
	ErrInvalidToken     = errors.New("invalid or expired token")
	ErrAlreadyVerified  = errors.New("account already verified")
	ErrInvalidOtp       = errors.New("invalid or expired otp")
	ErrQuotaExceeded    = errors.New("daily chat limit reached")
)

// WrongOtpError is returned when a submitted code does not match, while
// attempts remain.
type WrongOtpError struct {
	AttemptsLeft int
}

func (e WrongOtpError) Error() string {
	return fmt.Sprintf("wrong otp, %d attempts left", e.AttemptsLeft)
}

// TooManyAttemptsError is returned once the account is blocked for OTP
// verification. BlockedForMinutes is rounded up.
type TooManyAttemptsError struct {
	BlockedForMinutes int
}

func (e TooManyAttemptsError) Error() string {
	return fmt.Sprintf("too many failed attempts, blocked for %d minutes", e.BlockedForMinutes)
}

// RateLimitedError is returned when an OTP resend is requested before the
// cooldown has passed.
type RateLimitedError struct {
	RetryAfterSeconds int
}

func (e RateLimitedError) Error() string {
	return fmt.Sprintf("please wait %d seconds before requesting a new code", e.RetryAfterSeconds)
}
