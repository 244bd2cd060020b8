package usermanagement

import (
	"log/slog"
	"math"
	"time"

	"github.com/alvin0727/AI-Chatbot/pkg/user-management/pwhash"
	userTypes "github.com/alvin0727/AI-Chatbot/pkg/user-management/types"
	umUtils "github.com/alvin0727/AI-Chatbot/pkg/user-management/utils"
)

// Login checks the account credentials and, if they hold, sends a fresh OTP
// code for the second factor. A still active lockout short-circuits before any
// code is generated.
func (s *Service) Login(email string, password string) error {
	email = umUtils.SanitizeEmail(email)

	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		return ErrUserNotFound
	}
	if !user.IsVerified {
		return ErrEmailNotVerified
	}

	match, err := pwhash.ComparePasswordWithHash(user.Password, password)
	if err != nil || !match {
		return ErrWrongPassword
	}

	userID := user.ID.Hex()
	current, err := s.tokens.FindOneTimeTokenForUser(userID, userTypes.TOKEN_TYPE_OTP)
	if err == nil && current.IsBlocked() {
		return TooManyAttemptsError{BlockedForMinutes: minutesUntil(current.Otp.BlockUntil)}
	}

	code, genErr := umUtils.GenerateOTPCode()
	if genErr != nil {
		return genErr
	}

	if err == nil {
		// Reuse the record so the attempt counters survive re-logins.
		current.Token = code
		current.ExpiresAt = time.Now().Add(s.policy.OtpTTL)
		if current.Otp != nil {
			current.Otp.LastGenerated = time.Now()
		}
		if err := s.tokens.ReplaceOneTimeToken(current); err != nil {
			return err
		}
	} else {
		otp := userTypes.NewLoginOtp(userID, code, s.policy.OtpTTL)
		otp.Otp.MaxAttempts = s.policy.MaxOtpAttempts
		if err := s.tokens.CreateOneTimeToken(otp); err != nil {
			return err
		}
	}
	return s.emails.SendLoginOtpEmail(email, code)
}

// VerifyLoginOTP checks the submitted code. On the last allowed failure the
// account is blocked and the record's expiry is pushed out to the end of the
// block, so the lockout outlives the code itself.
func (s *Service) VerifyLoginOTP(email string, code string) (userTypes.User, error) {
	email = umUtils.SanitizeEmail(email)

	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		return userTypes.User{}, ErrUserNotFound
	}
	userID := user.ID.Hex()

	otp, err := s.tokens.FindOneTimeTokenForUser(userID, userTypes.TOKEN_TYPE_OTP)
	if err != nil || otp.IsExpired() || otp.Otp == nil {
		return userTypes.User{}, ErrInvalidOtp
	}
	if otp.IsBlocked() {
		return userTypes.User{}, TooManyAttemptsError{BlockedForMinutes: minutesUntil(otp.Otp.BlockUntil)}
	}

	if otp.Token != code {
		otp.Otp.Attempts++
		otp.Otp.LastAttempt = time.Now()
		if otp.Otp.Attempts >= otp.Otp.MaxAttempts {
			otp.Otp.Blocked = true
			otp.Otp.BlockUntil = time.Now().Add(s.policy.OtpBlockDuration)
			otp.ExpiresAt = otp.Otp.BlockUntil
			if err := s.tokens.ReplaceOneTimeToken(otp); err != nil {
				return userTypes.User{}, err
			}
			return userTypes.User{}, TooManyAttemptsError{BlockedForMinutes: minutesUntil(otp.Otp.BlockUntil)}
		}
		if err := s.tokens.ReplaceOneTimeToken(otp); err != nil {
			return userTypes.User{}, err
		}
		return userTypes.User{}, WrongOtpError{AttemptsLeft: otp.Otp.MaxAttempts - otp.Otp.Attempts}
	}

	if err := s.tokens.DeleteOneTimeToken(otp.Token); err != nil {
		slog.Warn("failed to remove used otp", slog.String("error", err.Error()))
	}
	if err := s.users.UpdateLastLogin(userID); err != nil {
		slog.Warn("failed to update last login", slog.String("userID", userID), slog.String("error", err.Error()))
	}
	return user, nil
}

// ResendLoginOTP issues a new code for an ongoing login, at most once per
// cooldown window. Attempt counters carry over to the new code.
func (s *Service) ResendLoginOTP(email string) error {
	email = umUtils.SanitizeEmail(email)

	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		return ErrUserNotFound
	}
	userID := user.ID.Hex()

	current, err := s.tokens.FindOneTimeTokenForUser(userID, userTypes.TOKEN_TYPE_OTP)
	if err == nil {
		if current.IsBlocked() {
			return TooManyAttemptsError{BlockedForMinutes: minutesUntil(current.Otp.BlockUntil)}
		}
		if current.Otp != nil {
			sinceLast := time.Since(current.Otp.LastGenerated)
			if sinceLast < s.policy.OtpResendCooldown {
				wait := s.policy.OtpResendCooldown - sinceLast
				return RateLimitedError{RetryAfterSeconds: int(math.Ceil(wait.Seconds()))}
			}
		}
	}

	code, genErr := umUtils.GenerateOTPCode()
	if genErr != nil {
		return genErr
	}

	if err == nil {
		current.Token = code
		current.ExpiresAt = time.Now().Add(s.policy.OtpTTL)
		if current.Otp != nil {
			current.Otp.LastGenerated = time.Now()
		}
		if err := s.tokens.ReplaceOneTimeToken(current); err != nil {
			return err
		}
	} else {
		otp := userTypes.NewLoginOtp(userID, code, s.policy.OtpTTL)
		otp.Otp.MaxAttempts = s.policy.MaxOtpAttempts
		if err := s.tokens.CreateOneTimeToken(otp); err != nil {
			return err
		}
	}
	return s.emails.SendLoginOtpEmail(email, code)
}

func minutesUntil(deadline time.Time) int {
	mins := int(math.Ceil(time.Until(deadline).Minutes()))
	if mins < 1 {
		mins = 1
	}
	return mins
}
