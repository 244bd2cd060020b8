package usermanagement

import (
	"time"

	userTypes "github.com/alvin0727/AI-Chatbot/pkg/user-management/types"
)

// UserStore is the part of the user DB the auth flows depend on.
type UserStore interface {
	AddUser(user userTypes.User) (string, error)
	GetUser(userID string) (userTypes.User, error)
	GetUserByEmail(email string) (userTypes.User, error)
	MarkUserVerified(userID string) error
	UpdateLastLogin(userID string) error
}

// TokenStore persists one-time tokens (email verification and login OTPs).
type TokenStore interface {
	CreateOneTimeToken(token userTypes.OneTimeToken) error
	FindOneTimeToken(tokenValue string, t userTypes.TokenType) (userTypes.OneTimeToken, error)
	FindOneTimeTokenForUser(userID string, t userTypes.TokenType) (userTypes.OneTimeToken, error)
	ReplaceOneTimeToken(token userTypes.OneTimeToken) error
	DeleteOneTimeToken(tokenValue string) error
	DeleteOneTimeTokensForUser(userID string, t userTypes.TokenType) error
}

// QuotaStore persists the per-user daily chat counters.
type QuotaStore interface {
	GetOrCreateChatQuota(userID string) (userTypes.ChatQuota, error)
	ResetChatQuota(userID string) error
	IncrementChatQuota(userID string, limit int) (bool, error)
}

// EmailSender delivers the verification link and the login code.
type EmailSender interface {
	SendVerificationEmail(toAddr string, token string) error
	SendLoginOtpEmail(toAddr string, code string) error
}

// Policy holds the time and attempt limits of the auth flows.
type Policy struct {
	VerificationTokenTTL time.Duration
	OtpTTL               time.Duration
	MaxOtpAttempts       int
	OtpBlockDuration     time.Duration
	OtpResendCooldown    time.Duration
	DailyChatLimit       int
}

func DefaultPolicy() Policy {
	return Policy{
		VerificationTokenTTL: 24 * time.Hour,
		OtpTTL:               5 * time.Minute,
		MaxOtpAttempts:       userTypes.DefaultMaxOtpAttempts,
		OtpBlockDuration:     15 * time.Minute,
		OtpResendCooldown:    60 * time.Second,
		DailyChatLimit:       4,
	}
}

// Service implements the account verification, OTP login and chat quota flows
// on top of the injected stores.
type Service struct {
	users  UserStore
	tokens TokenStore
	quotas QuotaStore
	emails EmailSender
	policy Policy
}

func NewService(
	users UserStore,
	tokens TokenStore,
	quotas QuotaStore,
	emails EmailSender,
	policy Policy,
) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		quotas: quotas,
		emails: emails,
		policy: policy,
	}
}
