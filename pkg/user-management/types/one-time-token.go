package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TokenType string

const (
	TOKEN_TYPE_EMAIL_VERIFICATION TokenType = "email_verification"
	TOKEN_TYPE_OTP                TokenType = "otp"
)

const DefaultMaxOtpAttempts = 3

// OneTimeToken is a single-use secret bound to a user. Email verification
// tokens carry no OTP metadata; login OTPs always do.
type OneTimeToken struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	UserID    string     `bson:"userID" json:"userID"`
	Token     string     `bson:"token" json:"token"`
	Type      TokenType  `bson:"type" json:"type"`
	Otp       *OtpState  `bson:"otpMetadata,omitempty" json:"otpMetadata,omitempty"`
	ExpiresAt time.Time  `bson:"expiresAt" json:"expiresAt"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// OtpState tracks attempt limiting and lockout for a login OTP.
type OtpState struct {
	Attempts      int       `bson:"attempts" json:"attempts"`
	MaxAttempts   int       `bson:"maxAttempts" json:"maxAttempts"`
	LastAttempt   time.Time `bson:"lastAttempt,omitempty" json:"lastAttempt,omitempty"`
	Blocked       bool      `bson:"isBlocked" json:"isBlocked"`
	BlockUntil    time.Time `bson:"blockUntil,omitempty" json:"blockUntil,omitempty"`
	LastGenerated time.Time `bson:"lastGenerated,omitempty" json:"lastGenerated,omitempty"`
}

func NewEmailVerificationToken(userID string, token string, validFor time.Duration) OneTimeToken {
	now := time.Now()
	return OneTimeToken{
		UserID:    userID,
		Token:     token,
		Type:      TOKEN_TYPE_EMAIL_VERIFICATION,
		ExpiresAt: now.Add(validFor),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func NewLoginOtp(userID string, code string, validFor time.Duration) OneTimeToken {
	now := time.Now()
	return OneTimeToken{
		UserID: userID,
		Token:  code,
		Type:   TOKEN_TYPE_OTP,
		Otp: &OtpState{
			Attempts:      0,
			MaxAttempts:   DefaultMaxOtpAttempts,
			Blocked:       false,
			LastGenerated: now,
		},
		ExpiresAt: now.Add(validFor),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsExpired reports whether the token must be treated as inert, independent of
// whether the TTL reaper already removed the record.
func (t OneTimeToken) IsExpired() bool {
	return !t.ExpiresAt.After(time.Now())
}

// IsBlocked reports whether the OTP lockout window is currently active.
func (t OneTimeToken) IsBlocked() bool {
	return t.Otp != nil && t.Otp.Blocked && t.Otp.BlockUntil.After(time.Now())
}
