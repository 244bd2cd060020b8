package usermanagement

import (
	"errors"
	"fmt"
	"log/slog"

	chatbotDB "github.com/alvin0727/AI-Chatbot/pkg/db/chatbot"
	"github.com/alvin0727/AI-Chatbot/pkg/user-management/pwhash"
	userTypes "github.com/alvin0727/AI-Chatbot/pkg/user-management/types"
	umUtils "github.com/alvin0727/AI-Chatbot/pkg/user-management/utils"
)

// Signup creates a new unverified account and sends the verification email.
func (s *Service) Signup(name string, email string, password string) (string, error) {
	email = umUtils.SanitizeEmail(email)

	if _, err := s.users.GetUserByEmail(email); err == nil {
		return "", ErrEmailTaken
	}

	hashedPassword, err := pwhash.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("unexpected error when hashing password: %w", err)
	}

	newUser := userTypes.InitNewEmailUser(name, email, hashedPassword)
	userID, err := s.users.AddUser(newUser)
	if err != nil {
		// the unique index may catch a concurrent signup the pre-check missed
		if errors.Is(err, chatbotDB.ErrDuplicateEmail) {
			return "", ErrEmailTaken
		}
		return "", err
	}

	if err := s.startEmailVerification(userID, email); err != nil {
		slog.Error("failed to start email verification", slog.String("userID", userID), slog.String("error", err.Error()))
	}
	return userID, nil
}

// VerifyEmail marks the account behind the token as verified and consumes the
// token.
func (s *Service) VerifyEmail(tokenValue string) (userTypes.User, error) {
	token, err := s.tokens.FindOneTimeToken(tokenValue, userTypes.TOKEN_TYPE_EMAIL_VERIFICATION)
	if err != nil || token.IsExpired() {
		return userTypes.User{}, ErrInvalidToken
	}

	user, err := s.users.GetUser(token.UserID)
	if err != nil {
		return userTypes.User{}, ErrUserNotFound
	}

	if user.IsVerified {
		_ = s.tokens.DeleteOneTimeToken(tokenValue)
		return user, ErrAlreadyVerified
	}

	if err := s.users.MarkUserVerified(token.UserID); err != nil {
		return userTypes.User{}, err
	}
	if err := s.tokens.DeleteOneTimeToken(tokenValue); err != nil {
		slog.Warn("failed to remove used verification token", slog.String("error", err.Error()))
	}
	user.IsVerified = true
	return user, nil
}

// ResendVerification invalidates any outstanding verification token for the
// account and sends a fresh one.
func (s *Service) ResendVerification(email string) error {
	email = umUtils.SanitizeEmail(email)

	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		return ErrUserNotFound
	}
	if user.IsVerified {
		return ErrAlreadyVerified
	}

	userID := user.ID.Hex()
	if err := s.tokens.DeleteOneTimeTokensForUser(userID, userTypes.TOKEN_TYPE_EMAIL_VERIFICATION); err != nil {
		return err
	}
	return s.startEmailVerification(userID, email)
}

func (s *Service) startEmailVerification(userID string, email string) error {
	tokenValue, err := umUtils.GenerateVerificationTokenString()
	if err != nil {
		return err
	}
	token := userTypes.NewEmailVerificationToken(userID, tokenValue, s.policy.VerificationTokenTTL)
	if err := s.tokens.CreateOneTimeToken(token); err != nil {
		return err
	}
	return s.emails.SendVerificationEmail(email, tokenValue)
}
