package apihandlers

import (
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	jwthandling "github.com/alvin0727/AI-Chatbot/pkg/jwt-handling"
	usermanagement "github.com/alvin0727/AI-Chatbot/pkg/user-management"
)

const (
	AUTH_COOKIE_NAME    = "authToken"
	REFRESH_COOKIE_NAME = "refreshToken"
)

func randomWait(minTimeSec int, maxTimeSec int) {
	time.Sleep(time.Duration(rand.Intn(maxTimeSec-minTimeSec)+minTimeSec) * time.Second)
}

// setAuthCookies mints a fresh access and refresh token pair for the user and
// attaches them as httpOnly cookies.
func (h *HttpEndpoints) setAuthCookies(c *gin.Context, userID string, email string, isVerified bool) error {
	accessToken, err := jwthandling.GenerateNewUserToken(
		h.tokenExpiresIn,
		userID,
		email,
		isVerified,
		h.tokenSignKey,
	)
	if err != nil {
		return err
	}
	refreshToken, err := jwthandling.GenerateNewRefreshToken(
		h.refreshTokenExpiresIn,
		userID,
		email,
		h.refreshTokenSignKey,
	)
	if err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AUTH_COOKIE_NAME, accessToken, int(h.tokenExpiresIn.Seconds()), "/", "", h.useSecureCookies, true)
	c.SetCookie(REFRESH_COOKIE_NAME, refreshToken, int(h.refreshTokenExpiresIn.Seconds()), "/", "", h.useSecureCookies, true)
	return nil
}

func (h *HttpEndpoints) clearAuthCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AUTH_COOKIE_NAME, "", -1, "/", "", h.useSecureCookies, true)
	c.SetCookie(REFRESH_COOKIE_NAME, "", -1, "/", "", h.useSecureCookies, true)
}

// getValidatedClaims returns the claims the auth middleware stored in the
// context.
func getValidatedClaims(c *gin.Context) (*jwthandling.UserClaims, bool) {
	tokenValue, ok := c.Get("validatedToken")
	if !ok {
		slog.Warn("validatedToken not found in context")
		return nil, false
	}
	claims, ok := tokenValue.(*jwthandling.UserClaims)
	return claims, ok
}

// writeAuthFlowError maps the user management error taxonomy onto HTTP
// responses.
func writeAuthFlowError(c *gin.Context, err error) {
	var wrongOtpErr usermanagement.WrongOtpError
	var blockedErr usermanagement.TooManyAttemptsError
	var limitedErr usermanagement.RateLimitedError

	switch {
	case errors.Is(err, usermanagement.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
	case errors.Is(err, usermanagement.ErrWrongPassword):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
	case errors.Is(err, usermanagement.ErrEmailNotVerified):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "email address not verified"})
	case errors.Is(err, usermanagement.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": "account with given email already exists"})
	case errors.Is(err, usermanagement.ErrInvalidToken):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired token"})
	case errors.Is(err, usermanagement.ErrAlreadyVerified):
		c.JSON(http.StatusBadRequest, gin.H{"error": "account already verified"})
	case errors.Is(err, usermanagement.ErrInvalidOtp):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired code"})
	case errors.As(err, &wrongOtpErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":        "wrong code",
			"attemptsLeft": wrongOtpErr.AttemptsLeft,
		})
	case errors.As(err, &blockedErr):
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":             "too many failed attempts",
			"attemptsLeft":      0,
			"blockedForMinutes": blockedErr.BlockedForMinutes,
		})
	case errors.As(err, &limitedErr):
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":      "please wait before requesting a new code",
			"retryAfter": limitedErr.RetryAfterSeconds,
		})
	default:
		slog.Error("unexpected error in auth flow", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
