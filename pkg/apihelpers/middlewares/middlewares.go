package middlewares

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	jwthandling "github.com/alvin0727/AI-Chatbot/pkg/jwt-handling"
)

// AUTH_COOKIE_NAME is the httpOnly cookie carrying the access token.
const AUTH_COOKIE_NAME = "authToken"

// GetAndValidateUserTokenCookie extracts the access token from the auth cookie
// and validates it. The parsed claims are stored in the context under
// "validatedToken".
func GetAndValidateUserTokenCookie(tokenSignKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(AUTH_COOKIE_NAME)
		if err != nil || token == "" {
			slog.Warn("no auth token cookie found", slog.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		parsedToken, ok, err := jwthandling.ValidateUserToken(token, tokenSignKey)
		if err != nil || !ok {
			slog.Warn("auth token validation failed", slog.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Set("validatedToken", parsedToken)
		c.Next()
	}
}

// RequireVerifiedUser blocks accounts that have not confirmed their email
// address yet. Must run after GetAndValidateUserTokenCookie.
func RequireVerifiedUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenValue, ok := c.Get("validatedToken")
		if !ok {
			slog.Warn("RequireVerifiedUser: validatedToken not found in context")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		parsedToken := tokenValue.(*jwthandling.UserClaims)

		if !parsedToken.IsVerified {
			slog.Warn("unverified account tried to access protected endpoint", slog.String("userID", parsedToken.Subject))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "email verification required"})
			return
		}
		c.Next()
	}
}

// RequirePayload blocks post requests that have no payload attached
func RequirePayload() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength == 0 {
			slog.Debug("RequirePayload Middleware: payload missing")
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "payload missing"})
			return
		}
		c.Next()
	}
}
