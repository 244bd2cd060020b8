package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	mw "github.com/alvin0727/AI-Chatbot/pkg/apihelpers/middlewares"
	jwthandling "github.com/alvin0727/AI-Chatbot/pkg/jwt-handling"
	usermanagement "github.com/alvin0727/AI-Chatbot/pkg/user-management"
	umUtils "github.com/alvin0727/AI-Chatbot/pkg/user-management/utils"
)

func (h *HttpEndpoints) AddUserAPI(rg *gin.RouterGroup) {
	userGroup := rg.Group("/user")
	{
		userGroup.POST("/signup", mw.RequirePayload(), h.signupWithEmail)
		userGroup.POST("/verify-email", mw.RequirePayload(), h.verifyEmail)
		userGroup.POST("/resend-verification", mw.RequirePayload(), h.resendEmailVerification)

		userGroup.POST("/login", mw.RequirePayload(), h.loginWithEmail)
		userGroup.POST("/verify-login-otp", mw.RequirePayload(), h.verifyLoginOTP)
		userGroup.POST("/resend-login-otp", mw.RequirePayload(), h.resendLoginOTP)

		userGroup.POST("/refresh-token", h.refreshToken)
		userGroup.POST("/logout", h.logout)
	}

	authedGroup := userGroup.Group("")
	authedGroup.Use(mw.GetAndValidateUserTokenCookie(h.tokenSignKey))
	{
		authedGroup.GET("/auth-status", h.authStatus)
		authedGroup.GET("/", mw.RequireVerifiedUser(), h.getAllUsers)
	}
}

type SignupWithEmailReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *HttpEndpoints) signupWithEmail(c *gin.Context) {
	var req SignupWithEmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req.Email = umUtils.SanitizeEmail(req.Email)
	if !umUtils.CheckEmailFormat(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email address"})
		return
	}
	if !umUtils.CheckPasswordFormat(req.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password does not meet requirements"})
		return
	}

	userID, err := h.userMgmt.Signup(req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usermanagement.ErrEmailTaken) {
			slog.Warn("signup attempt with existing email", slog.String("email", req.Email))
			randomWait(1, 3)
		}
		writeAuthFlowError(c, err)
		return
	}

	slog.Info("new user signed up", slog.String("userID", userID))
	c.JSON(http.StatusCreated, gin.H{
		"message": "account created, please check your inbox to verify your email address",
		"userID":  userID,
	})
}

type VerifyEmailReq struct {
	Token string `json:"token"`
}

func (h *HttpEndpoints) verifyEmail(c *gin.Context) {
	var req VerifyEmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token missing"})
		return
	}

	user, err := h.userMgmt.VerifyEmail(req.Token)
	if err != nil {
		writeAuthFlowError(c, err)
		return
	}

	slog.Info("user verified email", slog.String("userID", user.ID.Hex()))
	c.JSON(http.StatusOK, gin.H{"message": "email address verified"})
}

type EmailOnlyReq struct {
	Email string `json:"email"`
}

func (h *HttpEndpoints) resendEmailVerification(c *gin.Context) {
	var req EmailOnlyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.userMgmt.ResendVerification(req.Email); err != nil {
		writeAuthFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "verification email sent"})
}

type LoginWithEmailReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *HttpEndpoints) loginWithEmail(c *gin.Context) {
	var req LoginWithEmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}

	if err := h.userMgmt.Login(req.Email, req.Password); err != nil {
		if errors.Is(err, usermanagement.ErrUserNotFound) || errors.Is(err, usermanagement.ErrWrongPassword) {
			slog.Warn("failed login attempt", slog.String("email", req.Email))
			randomWait(1, 3)
		}
		writeAuthFlowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requiresOTP": true,
		"message":     "a login code was sent to your email address",
	})
}

type VerifyLoginOtpReq struct {
	Email string `json:"email"`
	Otp   string `json:"otp"`
}

func (h *HttpEndpoints) verifyLoginOTP(c *gin.Context) {
	var req VerifyLoginOtpReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Email == "" || req.Otp == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return
	}

	user, err := h.userMgmt.VerifyLoginOTP(req.Email, req.Otp)
	if err != nil {
		writeAuthFlowError(c, err)
		return
	}

	if err := h.setAuthCookies(c, user.ID.Hex(), user.Email, user.IsVerified); err != nil {
		slog.Error("failed to generate session tokens", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	slog.Info("user logged in", slog.String("userID", user.ID.Hex()))
	c.JSON(http.StatusOK, gin.H{
		"message": "login successful",
		"user": gin.H{
			"id":         user.ID.Hex(),
			"name":       user.Name,
			"email":      user.Email,
			"isVerified": user.IsVerified,
		},
	})
}

func (h *HttpEndpoints) resendLoginOTP(c *gin.Context) {
	var req EmailOnlyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.userMgmt.ResendLoginOTP(req.Email); err != nil {
		writeAuthFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "a new login code was sent to your email address"})
}

// refreshToken rotates the session: a valid refresh cookie yields a new access
// and refresh token pair.
func (h *HttpEndpoints) refreshToken(c *gin.Context) {
	refreshToken, err := c.Cookie(REFRESH_COOKIE_NAME)
	if err != nil || refreshToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "refresh token missing"})
		return
	}

	claims, valid, err := jwthandling.ValidateRefreshToken(refreshToken, h.refreshTokenSignKey)
	if err != nil || !valid {
		slog.Warn("refresh token validation failed")
		h.clearAuthCookies(c)
		c.JSON(http.StatusForbidden, gin.H{"error": "invalid refresh token"})
		return
	}

	// re-read the user so the new access token carries the current
	// verification state
	user, err := h.userDBConn.GetUser(claims.Subject)
	if err != nil {
		slog.Warn("refresh token for unknown user", slog.String("userID", claims.Subject))
		h.clearAuthCookies(c)
		c.JSON(http.StatusForbidden, gin.H{"error": "invalid refresh token"})
		return
	}

	if err := h.setAuthCookies(c, user.ID.Hex(), user.Email, user.IsVerified); err != nil {
		slog.Error("failed to generate session tokens", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "session renewed",
		"user": gin.H{
			"id":         user.ID.Hex(),
			"name":       user.Name,
			"email":      user.Email,
			"isVerified": user.IsVerified,
		},
	})
}

func (h *HttpEndpoints) logout(c *gin.Context) {
	h.clearAuthCookies(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *HttpEndpoints) authStatus(c *gin.Context) {
	claims, ok := getValidatedClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"user": gin.H{
			"id":         claims.Subject,
			"email":      claims.Email,
			"isVerified": claims.IsVerified,
		},
	})
}

func (h *HttpEndpoints) getAllUsers(c *gin.Context) {
	users, err := h.userDBConn.GetAllUsers()
	if err != nil {
		slog.Error("failed to fetch users", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	resp := make([]gin.H, 0, len(users))
	for _, user := range users {
		resp = append(resp, gin.H{
			"id":         user.ID.Hex(),
			"name":       user.Name,
			"email":      user.Email,
			"isVerified": user.IsVerified,
		})
	}
	c.JSON(http.StatusOK, gin.H{"users": resp})
}
