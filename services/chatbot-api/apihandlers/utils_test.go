package apihandlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	usermanagement "github.com/alvin0727/AI-Chatbot/pkg/user-management"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestWriteAuthFlowErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantInBody string
	}{
		{"user not found", usermanagement.ErrUserNotFound, http.StatusNotFound, "account not found"},
		{"wrong password", usermanagement.ErrWrongPassword, http.StatusUnauthorized, "invalid email or password"},
		{"not verified", usermanagement.ErrEmailNotVerified, http.StatusUnauthorized, "not verified"},
		{"email taken", usermanagement.ErrEmailTaken, http.StatusBadRequest, "already exists"},
		{"invalid token", usermanagement.ErrInvalidToken, http.StatusBadRequest, "invalid or expired token"},
		{"already verified", usermanagement.ErrAlreadyVerified, http.StatusBadRequest, "already verified"},
		{"invalid otp", usermanagement.ErrInvalidOtp, http.StatusBadRequest, "invalid or expired code"},
		{"wrong otp", usermanagement.WrongOtpError{AttemptsLeft: 2}, http.StatusBadRequest, `"attemptsLeft":2`},
		{"blocked", usermanagement.TooManyAttemptsError{BlockedForMinutes: 15}, http.StatusTooManyRequests, `"blockedForMinutes":15`},
		{"blocked reports zero attempts", usermanagement.TooManyAttemptsError{BlockedForMinutes: 15}, http.StatusTooManyRequests, `"attemptsLeft":0`},
		{"rate limited", usermanagement.RateLimitedError{RetryAfterSeconds: 42}, http.StatusTooManyRequests, `"retryAfter":42`},
		{"unexpected", errors.New("db exploded"), http.StatusInternalServerError, "internal server error"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			writeAuthFlowError(c, test.err)

			if w.Code != test.wantStatus {
				t.Errorf("expected status %d, got %d", test.wantStatus, w.Code)
			}
			if !strings.Contains(w.Body.String(), test.wantInBody) {
				t.Errorf("expected body to contain %q, got %s", test.wantInBody, w.Body.String())
			}
		})
	}

	t.Run("internal errors are not leaked", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		writeAuthFlowError(c, errors.New("connection string mongodb://secret"))

		if strings.Contains(w.Body.String(), "mongodb") {
			t.Error("internal error details must not reach the client")
		}
	})
}

func TestAuthCookies(t *testing.T) {
	h := &HttpEndpoints{
		tokenSignKey:          "access-key",
		tokenExpiresIn:        time.Hour,
		refreshTokenSignKey:   "refresh-key",
		refreshTokenExpiresIn: 7 * 24 * time.Hour,
		useSecureCookies:      true,
	}

	t.Run("set attaches httpOnly token pair", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

		if err := h.setAuthCookies(c, "u1", "ann@x.com", true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		cookies := w.Result().Cookies()
		found := map[string]*http.Cookie{}
		for _, cookie := range cookies {
			found[cookie.Name] = cookie
		}

		for _, name := range []string{AUTH_COOKIE_NAME, REFRESH_COOKIE_NAME} {
			cookie, ok := found[name]
			if !ok {
				t.Fatalf("cookie %s not set", name)
			}
			if !cookie.HttpOnly {
				t.Errorf("cookie %s must be httpOnly", name)
			}
			if !cookie.Secure {
				t.Errorf("cookie %s must be secure", name)
			}
			if cookie.Value == "" {
				t.Errorf("cookie %s has no value", name)
			}
		}
		if found[AUTH_COOKIE_NAME].Value == found[REFRESH_COOKIE_NAME].Value {
			t.Error("access and refresh token must differ")
		}
	})

	t.Run("clear expires both cookies", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

		h.clearAuthCookies(c)

		for _, cookie := range w.Result().Cookies() {
			if cookie.MaxAge >= 0 {
				t.Errorf("cookie %s not expired", cookie.Name)
			}
		}
	})
}
