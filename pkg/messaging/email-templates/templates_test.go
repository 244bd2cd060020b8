package emailtemplates

import (
	"strings"
	"testing"
)

func TestBuildVerificationEmail(t *testing.T) {
	t.Run("link and expiry are rendered", func(t *testing.T) {
		subject, content, err := BuildVerificationEmail(VerificationEmailPayload{
			Name:             "Alice",
			VerificationLink: "https://app.example.com/verify-email?token=abc123",
			ExpiresInHours:   24,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if subject != SUBJECT_VERIFICATION {
			t.Errorf("unexpected subject: %s", subject)
		}
		if !strings.Contains(content, "https://app.example.com/verify-email?token=abc123") {
			t.Error("verification link missing from content")
		}
		if !strings.Contains(content, "24 hours") {
			t.Error("expiry notice missing from content")
		}
		if !strings.Contains(content, "Alice") {
			t.Error("name missing from content")
		}
	})

	t.Run("works without a name", func(t *testing.T) {
		_, content, err := BuildVerificationEmail(VerificationEmailPayload{
			VerificationLink: "https://app.example.com/verify-email?token=abc123",
			ExpiresInHours:   24,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(content, "Welcome,") {
			t.Error("greeting should not contain a dangling comma")
		}
	})
}

func TestBuildLoginOtpEmail(t *testing.T) {
	subject, content, err := BuildLoginOtpEmail(LoginOtpEmailPayload{
		Name:             "Bob",
		OtpCode:          "123456",
		ExpiresInMinutes: 5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if subject != SUBJECT_LOGIN_OTP {
		t.Errorf("unexpected subject: %s", subject)
	}
	if !strings.Contains(content, "123456") {
		t.Error("code missing from content")
	}
	if !strings.Contains(content, "5 minutes") {
		t.Error("expiry notice missing from content")
	}
}
