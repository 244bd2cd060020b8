package utils

import (
	"strconv"
	"testing"
)

func TestSanitizeEmail(t *testing.T) {
	t.Run("with different formats", func(t *testing.T) {
		email := SanitizeEmail("\nAnn@test.DE")
		if email != "ann@test.de" {
			t.Errorf("unexpected email: %s", email)
		}

		email = SanitizeEmail("  \n ann@test.DE \n\r")
		if email != "ann@test.de" {
			t.Errorf("unexpected email: %s", email)
		}

		email = SanitizeEmail("ann@test.de")
		if email != "ann@test.de" {
			t.Errorf("unexpected email: %s", email)
		}
	})
}

func TestCheckEmailFormat(t *testing.T) {
	t.Run("with missing @", func(t *testing.T) {
		if CheckEmailFormat("t.t.com") {
			t.Error("should be false")
		}
	})
	t.Run("with missing domain", func(t *testing.T) {
		if CheckEmailFormat("t@t") {
			t.Error("should be false")
		}
	})
	t.Run("with valid addresses", func(t *testing.T) {
		if !CheckEmailFormat("ann@x.com") {
			t.Error("should be true")
		}
		if !CheckEmailFormat("a.name+tag@sub.example.org") {
			t.Error("should be true")
		}
	})
}

func TestCheckPasswordFormat(t *testing.T) {
	t.Run("with a too short password", func(t *testing.T) {
		if CheckPasswordFormat("pw123") {
			t.Error("should be false")
		}
	})
	t.Run("with acceptable passwords", func(t *testing.T) {
		if !CheckPasswordFormat("pw1234") {
			t.Error("should be true")
		}
		if !CheckPasswordFormat("a much longer pass phrase") {
			t.Error("should be true")
		}
	})
}

func TestGenerateVerificationTokenString(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 10; i++ {
		token, err := GenerateVerificationTokenString()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(token) != 64 {
			t.Errorf("unexpected token length: %d", len(token))
		}
		if _, ok := seen[token]; ok {
			t.Errorf("token repeated: %s", token)
		}
		seen[token] = struct{}{}
	}
}

func TestGenerateOTPCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := GenerateOTPCode()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(code) != 6 {
			t.Errorf("unexpected code length: %s", code)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("code not numeric: %s", code)
		}
		if n < 100000 || n > 999999 {
			t.Errorf("code out of range: %d", n)
		}
	}
}
