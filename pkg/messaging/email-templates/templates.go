package emailtemplates

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

const (
	SUBJECT_VERIFICATION = "Verify your email address"
	SUBJECT_LOGIN_OTP    = "Your login code"
)

// VerificationEmailPayload fills the account verification email.
type VerificationEmailPayload struct {
	Name             string
	VerificationLink string
	ExpiresInHours   int
}

// LoginOtpEmailPayload fills the second factor login email.
type LoginOtpEmailPayload struct {
	Name             string
	OtpCode          string
	ExpiresInMinutes int
}

const verificationEmailTemplate = `<html>
<body style="font-family: sans-serif; color: #1f2933;">
	<h2>Welcome{{if .Name}}, {{.Name}}{{end}}!</h2>
	<p>Please confirm your email address to activate your account:</p>
	<p>
		<a href="{{.VerificationLink}}" style="display: inline-block; padding: 12px 24px; background-color: #2563eb; color: #ffffff; text-decoration: none; border-radius: 6px;">Verify email address</a>
	</p>
	<p>Or copy this link into your browser:</p>
	<p>{{.VerificationLink}}</p>
	<p style="color: #6b7280;">The link is valid for {{.ExpiresInHours}} hours. If you did not create an account, you can ignore this email.</p>
</body>
</html>`

const loginOtpEmailTemplate = `<html>
<body style="font-family: sans-serif; color: #1f2933;">
	<h2>Your login code</h2>
	<p>{{if .Name}}Hi {{.Name}}, use{{else}}Use{{end}} this code to finish signing in:</p>
	<p style="font-size: 32px; letter-spacing: 8px; font-weight: bold;">{{.OtpCode}}</p>
	<p style="color: #6b7280;">The code expires in {{.ExpiresInMinutes}} minutes. If you did not try to log in, change your password.</p>
</body>
</html>`

func ResolveTemplate(tempName string, templateDef string, payload any) (content string, err error) {
	if strings.TrimSpace(templateDef) == "" {
		return "", errors.New("empty template " + tempName)
	}
	tmpl, err := template.New(tempName).Parse(templateDef)
	if err != nil {
		return "", fmt.Errorf("error when parsing template %s: %v", tempName, err)
	}
	var tpl bytes.Buffer
	if err := tmpl.Execute(&tpl, payload); err != nil {
		return "", fmt.Errorf("error during executing template %s: %v", tempName, err)
	}
	return tpl.String(), nil
}

func BuildVerificationEmail(payload VerificationEmailPayload) (subject string, content string, err error) {
	content, err = ResolveTemplate("email-verification", verificationEmailTemplate, payload)
	return SUBJECT_VERIFICATION, content, err
}

func BuildLoginOtpEmail(payload LoginOtpEmailPayload) (subject string, content string, err error) {
	content, err = ResolveTemplate("login-otp", loginOtpEmailTemplate, payload)
	return SUBJECT_LOGIN_OTP, content, err
}
