package emailsending

import (
	"fmt"
	"net/url"

	emailTemplates "github.com/alvin0727/AI-Chatbot/pkg/messaging/email-templates"
	smtpclient "github.com/alvin0727/AI-Chatbot/pkg/smtp-client"
)

// Config controls how the outgoing auth emails are assembled.
type Config struct {
	// VerificationURL is the frontend page that accepts the token as the
	// `token` query parameter.
	VerificationURL         string
	VerificationExpiryHours int
	OtpExpiryMinutes        int
}

// EmailSender delivers the auth emails through the SMTP connection pool.
type EmailSender struct {
	clients *smtpclient.SmtpClients
	config  Config
}

func NewEmailSender(clients *smtpclient.SmtpClients, config Config) *EmailSender {
	return &EmailSender{
		clients: clients,
		config:  config,
	}
}

func (s *EmailSender) SendVerificationEmail(toAddr string, token string) error {
	subject, content, err := emailTemplates.BuildVerificationEmail(emailTemplates.VerificationEmailPayload{
		VerificationLink: fmt.Sprintf("%s?token=%s", s.config.VerificationURL, url.QueryEscape(token)),
		ExpiresInHours:   s.config.VerificationExpiryHours,
	})
	if err != nil {
		return err
	}
	return s.clients.SendMail([]string{toAddr}, subject, content)
}

func (s *EmailSender) SendLoginOtpEmail(toAddr string, code string) error {
	subject, content, err := emailTemplates.BuildLoginOtpEmail(emailTemplates.LoginOtpEmailPayload{
		OtpCode:          code,
		ExpiresInMinutes: s.config.OtpExpiryMinutes,
	})
	if err != nil {
		return err
	}
	return s.clients.SendMail([]string{toAddr}, subject, content)
}
