package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"metra-api/core/config"
)

// EmailMessage is a plain-text email.
type EmailMessage struct {
	To      []string
	Subject string
	Body    string
}

// SendEmail delivers a message through the configured SMTP relay.
// Returns an error when SMTP is not configured.
func SendEmail(msg EmailMessage) error {
	cfg, ok := config.GetSafe()
	if !ok || cfg.SMTPHost == "" {
		return fmt.Errorf("smtp not configured")
	}

	addr := fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort)
	auth := smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)

	body := strings.Join([]string{
		"From: " + cfg.SMTPFrom,
		"To: " + strings.Join(msg.To, ", "),
		"Subject: " + msg.Subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		msg.Body,
	}, "\r\n")

	return smtp.SendMail(addr, auth, cfg.SMTPFrom, msg.To, []byte(body))
}

func IsValidEmail(email string) bool {
	at := strings.Index(email, "@")
	dot := strings.LastIndex(email, ".")
	return at > 0 && dot > at+1 && dot < len(email)-1
}
