package mailer

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

// Mailer delivers transactional email. Implementations must not retry;
// callers decide whether a failure matters.
type Mailer interface {
	SendPasswordReset(to, resetURL string) error
}

// Default is the process-wide mailer. Tests replace it.
var Default Mailer

// Init selects the mailer implementation from the environment. Without SMTP
// configuration the reset link is only logged, which is what local
// development wants.
func Init() {
	Default = NewFromEnv()
}

// Get returns the configured mailer, initializing from the environment on
// first use.
func Get() Mailer {
	if Default == nil {
		Default = NewFromEnv()
	}
	return Default
}

func NewFromEnv() Mailer {
	host := strings.TrimSpace(os.Getenv("SMTP_HOST"))
	if host == "" {
		log.Println("SMTP_HOST not set, password reset emails will be logged only")
		return &LogMailer{}
	}

	return &SMTPMailer{
		Host:     host,
		Port:     envOrDefault("SMTP_PORT", "587"),
		Username: strings.TrimSpace(os.Getenv("SMTP_USERNAME")),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     envOrDefault("SMTP_FROM", "no-reply@wavehub.local"),
	}
}

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func (m *SMTPMailer) SendPasswordReset(to, resetURL string) error {
	subject := "Reset your wavehub password"
	body := fmt.Sprintf(
		"Someone requested a password reset for your account.\r\n\r\n"+
			"Follow this link to choose a new password (valid for one hour):\r\n%s\r\n\r\n"+
			"If this wasn't you, you can ignore this email.\r\n",
		resetURL,
	)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		m.From, to, subject, body,
	))

	addr := m.Host + ":" + m.Port
	var auth smtp.Auth
	if m.Username != "" {
		auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
	}

	return smtp.SendMail(addr, auth, m.From, []string{to}, msg)
}

// LogMailer writes the reset link to the server log instead of sending it.
type LogMailer struct{}

func (m *LogMailer) SendPasswordReset(to, resetURL string) error {
	log.Printf("password reset email (not sent): to=%s url=%s", to, resetURL)
	return nil
}

func envOrDefault(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value != "" {
		return value
	}
	return fallback
}
