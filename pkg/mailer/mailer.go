package mailer

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

// Config holds SMTP connection details.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer sends mail over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// New creates a Mailer for the given SMTP config.
func New(cfg Config) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// Send delivers a plain-text message to a single recipient.
func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

// WelcomeBody composes the account-created message. It echoes the
// plaintext password back to the new user.
func WelcomeBody(name, lastName, email, password string) string {
	return fmt.Sprintf(
		"Hello %s %s,\n\nYour account has been created successfully.\nHere are your login details:\n\nEmail: %s\nPassword: %s\n\nRegards,\nThe team",
		name, lastName, email, password,
	)
}
