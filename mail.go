package main

import (
	"log"
	"net/smtp"
	"os"
)

// Mailer delivers password-reset codes. Delivery is fire-and-forget: callers
// run it in a goroutine and only log failures.
type Mailer interface {
	SendPasswordResetCode(email, code string) error
}

// newMailerFromEnv returns an SMTP mailer when SMTP_HOST is configured and a
// log-only mailer otherwise (development).
func newMailerFromEnv() Mailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return logMailer{}
	}
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	user := os.Getenv("SMTP_USER")
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = user
	}
	var auth smtp.Auth
	if user != "" {
		auth = smtp.PlainAuth("", user, os.Getenv("SMTP_PASS"), host)
	}
	return &smtpMailer{addr: host + ":" + port, from: from, auth: auth}
}

type smtpMailer struct {
	addr string
	from string
	auth smtp.Auth
}

func (m *smtpMailer) SendPasswordResetCode(email, code string) error {
	msg := []byte("From: " + m.from + "\r\n" +
		"To: " + email + "\r\n" +
		"Subject: Expenzaar password reset\r\n" +
		"\r\n" +
		"Your password reset code is " + code + ". It expires in 15 minutes.\r\n")
	return smtp.SendMail(m.addr, m.auth, m.from, []string{email}, msg)
}

type logMailer struct{}

func (logMailer) SendPasswordResetCode(email, code string) error {
	log.Printf("password reset code for %s: %s", email, code)
	return nil
}
