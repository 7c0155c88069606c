package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"blogkit/internal/config"
)

const smtpDialTimeout = 10 * time.Second

// SMTPMailer sends HTML mail over SMTP.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	fromName string
	useTLS   bool
	appName  string
}

func NewSMTPMailer(cfg config.Config) (*SMTPMailer, error) {
	if strings.TrimSpace(cfg.SMTPHost) == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if strings.TrimSpace(cfg.SMTPFrom) == "" {
		return nil, fmt.Errorf("smtp from is required")
	}
	port := cfg.SMTPPort
	if port == 0 {
		port = 587
	}
	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     port,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
		fromName: cfg.SMTPFromName,
		useTLS:   cfg.SMTPUseTLS,
		appName:  cfg.AppName,
	}, nil
}

func (m *SMTPMailer) SendVerificationCode(ctx context.Context, toEmail, name, code string, expiresAt time.Time) error {
	body, err := renderTemplate("verify_email.html", m.appName, name, code, expiresAt)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("%s: verify your email", m.appName)
	return m.send(ctx, toEmail, subject, body)
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, toEmail, name, code string, expiresAt time.Time) error {
	body, err := renderTemplate("forgot_password.html", m.appName, name, code, expiresAt)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("%s: reset your password", m.appName)
	return m.send(ctx, toEmail, subject, body)
}

func (m *SMTPMailer) send(ctx context.Context, toEmail, subject, body string) error {
	if strings.TrimSpace(toEmail) == "" {
		return fmt.Errorf("to email is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := m.buildMessage(toEmail, subject, body)
	addr := fmt.Sprintf("%s:%d", m.host, m.port)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	dialer := &net.Dialer{Timeout: smtpDialTimeout}

	var client *smtp.Client
	if m.useTLS {
		conn, err := tls.DialWithDialer(dialer, "tcp", addr, &tls.Config{ServerName: m.host})
		if err != nil {
			return err
		}
		client, err = smtp.NewClient(conn, m.host)
		if err != nil {
			conn.Close()
			return err
		}
	} else {
		conn, err := dialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			return err
		}
		client, err = smtp.NewClient(conn, m.host)
		if err != nil {
			conn.Close()
			return err
		}
	}
	defer client.Quit()

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return err
		}
	}
	if err := client.Mail(m.from); err != nil {
		return err
	}
	if err := client.Rcpt(toEmail); err != nil {
		return err
	}
	writer, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := writer.Write([]byte(msg)); err != nil {
		_ = writer.Close()
		return err
	}
	return writer.Close()
}

func (m *SMTPMailer) buildMessage(to, subject, body string) string {
	fromHeader := m.from
	if strings.TrimSpace(m.fromName) != "" {
		fromHeader = fmt.Sprintf("%s <%s>", m.fromName, m.from)
	}

	headers := []string{
		fmt.Sprintf("From: %s", fromHeader),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
	}

	return strings.Join(headers, "\r\n") + "\r\n\r\n" + body
}
