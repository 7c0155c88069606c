package mail

import (
	"context"
	"fmt"
	"time"

	"blogkit/internal/config"

	"github.com/sirupsen/logrus"
)

// Mailer delivers the one-time code messages. The plaintext code is
// never persisted, so the mail is the only place it appears.
type Mailer interface {
	SendVerificationCode(ctx context.Context, toEmail, name, code string, expiresAt time.Time) error
	SendPasswordReset(ctx context.Context, toEmail, name, code string, expiresAt time.Time) error
}

const (
	AdapterDev  = "dev"
	AdapterSMTP = "smtp"
)

// NewMailer builds the configured mail adapter. The dev adapter logs
// codes instead of sending them and is the default outside production.
func NewMailer(cfg config.Config) (Mailer, error) {
	switch cfg.MailAdapter {
	case AdapterDev, "":
		return NewDevMailer(cfg.AppName), nil
	case AdapterSMTP:
		return NewSMTPMailer(cfg)
	default:
		return nil, fmt.Errorf("unsupported mail adapter: %s", cfg.MailAdapter)
	}
}

// DevMailer writes messages to the log instead of delivering them.
type DevMailer struct {
	appName string
}

func NewDevMailer(appName string) *DevMailer {
	return &DevMailer{appName: appName}
}

func (m *DevMailer) SendVerificationCode(_ context.Context, toEmail, name, code string, expiresAt time.Time) error {
	logrus.WithFields(logrus.Fields{
		"to":         toEmail,
		"name":       name,
		"code":       code,
		"expires_at": expiresAt.UTC().Format(time.RFC3339),
	}).Info("dev mailer: verification code")
	return nil
}

func (m *DevMailer) SendPasswordReset(_ context.Context, toEmail, name, code string, expiresAt time.Time) error {
	logrus.WithFields(logrus.Fields{
		"to":         toEmail,
		"name":       name,
		"code":       code,
		"expires_at": expiresAt.UTC().Format(time.RFC3339),
	}).Info("dev mailer: password reset code")
	return nil
}
