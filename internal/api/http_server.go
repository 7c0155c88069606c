package api

import (
	"strings"
	"time"

	"blogkit/internal/auth"
	"blogkit/internal/config"
	"blogkit/internal/mail"
	"blogkit/internal/model"
	"blogkit/internal/otp"
	"blogkit/internal/storage"
)

// HTTPHandler carries the wiring shared by all endpoints.
type HTTPHandler struct {
	cfg               config.Config
	repo              model.Repository
	storage           storage.Storage
	storagePublicBase string
	mailer            mail.Mailer
	authManager       *auth.Manager
	otpService        *otp.Service
}

// NewHTTPHandler creates the handler with its token manager and OTP
// service constructed from config.
func NewHTTPHandler(cfg config.Config, repo model.Repository, store storage.Storage, mailer mail.Mailer) (*HTTPHandler, error) {
	expiry := time.Duration(cfg.JWTExpirationMinutes) * time.Minute
	authManager, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, expiry)
	if err != nil {
		return nil, err
	}

	handler := &HTTPHandler{
		cfg:               cfg,
		repo:              repo,
		storage:           store,
		storagePublicBase: normalisePublicBase(cfg.StoragePublicBaseURL),
		mailer:            mailer,
		authManager:       authManager,
		otpService:        otp.NewService(repo),
	}

	return handler, nil
}

func normalisePublicBase(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		trimmed = "/files"
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return strings.TrimRight(trimmed, "/")
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	return strings.TrimRight(trimmed, "/")
}

// verifyEmailTTL is the lifetime of email verification codes.
func (h *HTTPHandler) verifyEmailTTL() time.Duration {
	return time.Duration(h.cfg.OtpVerifyEmailTTLMinutes) * time.Minute
}

// resetPasswordTTL is the lifetime of password reset codes.
func (h *HTTPHandler) resetPasswordTTL() time.Duration {
	return time.Duration(h.cfg.OtpResetPasswordTTLMinutes) * time.Minute
}
