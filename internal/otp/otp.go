package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"blogkit/internal/auth"
	"blogkit/internal/entity"

	"gorm.io/gorm"
)

var (
	// ErrOtpNotFound means no unused code exists for the email/purpose
	// pair, including the case where a concurrent request consumed it.
	ErrOtpNotFound = errors.New("otp not found")
	// ErrOtpExpired means the newest unused code has passed its expiry.
	ErrOtpExpired = errors.New("otp expired")
	// ErrOtpInvalid means the candidate did not match the stored hash.
	// The row stays unused and a later correct attempt still succeeds.
	ErrOtpInvalid = errors.New("invalid otp")
)

// DefaultDigits is the standard one-time code length.
const DefaultDigits = 6

// Store is the slice of the repository the OTP service needs.
// ConsumeOtp must be an atomic conditional update: it reports false
// when the row was already used, so two racing consumers cannot both
// succeed.
type Store interface {
	CreateOtp(ctx context.Context, otp *entity.DbOtp) error
	LatestUnusedOtp(ctx context.Context, email, purpose string) (*entity.DbOtp, error)
	ConsumeOtp(ctx context.Context, id uint) (bool, error)
}

// Service issues and consumes one-time codes. Codes are hashed before
// storage; the plaintext exists only in the Issue return value, for
// mail delivery.
type Service struct {
	store Store
}

// NewService creates an OTP service backed by the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// GenerateCode produces a fixed-length numeric code from a
// cryptographic random source.
func GenerateCode(digits int) (string, error) {
	if digits <= 0 {
		digits = DefaultDigits
	}
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", digits, n), nil
}

// Issue creates and persists a new code for the email/purpose pair.
// Older unused codes are left in place; only the newest one is ever
// consulted by VerifyAndConsume.
func (s *Service) Issue(ctx context.Context, email, purpose string, ttl time.Duration) (string, *entity.DbOtp, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", nil, errors.New("email is empty")
	}

	code, err := GenerateCode(DefaultDigits)
	if err != nil {
		return "", nil, err
	}
	hash, err := auth.HashSecret(code)
	if err != nil {
		return "", nil, err
	}

	record := &entity.DbOtp{
		Email:     email,
		OtpHash:   hash,
		Purpose:   purpose,
		ExpiresAt: time.Now().UTC().Add(ttl),
		IsUsed:    false,
	}
	if err := s.store.CreateOtp(ctx, record); err != nil {
		return "", nil, err
	}
	return code, record, nil
}

// VerifyAndConsume validates the candidate against the most recently
// created unused code for the email/purpose pair and marks it used on
// success. At most one caller can win the consumption.
func (s *Service) VerifyAndConsume(ctx context.Context, email, purpose, candidate string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	candidate = strings.TrimSpace(candidate)

	record, err := s.store.LatestUnusedOtp(ctx, email, purpose)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOtpNotFound
		}
		return err
	}
	if !time.Now().UTC().Before(record.ExpiresAt) {
		return ErrOtpExpired
	}
	if err := auth.VerifySecret(record.OtpHash, candidate); err != nil {
		return ErrOtpInvalid
	}

	consumed, err := s.store.ConsumeOtp(ctx, record.ID)
	if err != nil {
		return err
	}
	if !consumed {
		return ErrOtpNotFound
	}
	return nil
}
