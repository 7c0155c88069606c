package sql

import (
	"blogkit/internal/entity"
	"context"
	"fmt"
	"strings"
)

// CreateOtp persists a new one-time code row.
func (r *GormRepository) CreateOtp(ctx context.Context, otp *entity.DbOtp) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if otp == nil {
		return fmt.Errorf("otp is nil")
	}
	return r.db.WithContext(ctx).Create(otp).Error
}

// LatestUnusedOtp returns the most recently created unused code for the
// email/purpose pair. Older unused rows are ignored.
func (r *GormRepository) LatestUnusedOtp(ctx context.Context, email, purpose string) (*entity.DbOtp, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return nil, fmt.Errorf("email is empty")
	}

	var otp entity.DbOtp
	if err := r.db.WithContext(ctx).
		Where("LOWER(email) = ? AND purpose = ? AND is_used = ?", strings.ToLower(trimmed), purpose, false).
		Order("created_at DESC, id DESC").
		First(&otp).Error; err != nil {
		return nil, err
	}
	return &otp, nil
}

// ConsumeOtp flips is_used on the row if it is still unused. The guard
// on is_used makes consumption atomic: of two racing callers only one
// sees an affected row.
func (r *GormRepository) ConsumeOtp(ctx context.Context, id uint) (bool, error) {
	if r == nil || r.db == nil {
		return false, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return false, fmt.Errorf("invalid otp id")
	}

	result := r.db.WithContext(ctx).Model(&entity.DbOtp{}).
		Where("id = ? AND is_used = ?", id, false).
		Update("is_used", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
