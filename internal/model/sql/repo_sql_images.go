package sql

import (
	"blogkit/internal/entity"
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// CreateImage persists a new image record.
func (r *GormRepository) CreateImage(ctx context.Context, image *entity.DbImage) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if image == nil {
		return fmt.Errorf("image is nil")
	}
	return r.db.WithContext(ctx).Create(image).Error
}

// GetImageByID loads an image with its uploader preloaded.
func (r *GormRepository) GetImageByID(ctx context.Context, id uint) (*entity.DbImage, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid image id")
	}
	var image entity.DbImage
	if err := r.db.WithContext(ctx).Preload("UploadedBy").First(&image, id).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

// ListImages returns paginated images, newest first, with uploaders
// preloaded.
func (r *GormRepository) ListImages(ctx context.Context, params *entity.ImageQuery) ([]entity.DbImage, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}

	query := r.db.WithContext(ctx).Model(&entity.DbImage{})
	if params != nil {
		if search := strings.TrimSpace(params.Search); search != "" {
			kw := "%" + strings.ToLower(search) + "%"
			query = query.Where("LOWER(title) LIKE ? OR LOWER(alt_text) LIKE ?", kw, kw)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var base *entity.BaseParams
	if params != nil {
		base = &params.BaseParams
	}
	page, pageSize, offset := pageWindow(base)

	var images []entity.DbImage
	if err := query.Preload("UploadedBy").Order("id DESC").Offset(offset).Limit(pageSize).Find(&images).Error; err != nil {
		return nil, nil, err
	}

	meta := r.calculatePagination(total, page, pageSize)
	return images, meta, nil
}

// UpdateImage updates image columns by ID.
func (r *GormRepository) UpdateImage(ctx context.Context, id uint, updates entity.ImageUpdates) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid image id")
	}
	if updates.IsEmpty() {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&entity.DbImage{}).Where("id = ?", id).Updates(updates.ToMap())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteImage removes an image row and clears thumbnail references
// pointing at it.
func (r *GormRepository) DeleteImage(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid image id")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.DbBlog{}).Where("thumbnail_id = ?", id).Update("thumbnail_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&entity.DbBlogCategory{}).Where("thumbnail_id = ?", id).Update("thumbnail_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&entity.DbImage{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
