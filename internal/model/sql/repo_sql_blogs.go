package sql

import (
	"blogkit/internal/entity"
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// CreateBlog persists a new blog post.
func (r *GormRepository) CreateBlog(ctx context.Context, blog *entity.DbBlog) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if blog == nil {
		return fmt.Errorf("blog is nil")
	}
	return r.db.WithContext(ctx).Create(blog).Error
}

// GetBlogByID loads a blog with category and thumbnail preloaded.
func (r *GormRepository) GetBlogByID(ctx context.Context, id uint) (*entity.DbBlog, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid blog id")
	}
	var blog entity.DbBlog
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Thumbnail").
		First(&blog, id).Error; err != nil {
		return nil, err
	}
	return &blog, nil
}

// GetBlogBySlug loads a blog by its unique slug.
func (r *GormRepository) GetBlogBySlug(ctx context.Context, slug string) (*entity.DbBlog, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return nil, fmt.Errorf("slug is empty")
	}
	var blog entity.DbBlog
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Thumbnail").
		Where("slug = ?", trimmed).
		First(&blog).Error; err != nil {
		return nil, err
	}
	return &blog, nil
}

// ListBlogs returns paginated blogs, newest first.
func (r *GormRepository) ListBlogs(ctx context.Context, params *entity.BlogQuery) ([]entity.DbBlog, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}

	query := r.db.WithContext(ctx).Model(&entity.DbBlog{})
	if params != nil {
		if params.PublishedOnly {
			query = query.Where("is_published = ?", true)
		}
		if params.CategoryID > 0 {
			query = query.Where("category_id = ?", params.CategoryID)
		}
		if search := strings.TrimSpace(params.Search); search != "" {
			kw := "%" + strings.ToLower(search) + "%"
			query = query.Where("LOWER(title) LIKE ? OR LOWER(slug) LIKE ?", kw, kw)
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

	var blogs []entity.DbBlog
	if err := query.
		Preload("Category").
		Preload("Thumbnail").
		Order("id DESC").Offset(offset).Limit(pageSize).
		Find(&blogs).Error; err != nil {
		return nil, nil, err
	}

	meta := r.calculatePagination(total, page, pageSize)
	return blogs, meta, nil
}

// UpdateBlog updates blog columns by ID.
func (r *GormRepository) UpdateBlog(ctx context.Context, id uint, updates entity.BlogUpdates) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid blog id")
	}
	if updates.IsEmpty() {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&entity.DbBlog{}).Where("id = ?", id).Updates(updates.ToMap())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteBlog removes a blog by ID.
func (r *GormRepository) DeleteBlog(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid blog id")
	}
	result := r.db.WithContext(ctx).Delete(&entity.DbBlog{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateBlogCategory persists a new category.
func (r *GormRepository) CreateBlogCategory(ctx context.Context, category *entity.DbBlogCategory) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if category == nil {
		return fmt.Errorf("category is nil")
	}
	return r.db.WithContext(ctx).Create(category).Error
}

// GetBlogCategoryByID loads a category with its thumbnail preloaded.
func (r *GormRepository) GetBlogCategoryByID(ctx context.Context, id uint) (*entity.DbBlogCategory, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid category id")
	}
	var category entity.DbBlogCategory
	if err := r.db.WithContext(ctx).Preload("Thumbnail").First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// GetBlogCategoryBySlug loads a category by its unique slug.
func (r *GormRepository) GetBlogCategoryBySlug(ctx context.Context, slug string) (*entity.DbBlogCategory, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return nil, fmt.Errorf("slug is empty")
	}
	var category entity.DbBlogCategory
	if err := r.db.WithContext(ctx).
		Preload("Thumbnail").
		Where("slug = ?", trimmed).
		First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// ListBlogCategories returns paginated categories.
func (r *GormRepository) ListBlogCategories(ctx context.Context, params *entity.BlogCategoryQuery) ([]entity.DbBlogCategory, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, fmt.Errorf("repository not initialised")
	}

	query := r.db.WithContext(ctx).Model(&entity.DbBlogCategory{})
	if params != nil {
		if params.PublishedOnly {
			query = query.Where("is_published = ?", true)
		}
		if search := strings.TrimSpace(params.Search); search != "" {
			kw := "%" + strings.ToLower(search) + "%"
			query = query.Where("LOWER(name) LIKE ? OR LOWER(slug) LIKE ?", kw, kw)
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

	var categories []entity.DbBlogCategory
	if err := query.Preload("Thumbnail").Order("id ASC").Offset(offset).Limit(pageSize).Find(&categories).Error; err != nil {
		return nil, nil, err
	}

	meta := r.calculatePagination(total, page, pageSize)
	return categories, meta, nil
}

// UpdateBlogCategory updates category columns by ID.
func (r *GormRepository) UpdateBlogCategory(ctx context.Context, id uint, updates entity.BlogCategoryUpdates) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid category id")
	}
	if updates.IsEmpty() {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&entity.DbBlogCategory{}).Where("id = ?", id).Updates(updates.ToMap())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteBlogCategory removes a category and detaches its blogs.
func (r *GormRepository) DeleteBlogCategory(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if id == 0 {
		return fmt.Errorf("invalid category id")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.DbBlog{}).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&entity.DbBlogCategory{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
