package entity

import "time"

// DbBlog is a blog post. Category and thumbnail references survive the
// deletion of their targets (SET NULL semantics).
type DbBlog struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Slug         string    `gorm:"column:slug;type:varchar(255);uniqueIndex;not null" json:"slug"`
	Title        string    `gorm:"column:title;type:varchar(255);not null" json:"title"`
	IsPublished  bool      `gorm:"column:is_published;not null;default:false" json:"is_published"`
	ShortDesc    *string   `gorm:"column:short_desc;type:varchar(500)" json:"short_desc"`
	Content      *string   `gorm:"column:content;type:text" json:"content"`
	MetaTitle    *string   `gorm:"column:meta_title;type:varchar(100)" json:"meta_title"`
	MetaKeywords *string   `gorm:"column:meta_keywords;type:varchar(100)" json:"meta_keywords"`
	MetaDesc     *string   `gorm:"column:meta_desc;type:varchar(500)" json:"meta_desc"`
	CategoryID   *uint     `gorm:"column:category_id;index" json:"category_id"`
	ThumbnailID  *uint     `gorm:"column:thumbnail_id" json:"thumbnail_id"`

	Category  *DbBlogCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Thumbnail *DbImage        `gorm:"foreignKey:ThumbnailID" json:"thumbnail,omitempty"`
}

// TableName overrides default pluralised name.
func (DbBlog) TableName() string {
	return "blogs"
}

// DbBlogCategory groups blogs under a unique slug.
type DbBlogCategory struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Slug         string    `gorm:"column:slug;type:varchar(50);uniqueIndex;not null" json:"slug"`
	Name         string    `gorm:"column:name;type:varchar(50);not null" json:"name"`
	IsPublished  bool      `gorm:"column:is_published;not null;default:false" json:"is_published"`
	ShortDesc    *string   `gorm:"column:short_desc;type:varchar(500)" json:"short_desc"`
	MetaTitle    *string   `gorm:"column:meta_title;type:varchar(100)" json:"meta_title"`
	MetaKeywords *string   `gorm:"column:meta_keywords;type:varchar(100)" json:"meta_keywords"`
	MetaDesc     *string   `gorm:"column:meta_desc;type:varchar(500)" json:"meta_desc"`
	ThumbnailID  *uint     `gorm:"column:thumbnail_id" json:"thumbnail_id"`

	Thumbnail *DbImage `gorm:"foreignKey:ThumbnailID" json:"thumbnail,omitempty"`
}

// TableName overrides default pluralised name.
func (DbBlogCategory) TableName() string {
	return "blog_categories"
}

type BlogQuery struct {
	BaseParams
	Search        string `json:"search" form:"search" query:"search"`
	CategoryID    uint   `json:"category_id" form:"category_id" query:"category_id"`
	PublishedOnly bool   `json:"-" form:"-" query:"-"`
}

type BlogCreateRequest struct {
	Slug         string  `json:"slug" binding:"required"`
	Title        string  `json:"title" binding:"required"`
	IsPublished  bool    `json:"is_published"`
	ShortDesc    *string `json:"short_desc"`
	Content      *string `json:"content"`
	MetaTitle    *string `json:"meta_title"`
	MetaKeywords *string `json:"meta_keywords"`
	MetaDesc     *string `json:"meta_desc"`
	CategoryID   *uint   `json:"category_id"`
	ThumbnailID  *uint   `json:"thumbnail_id"`
}

type BlogUpdateRequest struct {
	Slug         *string `json:"slug,omitempty"`
	Title        *string `json:"title,omitempty"`
	IsPublished  *bool   `json:"is_published,omitempty"`
	ShortDesc    *string `json:"short_desc,omitempty"`
	Content      *string `json:"content,omitempty"`
	MetaTitle    *string `json:"meta_title,omitempty"`
	MetaKeywords *string `json:"meta_keywords,omitempty"`
	MetaDesc     *string `json:"meta_desc,omitempty"`
	CategoryID   *uint   `json:"category_id,omitempty"`
	ThumbnailID  *uint   `json:"thumbnail_id,omitempty"`
}

type BlogListResponse struct {
	Blogs []DbBlog `json:"blogs"`
	Meta  *Meta    `json:"meta"`
}

type BlogCategoryQuery struct {
	BaseParams
	Search        string `json:"search" form:"search" query:"search"`
	PublishedOnly bool   `json:"-" form:"-" query:"-"`
}

type BlogCategoryCreateRequest struct {
	Slug         string  `json:"slug" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	IsPublished  bool    `json:"is_published"`
	ShortDesc    *string `json:"short_desc"`
	MetaTitle    *string `json:"meta_title"`
	MetaKeywords *string `json:"meta_keywords"`
	MetaDesc     *string `json:"meta_desc"`
	ThumbnailID  *uint   `json:"thumbnail_id"`
}

type BlogCategoryUpdateRequest struct {
	Slug         *string `json:"slug,omitempty"`
	Name         *string `json:"name,omitempty"`
	IsPublished  *bool   `json:"is_published,omitempty"`
	ShortDesc    *string `json:"short_desc,omitempty"`
	MetaTitle    *string `json:"meta_title,omitempty"`
	MetaKeywords *string `json:"meta_keywords,omitempty"`
	MetaDesc     *string `json:"meta_desc,omitempty"`
	ThumbnailID  *uint   `json:"thumbnail_id,omitempty"`
}

type BlogCategoryListResponse struct {
	Categories []DbBlogCategory `json:"categories"`
	Meta       *Meta            `json:"meta"`
}

// BlogUpdates carries partial blog column updates.
type BlogUpdates struct {
	Slug         *string
	Title        *string
	IsPublished  *bool
	ShortDesc    *string
	Content      *string
	MetaTitle    *string
	MetaKeywords *string
	MetaDesc     *string
	CategoryID   **uint
	ThumbnailID  **uint
}

// ToMap converts to a GORM updates map.
func (u BlogUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Slug != nil {
		updates["slug"] = *u.Slug
	}
	if u.Title != nil {
		updates["title"] = *u.Title
	}
	if u.IsPublished != nil {
		updates["is_published"] = *u.IsPublished
	}
	if u.ShortDesc != nil {
		updates["short_desc"] = *u.ShortDesc
	}
	if u.Content != nil {
		updates["content"] = *u.Content
	}
	if u.MetaTitle != nil {
		updates["meta_title"] = *u.MetaTitle
	}
	if u.MetaKeywords != nil {
		updates["meta_keywords"] = *u.MetaKeywords
	}
	if u.MetaDesc != nil {
		updates["meta_desc"] = *u.MetaDesc
	}
	if u.CategoryID != nil {
		updates["category_id"] = *u.CategoryID
	}
	if u.ThumbnailID != nil {
		updates["thumbnail_id"] = *u.ThumbnailID
	}
	return updates
}

// IsEmpty reports whether no update fields are set.
func (u BlogUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// BlogCategoryUpdates carries partial category column updates.
type BlogCategoryUpdates struct {
	Slug         *string
	Name         *string
	IsPublished  *bool
	ShortDesc    *string
	MetaTitle    *string
	MetaKeywords *string
	MetaDesc     *string
	ThumbnailID  **uint
}

// ToMap converts to a GORM updates map.
func (u BlogCategoryUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Slug != nil {
		updates["slug"] = *u.Slug
	}
	if u.Name != nil {
		updates["name"] = *u.Name
	}
	if u.IsPublished != nil {
		updates["is_published"] = *u.IsPublished
	}
	if u.ShortDesc != nil {
		updates["short_desc"] = *u.ShortDesc
	}
	if u.MetaTitle != nil {
		updates["meta_title"] = *u.MetaTitle
	}
	if u.MetaKeywords != nil {
		updates["meta_keywords"] = *u.MetaKeywords
	}
	if u.MetaDesc != nil {
		updates["meta_desc"] = *u.MetaDesc
	}
	if u.ThumbnailID != nil {
		updates["thumbnail_id"] = *u.ThumbnailID
	}
	return updates
}

// IsEmpty reports whether no update fields are set.
func (u BlogCategoryUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}
