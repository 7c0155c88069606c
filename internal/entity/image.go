package entity

import "time"

// DbImage is an uploaded image owned by a user. Deleting the user
// removes their images (cascade handled by the repository).
type DbImage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	URL       string    `gorm:"column:url;type:varchar(500);not null" json:"url"`
	AltText   *string   `gorm:"column:alt_text;type:varchar(255)" json:"alt_text"`
	Title     *string   `gorm:"column:title;type:varchar(255)" json:"title"`
	UserID    uint      `gorm:"column:user_id;index;not null" json:"user_id"`

	UploadedBy *DbUser `gorm:"foreignKey:UserID" json:"-"`
}

// TableName overrides default pluralised name.
func (DbImage) TableName() string {
	return "images"
}

// ImageSummary mirrors an image in API responses.
type ImageSummary struct {
	ID         uint        `json:"id"`
	URL        string      `json:"url"`
	AltText    *string     `json:"alt_text"`
	Title      *string     `json:"title"`
	UploadedBy UserSummary `json:"uploaded_by"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

type ImageQuery struct {
	BaseParams
	Search string `json:"search" form:"search" query:"search"`
}

type ImageUpdateRequest struct {
	Title   *string `json:"title"`
	AltText *string `json:"alt_text"`
}

type ImageListResponse struct {
	Images []ImageSummary `json:"images"`
	Meta   *Meta          `json:"meta"`
}

// ImageUpdates carries partial image column updates.
type ImageUpdates struct {
	Title   *string
	AltText *string
}

// ToMap converts to a GORM updates map.
func (u ImageUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Title != nil {
		updates["title"] = *u.Title
	}
	if u.AltText != nil {
		updates["alt_text"] = *u.AltText
	}
	return updates
}

// IsEmpty reports whether no update fields are set.
func (u ImageUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}
