package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductImage is one hosted image of a product. Exactly one image per
// product carries IsPrimary while the product has any images at all.
type ProductImage struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID    uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	URL          string    `gorm:"size:2048;not null" json:"url"`
	ThumbnailURL string    `gorm:"size:2048" json:"thumbnail_url"`
	PublicID     string    `gorm:"size:512" json:"-"` // asset host identifier, used for destroy
	IsPrimary    bool      `gorm:"not null;default:false" json:"is_primary"`
	SortOrder    int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
