package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Product is a catalog item. ImageURL and ThumbnailURL mirror the primary
// ProductImage so listing reads never join the images table.
type Product struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CategoryID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"category_id"`
	Category       *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Name           string          `gorm:"size:255;not null" json:"name"`
	Description    string          `gorm:"type:text" json:"description"`
	Brand          string          `gorm:"size:255" json:"brand"`
	Price          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	SKU            string          `gorm:"size:255;not null;uniqueIndex:idx_products_sku,where:deleted_at IS NULL" json:"sku"`
	Stock          int             `gorm:"not null;default:0" json:"stock"`
	Specifications datatypes.JSON  `gorm:"type:jsonb" json:"specifications,omitempty"`
	ImageURL       string          `gorm:"size:2048" json:"image_url"`
	ThumbnailURL   string          `gorm:"size:2048" json:"thumbnail_url"`
	Images         []ProductImage  `gorm:"foreignKey:ProductID" json:"images,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}
