package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ihza6661/computer-store-rest-api-sub000/models"
)

type ImageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

func (r *ImageRepository) Create(ctx context.Context, img *models.ProductImage) error {
	return r.db.WithContext(ctx).Create(img).Error
}

func (r *ImageRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.ProductImage, error) {
	var img models.ProductImage
	err := r.db.WithContext(ctx).First(&img, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *ImageRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.ProductImage, error) {
	var images []models.ProductImage
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("sort_order ASC").
		Find(&images).Error
	return images, err
}

func (r *ImageRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProductImage{}).
		Where("product_id = ?", productID).
		Count(&count).Error
	return count, err
}

func (r *ImageRepository) NextSortOrder(ctx context.Context, productID uuid.UUID) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).Model(&models.ProductImage{}).
		Where("product_id = ?", productID).
		Select("MAX(sort_order)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max + 1, nil
}

func (r *ImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ProductImage{}, "id = ?", id).Error
}

// DeletePromoting removes an image and makes the successor the product's
// primary in one transaction, so readers never see a product whose images
// all have is_primary false.
func (r *ImageRepository) DeletePromoting(ctx context.Context, productID, imageID, successorID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ProductImage{}, "id = ?", imageID).Error; err != nil {
			return err
		}
		return promoteTx(tx, productID, successorID)
	})
}

// Promote makes the given image the product's only primary and mirrors its
// URLs onto the product row. Runs in one transaction so concurrent readers
// never observe zero or two primary images.
func (r *ImageRepository) Promote(ctx context.Context, productID, imageID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return promoteTx(tx, productID, imageID)
	})
}

func promoteTx(tx *gorm.DB, productID, imageID uuid.UUID) error {
	var img models.ProductImage
	if err := tx.First(&img, "id = ? AND product_id = ?", imageID, productID).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.ProductImage{}).
		Where("product_id = ? AND id <> ?", productID, imageID).
		Update("is_primary", false).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.ProductImage{}).
		Where("id = ?", imageID).
		Update("is_primary", true).Error; err != nil {
		return err
	}
	return tx.Model(&models.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"image_url":     img.URL,
			"thumbnail_url": img.ThumbnailURL,
		}).Error
}
