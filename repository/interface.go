package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ihza6661/computer-store-rest-api-sub000/models"
)

// ProductListParams narrows product listing queries.
type ProductListParams struct {
	Page       int
	PerPage    int
	CategoryID *uuid.UUID
	Search     string
}

// ProductRepo persists products. Lookups return (nil, nil) when no row
// matches so callers can distinguish absence from storage failure.
type ProductRepo interface {
	Create(ctx context.Context, p *models.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindBySKU(ctx context.Context, sku string) (*models.Product, error)
	List(ctx context.Context, params ProductListParams) ([]models.Product, int64, error)
	Update(ctx context.Context, p *models.Product) error
	UpdatePrimaryImage(ctx context.Context, id uuid.UUID, imageURL, thumbnailURL string) error
	SoftDelete(ctx context.Context, id uuid.UUID) (int64, error)
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
}

type CategoryRepo interface {
	Create(ctx context.Context, c *models.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	// FindByName matches the trimmed name case-insensitively.
	FindByName(ctx context.Context, name string) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	Update(ctx context.Context, c *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

// ImageRepo persists product images. Promote atomically makes one image the
// product's primary: it clears every other primary flag and mirrors the
// image URLs onto the product row in the same transaction.
type ImageRepo interface {
	Create(ctx context.Context, img *models.ProductImage) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.ProductImage, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.ProductImage, error)
	CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error)
	NextSortOrder(ctx context.Context, productID uuid.UUID) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// DeletePromoting removes an image and promotes the successor in the
	// same transaction, so readers never observe a product with images but
	// no primary.
	DeletePromoting(ctx context.Context, productID, imageID, successorID uuid.UUID) error
	Promote(ctx context.Context, productID, imageID uuid.UUID) error
}

type ContactRepo interface {
	Create(ctx context.Context, c *models.ContactSubmission) error
	List(ctx context.Context, unreadOnly bool) ([]models.ContactSubmission, error)
	MarkRead(ctx context.Context, id uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type AdminUserRepo interface {
	Create(ctx context.Context, u *models.AdminUser) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error)
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	List(ctx context.Context) ([]models.AdminUser, error)
	Update(ctx context.Context, u *models.AdminUser) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}
