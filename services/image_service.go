package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ihza6661/computer-store-rest-api-sub000/models"
	"github.com/ihza6661/computer-store-rest-api-sub000/repository"
)

var (
	// ErrLastImage rejects deleting a product's only image.
	ErrLastImage = errors.New("cannot delete the only image of a product")
	// ErrImageNotOwned rejects operating on an image of another product.
	ErrImageNotOwned = errors.New("image does not belong to this product")
	// ErrImageNotFound reports an unknown image id.
	ErrImageNotFound = errors.New("image not found")
)

// ImageService keeps the primary-image invariant: whenever a product has at
// least one image, exactly one is primary and its URLs are mirrored onto
// the product record.
type ImageService struct {
	images   repository.ImageRepo
	products repository.ProductRepo
	assets   AssetHost
}

func NewImageService(images repository.ImageRepo, products repository.ProductRepo, assets AssetHost) *ImageService {
	return &ImageService{images: images, products: products, assets: assets}
}

// AddImage attaches a hosted image to the product. The product's first
// image becomes primary and is mirrored; later images append as
// non-primary with the next sort order.
func (s *ImageService) AddImage(ctx context.Context, productID uuid.UUID, upload AssetUpload) (*models.ProductImage, error) {
	count, err := s.images.CountByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	img := &models.ProductImage{
		ID:           uuid.New(),
		ProductID:    productID,
		URL:          upload.SecureURL,
		ThumbnailURL: upload.ThumbnailURL,
		PublicID:     upload.PublicID,
	}

	if count == 0 {
		img.IsPrimary = true
		img.SortOrder = 0
		if err := s.images.Create(ctx, img); err != nil {
			return nil, err
		}
		if err := s.products.UpdatePrimaryImage(ctx, productID, img.URL, img.ThumbnailURL); err != nil {
			return nil, err
		}
		return img, nil
	}

	order, err := s.images.NextSortOrder(ctx, productID)
	if err != nil {
		return nil, err
	}
	img.SortOrder = order
	if err := s.images.Create(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

// DeleteImage removes an image, promoting the lowest-sort-order survivor
// when the primary goes away. A product keeps at least one image at all
// times, and delete-plus-promotion runs as one repository transaction.
// Asset-host removal is attempted but never blocks the deletion.
func (s *ImageService) DeleteImage(ctx context.Context, productID, imageID uuid.UUID) error {
	img, err := s.owned(ctx, productID, imageID)
	if err != nil {
		return err
	}

	count, err := s.images.CountByProduct(ctx, productID)
	if err != nil {
		return err
	}
	if count <= 1 {
		return ErrLastImage
	}

	if img.IsPrimary {
		siblings, err := s.images.ListByProduct(ctx, productID)
		if err != nil {
			return err
		}
		// ListByProduct orders by sort_order ascending.
		var successor *models.ProductImage
		for i := range siblings {
			if siblings[i].ID != imageID {
				successor = &siblings[i]
				break
			}
		}
		if successor == nil {
			return fmt.Errorf("no images left to promote for product %s", productID)
		}
		if err := s.images.DeletePromoting(ctx, productID, imageID, successor.ID); err != nil {
			return err
		}
	} else if err := s.images.Delete(ctx, imageID); err != nil {
		return err
	}

	if img.PublicID != "" && s.assets != nil {
		if err := s.assets.Destroy(ctx, img.PublicID); err != nil {
			zap.L().Warn("Failed to remove image from asset host",
				zap.String("public_id", img.PublicID), zap.Error(err))
		}
	}
	return nil
}

// SetPrimary promotes an image of the product to primary.
func (s *ImageService) SetPrimary(ctx context.Context, productID, imageID uuid.UUID) error {
	if _, err := s.owned(ctx, productID, imageID); err != nil {
		return err
	}
	return s.images.Promote(ctx, productID, imageID)
}

func (s *ImageService) owned(ctx context.Context, productID, imageID uuid.UUID) (*models.ProductImage, error) {
	img, err := s.images.FindByID(ctx, imageID)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, ErrImageNotFound
	}
	if img.ProductID != productID {
		return nil, ErrImageNotOwned
	}
	return img, nil
}
