package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/ihza6661/computer-store-rest-api-sub000/models"
	"github.com/ihza6661/computer-store-rest-api-sub000/repository"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrSKUExists        = errors.New("a product with this SKU already exists")
)

type ProductCreateRequest struct {
	Name           string
	Description    string
	Brand          string
	SKU            string
	Price          decimal.Decimal
	Stock          int
	CategoryID     uuid.UUID
	Specifications map[string]string
}

type ProductUpdateRequest struct {
	Name           *string
	Description    *string
	Brand          *string
	Price          *decimal.Decimal
	Stock          *int
	CategoryID     *uuid.UUID
	Specifications map[string]string
}

type ProductService struct {
	products   repository.ProductRepo
	categories repository.CategoryRepo
	images     *ImageService
	assets     AssetHost
}

func NewProductService(products repository.ProductRepo, categories repository.CategoryRepo, images *ImageService, assets AssetHost) *ProductService {
	return &ProductService{products: products, categories: categories, images: images, assets: assets}
}

func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *ProductService) ListProducts(ctx context.Context, params repository.ProductListParams) ([]models.Product, int64, error) {
	return s.products.List(ctx, params)
}

// CreateProduct creates a product from direct admin input and uploads any
// attached images; the first uploaded image becomes the product's primary.
func (s *ProductService) CreateProduct(ctx context.Context, req ProductCreateRequest, imageFiles []*multipart.FileHeader) (*models.Product, error) {
	category, err := s.categories.FindByID(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	existing, err := s.products.FindBySKU(ctx, req.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSKUExists
	}

	product := &models.Product{
		ID:          uuid.New(),
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Brand:       req.Brand,
		Price:       req.Price,
		SKU:         req.SKU,
		Stock:       req.Stock,
	}
	if len(req.Specifications) > 0 {
		data, err := json.Marshal(req.Specifications)
		if err != nil {
			return nil, fmt.Errorf("failed to encode specifications: %w", err)
		}
		product.Specifications = datatypes.JSON(data)
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	for i, fh := range imageFiles {
		if err := s.attachImage(ctx, product.ID, req.SKU, i, fh); err != nil {
			zap.L().Warn("Failed to attach product image",
				zap.String("sku", req.SKU), zap.String("file", fh.Filename), zap.Error(err))
		}
	}

	return s.GetProduct(ctx, product.ID)
}

func (s *ProductService) attachImage(ctx context.Context, productID uuid.UUID, sku string, index int, fh *multipart.FileHeader) error {
	if s.assets == nil {
		return errors.New("asset host not configured")
	}
	file, err := fh.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	upload, err := s.assets.Upload(ctx, file, fmt.Sprintf("product_img_%s_%d", sku, index))
	if err != nil {
		return err
	}
	_, err = s.images.AddImage(ctx, productID, *upload)
	return err
}

func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req ProductUpdateRequest) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if req.CategoryID != nil {
		category, err := s.categories.FindByID(ctx, *req.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
		product.CategoryID = *req.CategoryID
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Specifications != nil {
		data, err := json.Marshal(req.Specifications)
		if err != nil {
			return nil, fmt.Errorf("failed to encode specifications: %w", err)
		}
		product.Specifications = datatypes.JSON(data)
	}

	// Save re-writes relation fields too; detach them first.
	product.Category = nil
	product.Images = nil
	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, id)
}

func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	affected, err := s.products.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}
