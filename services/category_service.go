package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/ihza6661/computer-store-rest-api-sub000/models"
	"github.com/ihza6661/computer-store-rest-api-sub000/repository"
)

var (
	ErrCategoryExists = errors.New("a category with this name already exists")
	// ErrCategoryInUse rejects deleting a category that products still
	// reference.
	ErrCategoryInUse = errors.New("category has products and cannot be deleted")
)

type CategoryCreateRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
}

type CategoryService struct {
	categories repository.CategoryRepo
	products   repository.ProductRepo
}

func NewCategoryService(categories repository.CategoryRepo, products repository.ProductRepo) *CategoryService {
	return &CategoryService{categories: categories, products: products}
}

func (s *CategoryService) CreateCategory(ctx context.Context, req CategoryCreateRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)

	existing, err := s.categories.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCategoryExists
	}

	category := &models.Category{
		ID:          uuid.New(),
		Name:        name,
		Slug:        slug.Make(name),
		Description: req.Description,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}

func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, req CategoryCreateRequest) (*models.Category, error) {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if !strings.EqualFold(name, category.Name) {
		existing, err := s.categories.FindByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, ErrCategoryExists
		}
	}

	category.Name = name
	category.Slug = slug.Make(name)
	category.Description = req.Description
	category.UpdatedAt = time.Now().UTC()
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory restricts deletion while products reference the category.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	count, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	affected, err := s.categories.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
