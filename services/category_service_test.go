package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/ihza6661/computer-store-rest-api-sub000/models"
)

func newCategoryFixture() (*CategoryService, *fakeCategoryRepo, *fakeProductRepo) {
	categories := &fakeCategoryRepo{}
	products := newFakeProductRepo()
	return NewCategoryService(categories, products), categories, products
}

func TestCreateCategorySlugAndDuplicate(t *testing.T) {
	svc, _, _ := newCategoryFixture()

	category, err := svc.CreateCategory(context.Background(), CategoryCreateRequest{Name: "Gaming Laptops"})
	if err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}
	if category.Slug != "gaming-laptops" {
		t.Fatalf("unexpected slug: %q", category.Slug)
	}

	// Duplicate check is case-insensitive.
	_, err = svc.CreateCategory(context.Background(), CategoryCreateRequest{Name: "gaming laptops"})
	if !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists, got %v", err)
	}
}

func TestDeleteCategoryWithProductsRejected(t *testing.T) {
	svc, categories, products := newCategoryFixture()

	category := &models.Category{ID: uuid.New(), Name: "Laptops"}
	categories.categories = append(categories.categories, category)

	p := &models.Product{ID: uuid.New(), CategoryID: category.ID, Name: "ThinkPad", SKU: "SKU-1"}
	products.products[p.ID] = p

	err := svc.DeleteCategory(context.Background(), category.ID)
	if !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}
	if len(categories.categories) != 1 {
		t.Fatal("category must survive a rejected delete")
	}
}

func TestDeleteEmptyCategory(t *testing.T) {
	svc, categories, _ := newCategoryFixture()

	category := &models.Category{ID: uuid.New(), Name: "Empty"}
	categories.categories = append(categories.categories, category)

	if err := svc.DeleteCategory(context.Background(), category.ID); err != nil {
		t.Fatalf("DeleteCategory failed: %v", err)
	}
	if len(categories.categories) != 0 {
		t.Fatal("expected category to be deleted")
	}
}

func TestDeleteUnknownCategory(t *testing.T) {
	svc, _, _ := newCategoryFixture()

	err := svc.DeleteCategory(context.Background(), uuid.New())
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}
