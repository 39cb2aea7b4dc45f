package services

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/uuid"

	"github.com/ihza6661/computer-store-rest-api-sub000/models"
)

// fakeImageRepo mirrors the real repo's Promote and ordering semantics in
// memory.
type fakeImageRepo struct {
	products *fakeProductRepo
	images   map[uuid.UUID]*models.ProductImage

	deleteCalls          int
	deletePromotingCalls int
}

func newFakeImageRepo(products *fakeProductRepo) *fakeImageRepo {
	return &fakeImageRepo{products: products, images: make(map[uuid.UUID]*models.ProductImage)}
}

func (f *fakeImageRepo) Create(ctx context.Context, img *models.ProductImage) error {
	cp := *img
	f.images[img.ID] = &cp
	return nil
}

func (f *fakeImageRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.ProductImage, error) {
	img, ok := f.images[id]
	if !ok {
		return nil, nil
	}
	cp := *img
	return &cp, nil
}

func (f *fakeImageRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.ProductImage, error) {
	var out []models.ProductImage
	for _, img := range f.images {
		if img.ProductID == productID {
			out = append(out, *img)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (f *fakeImageRepo) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var n int64
	for _, img := range f.images {
		if img.ProductID == productID {
			n++
		}
	}
	return n, nil
}

func (f *fakeImageRepo) NextSortOrder(ctx context.Context, productID uuid.UUID) (int, error) {
	max := -1
	for _, img := range f.images {
		if img.ProductID == productID && img.SortOrder > max {
			max = img.SortOrder
		}
	}
	return max + 1, nil
}

func (f *fakeImageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.deleteCalls++
	delete(f.images, id)
	return nil
}

func (f *fakeImageRepo) DeletePromoting(ctx context.Context, productID, imageID, successorID uuid.UUID) error {
	f.deletePromotingCalls++
	delete(f.images, imageID)
	return f.Promote(ctx, productID, successorID)
}

func (f *fakeImageRepo) Promote(ctx context.Context, productID, imageID uuid.UUID) error {
	target, ok := f.images[imageID]
	if !ok || target.ProductID != productID {
		return errors.New("image not found for product")
	}
	for _, img := range f.images {
		if img.ProductID == productID {
			img.IsPrimary = img.ID == imageID
		}
	}
	return f.products.UpdatePrimaryImage(ctx, productID, target.URL, target.ThumbnailURL)
}

// fakeAssetHost records destroy calls.
type fakeAssetHost struct {
	destroyed []string
}

func (f *fakeAssetHost) Upload(ctx context.Context, file interface{}, publicID string) (*AssetUpload, error) {
	return &AssetUpload{
		SecureURL:    "https://cdn.test/" + publicID + ".jpg",
		ThumbnailURL: "https://cdn.test/thumb/" + publicID + ".jpg",
		PublicID:     publicID,
	}, nil
}

func (f *fakeAssetHost) Destroy(ctx context.Context, publicID string) error {
	f.destroyed = append(f.destroyed, publicID)
	return nil
}

func newImageFixture() (*ImageService, *fakeImageRepo, *fakeProductRepo, *fakeAssetHost, uuid.UUID) {
	products := newFakeProductRepo()
	images := newFakeImageRepo(products)
	assets := &fakeAssetHost{}
	svc := NewImageService(images, products, assets)

	productID := uuid.New()
	products.products[productID] = &models.Product{ID: productID, Name: "ThinkPad", SKU: "SKU-1"}
	return svc, images, products, assets, productID
}

func upload(n string) AssetUpload {
	return AssetUpload{
		SecureURL:    "https://cdn.test/" + n + ".jpg",
		ThumbnailURL: "https://cdn.test/thumb/" + n + ".jpg",
		PublicID:     n,
	}
}

func TestAddImageFirstBecomesPrimary(t *testing.T) {
	svc, _, products, _, productID := newImageFixture()

	img, err := svc.AddImage(context.Background(), productID, upload("a"))
	if err != nil {
		t.Fatalf("AddImage failed: %v", err)
	}
	if !img.IsPrimary {
		t.Fatal("first image must be primary")
	}
	if img.SortOrder != 0 {
		t.Fatalf("first image sort order must be 0, got %d", img.SortOrder)
	}

	mirrored := products.primary[productID]
	if mirrored[0] != img.URL || mirrored[1] != img.ThumbnailURL {
		t.Fatalf("primary URLs not mirrored onto product: %v", mirrored)
	}
}

func TestAddImageLaterAreNotPrimary(t *testing.T) {
	svc, _, _, _, productID := newImageFixture()

	if _, err := svc.AddImage(context.Background(), productID, upload("a")); err != nil {
		t.Fatalf("AddImage failed: %v", err)
	}
	second, err := svc.AddImage(context.Background(), productID, upload("b"))
	if err != nil {
		t.Fatalf("AddImage failed: %v", err)
	}

	if second.IsPrimary {
		t.Fatal("second image must not be primary")
	}
	if second.SortOrder != 1 {
		t.Fatalf("second image sort order must be 1, got %d", second.SortOrder)
	}
}

func TestDeleteLastImageRejected(t *testing.T) {
	svc, _, _, _, productID := newImageFixture()

	img, err := svc.AddImage(context.Background(), productID, upload("a"))
	if err != nil {
		t.Fatalf("AddImage failed: %v", err)
	}

	err = svc.DeleteImage(context.Background(), productID, img.ID)
	if !errors.Is(err, ErrLastImage) {
		t.Fatalf("expected ErrLastImage, got %v", err)
	}
}

func TestDeletePrimaryPromotesLowestSortOrder(t *testing.T) {
	svc, images, products, assets, productID := newImageFixture()

	first, _ := svc.AddImage(context.Background(), productID, upload("a"))
	second, _ := svc.AddImage(context.Background(), productID, upload("b"))
	third, _ := svc.AddImage(context.Background(), productID, upload("c"))

	if err := svc.DeleteImage(context.Background(), productID, first.ID); err != nil {
		t.Fatalf("DeleteImage failed: %v", err)
	}

	promoted, _ := images.FindByID(context.Background(), second.ID)
	if !promoted.IsPrimary {
		t.Fatal("expected the lowest sort order survivor to become primary")
	}
	other, _ := images.FindByID(context.Background(), third.ID)
	if other.IsPrimary {
		t.Fatal("only one image may be primary")
	}

	mirrored := products.primary[productID]
	if mirrored[0] != promoted.URL {
		t.Fatalf("product URL not updated to promoted image: %v", mirrored)
	}

	if len(assets.destroyed) != 1 || assets.destroyed[0] != "a" {
		t.Fatalf("expected asset 'a' destroyed, got %v", assets.destroyed)
	}

	// Primary deletion and promotion must go through the single
	// transactional repository operation, never a delete-then-promote pair.
	if images.deletePromotingCalls != 1 {
		t.Fatalf("expected one DeletePromoting call, got %d", images.deletePromotingCalls)
	}
	if images.deleteCalls != 0 {
		t.Fatalf("primary delete must not use the plain Delete path, got %d calls", images.deleteCalls)
	}
}

func TestDeleteNonPrimaryKeepsPrimary(t *testing.T) {
	svc, images, _, _, productID := newImageFixture()

	first, _ := svc.AddImage(context.Background(), productID, upload("a"))
	second, _ := svc.AddImage(context.Background(), productID, upload("b"))

	if err := svc.DeleteImage(context.Background(), productID, second.ID); err != nil {
		t.Fatalf("DeleteImage failed: %v", err)
	}

	remaining, _ := images.FindByID(context.Background(), first.ID)
	if !remaining.IsPrimary {
		t.Fatal("deleting a non-primary image must not change the primary")
	}
}

func TestSetPrimaryOnForeignImage(t *testing.T) {
	svc, _, products, _, productID := newImageFixture()

	otherProduct := uuid.New()
	products.products[otherProduct] = &models.Product{ID: otherProduct, Name: "Other", SKU: "SKU-2"}

	img, _ := svc.AddImage(context.Background(), productID, upload("a"))

	err := svc.SetPrimary(context.Background(), otherProduct, img.ID)
	if !errors.Is(err, ErrImageNotOwned) {
		t.Fatalf("expected ErrImageNotOwned, got %v", err)
	}
}

func TestSetPrimarySwitches(t *testing.T) {
	svc, images, products, _, productID := newImageFixture()

	first, _ := svc.AddImage(context.Background(), productID, upload("a"))
	second, _ := svc.AddImage(context.Background(), productID, upload("b"))

	if err := svc.SetPrimary(context.Background(), productID, second.ID); err != nil {
		t.Fatalf("SetPrimary failed: %v", err)
	}

	demoted, _ := images.FindByID(context.Background(), first.ID)
	promoted, _ := images.FindByID(context.Background(), second.ID)
	if demoted.IsPrimary || !promoted.IsPrimary {
		t.Fatal("expected exactly the chosen image to be primary")
	}

	mirrored := products.primary[productID]
	if mirrored[0] != promoted.URL || mirrored[1] != promoted.ThumbnailURL {
		t.Fatalf("product URLs not mirrored from new primary: %v", mirrored)
	}
}

func TestSetPrimaryUnknownImage(t *testing.T) {
	svc, _, _, _, productID := newImageFixture()

	err := svc.SetPrimary(context.Background(), productID, uuid.New())
	if !errors.Is(err, ErrImageNotFound) {
		t.Fatalf("expected ErrImageNotFound, got %v", err)
	}
}
