package services

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ihza6661/computer-store-rest-api-sub000/models"
	"github.com/ihza6661/computer-store-rest-api-sub000/repository"
)

// fakeProductRepo is an in-memory ProductRepo for service tests.
type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*models.Product
	primary  map[uuid.UUID][2]string
	createFn func(ctx context.Context, p *models.Product) error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products: make(map[uuid.UUID]*models.Product),
		primary:  make(map[uuid.UUID][2]string),
	}
}

func (f *fakeProductRepo) Create(ctx context.Context, p *models.Product) error {
	if f.createFn != nil {
		if err := f.createFn(ctx, p); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) FindBySKU(ctx context.Context, sku string) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) List(ctx context.Context, params repository.ProductListParams) ([]models.Product, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (f *fakeProductRepo) Update(ctx context.Context, p *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) UpdatePrimaryImage(ctx context.Context, id uuid.UUID, imageURL, thumbnailURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.primary[id] = [2]string{imageURL, thumbnailURL}
	if p, ok := f.products[id]; ok {
		p.ImageURL = imageURL
		p.ThumbnailURL = thumbnailURL
	}
	return nil
}

func (f *fakeProductRepo) SoftDelete(ctx context.Context, id uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[id]; !ok {
		return 0, nil
	}
	delete(f.products, id)
	return 1, nil
}

func (f *fakeProductRepo) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, p := range f.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (f *fakeProductRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.products)
}

// fakeCategoryRepo matches names case-insensitively like the real repo.
type fakeCategoryRepo struct {
	categories []*models.Category
}

func (f *fakeCategoryRepo) Create(ctx context.Context, c *models.Category) error {
	cp := *c
	f.categories = append(f.categories, &cp)
	return nil
}

func (f *fakeCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	for _, c := range f.categories {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) FindByName(ctx context.Context, name string) (*models.Category, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, c := range f.categories {
		if strings.ToLower(c.Name) == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) List(ctx context.Context) ([]models.Category, error) {
	out := make([]models.Category, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCategoryRepo) Update(ctx context.Context, c *models.Category) error {
	for i, existing := range f.categories {
		if existing.ID == c.ID {
			cp := *c
			f.categories[i] = &cp
			return nil
		}
	}
	return nil
}

func (f *fakeCategoryRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	for i, c := range f.categories {
		if c.ID == id {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// fakeImportQueue records enqueued jobs without a broker.
type fakeImportQueue struct {
	jobs      []ImportJob
	onEnqueue func(job ImportJob)
}

func (f *fakeImportQueue) Enqueue(ctx context.Context, job ImportJob) error {
	if f.onEnqueue != nil {
		f.onEnqueue(job)
	}
	f.jobs = append(f.jobs, job)
	return nil
}
