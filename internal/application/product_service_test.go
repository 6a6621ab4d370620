package application

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okisetiawan/go-product-catalog/internal/domain/entity"
	repo "github.com/okisetiawan/go-product-catalog/internal/domain/repository"
)

type fakeProductRepo struct {
	byID     map[string]*entity.Product
	lastList repo.ListOptions
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{byID: map[string]*entity.Product{}}
}

func (f *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) List(_ context.Context, opts repo.ListOptions) ([]*entity.Product, error) {
	f.lastList = opts
	out := make([]*entity.Product, 0, len(f.byID))
	for _, p := range f.byID {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeProductRepo) Filter(_ context.Context, opts repo.FilterOptions) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0)
	for _, p := range f.byID {
		if opts.Category != "" && p.Category != opts.Category {
			continue
		}
		if opts.PriceMin != nil && p.Price < *opts.PriceMin {
			continue
		}
		if opts.PriceMax != nil && p.Price > *opts.PriceMax {
			continue
		}
		if opts.RatingMin != nil && p.Rating < *opts.RatingMin {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeProductRepo) Update(_ context.Context, id string, upd repo.ProductUpdate) (*entity.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Category != nil {
		p.Category = *upd.Category
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.Rating != nil {
		p.Rating = *upd.Rating
	}
	if upd.ImageURL != nil {
		p.ImageURL = *upd.ImageURL
	}
	p.UpdatedAt = time.Now()
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func newTestProductService() (*ProductService, *fakeProductRepo) {
	r := newFakeProductRepo()
	return NewProductService(r, nil, nil, nil, "", nil, "", nil), r
}

func TestProductService_CreateAndGet(t *testing.T) {
	svc, _ := newTestProductService()
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateProductInput{
		Name:     "Keyboard",
		Category: "electronics",
		Price:    99.90,
		Rating:   4.5,
		UserID:   "admin-1",
	}, nil)
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Keyboard", got.Name)
	assert.Equal(t, "admin-1", got.UserID)
}

func TestProductService_Get_NotFound(t *testing.T) {
	svc, _ := newTestProductService()

	_, err := svc.Get(context.Background(), "missing")
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_Create_ImageWithoutGCS(t *testing.T) {
	svc, _ := newTestProductService()

	img := &ImageUpload{Reader: strings.NewReader("png"), Filename: "x.png", ContentType: "image/png"}
	_, err := svc.Create(context.Background(), CreateProductInput{Name: "X", Category: "c"}, img)
	require.Error(t, err)
}

func TestProductService_Update(t *testing.T) {
	svc, _ := newTestProductService()
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateProductInput{Name: "Old", Category: "c", Price: 10}, nil)
	require.NoError(t, err)

	name := "New"
	price := 20.0
	got, err := svc.Update(ctx, p.ID, UpdateProductInput{Name: &name, Price: &price}, nil)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)
	assert.Equal(t, 20.0, got.Price)
	assert.Equal(t, "c", got.Category, "unset fields are untouched")
}

func TestProductService_Update_NotFound(t *testing.T) {
	svc, _ := newTestProductService()

	name := "X"
	_, err := svc.Update(context.Background(), "missing", UpdateProductInput{Name: &name}, nil)
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_Delete(t *testing.T) {
	svc, r := newTestProductService()
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateProductInput{Name: "X", Category: "c"}, nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, p.ID))
	assert.Empty(t, r.byID)

	require.ErrorIs(t, svc.Delete(ctx, p.ID), ErrProductNotFound)
}

func TestProductService_Filter(t *testing.T) {
	svc, _ := newTestProductService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateProductInput{Name: "A", Category: "kitchen", Price: 50, Rating: 4}, nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateProductInput{Name: "B", Category: "sport", Price: 150, Rating: 3}, nil)
	require.NoError(t, err)

	min := 100.0
	out, err := svc.Filter(ctx, repo.FilterOptions{PriceMin: &min})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "B", out[0].Name)
}

func TestProductService_Search_NoIndexConfigured(t *testing.T) {
	svc, _ := newTestProductService()

	hits, err := svc.Search(context.Background(), "anything", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
