package repository

import (
	"context"

	"github.com/okisetiawan/go-product-catalog/internal/domain/entity"
)

// ListOptions controls pagination and ordering for product listings.
// Zero values fall back to page 1, limit 10, ascending order.
type ListOptions struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// FilterOptions narrows a listing by category and numeric ranges.
// Nil pointers mean "no constraint".
type FilterOptions struct {
	Category  string
	PriceMin  *float64
	PriceMax  *float64
	RatingMin *float64
}

// ProductUpdate carries a partial update; nil fields are left untouched.
type ProductUpdate struct {
	Name        *string
	Description *string
	Category    *string
	Price       *float64
	Rating      *float64
	ImageURL    *string
}

// ProductRepository persists catalog entries.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, opts ListOptions) ([]*entity.Product, error)
	Filter(ctx context.Context, opts FilterOptions) ([]*entity.Product, error)
	Update(ctx context.Context, id string, upd ProductUpdate) (*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
