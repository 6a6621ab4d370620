package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/okisetiawan/go-product-catalog/internal/domain/repository"
)

func TestBuildListQuery_Defaults(t *testing.T) {
	q, args := buildListQuery(repository.ListOptions{})

	assert.Contains(t, q, "ORDER BY created_at ASC")
	assert.Equal(t, []any{10, 0}, args)
}

func TestBuildListQuery_Pagination(t *testing.T) {
	q, args := buildListQuery(repository.ListOptions{Page: 3, Limit: 20})

	assert.Contains(t, q, "LIMIT $1 OFFSET $2")
	assert.Equal(t, []any{20, 40}, args)
}

func TestBuildListQuery_LimitCap(t *testing.T) {
	_, args := buildListQuery(repository.ListOptions{Page: 1, Limit: 5000})

	assert.Equal(t, []any{100, 0}, args)
}

func TestBuildListQuery_SortWhitelist(t *testing.T) {
	q, _ := buildListQuery(repository.ListOptions{SortBy: "price", SortOrder: "desc"})
	assert.Contains(t, q, "ORDER BY price DESC")

	// Unknown columns never reach the SQL text.
	q, _ = buildListQuery(repository.ListOptions{SortBy: "password_hash; DROP TABLE users"})
	assert.Contains(t, q, "ORDER BY created_at ASC")
}

func TestBuildFilterQuery_NoConstraints(t *testing.T) {
	q, args := buildFilterQuery(repository.FilterOptions{})

	assert.NotContains(t, q, "WHERE")
	assert.Empty(t, args)
}

func TestBuildFilterQuery_AllConstraints(t *testing.T) {
	pmin, pmax, rmin := 10.0, 99.5, 4.0
	q, args := buildFilterQuery(repository.FilterOptions{
		Category:  "books",
		PriceMin:  &pmin,
		PriceMax:  &pmax,
		RatingMin: &rmin,
	})

	assert.Contains(t, q, "category = $1")
	assert.Contains(t, q, "price >= $2")
	assert.Contains(t, q, "price <= $3")
	assert.Contains(t, q, "rating >= $4")
	assert.Equal(t, []any{"books", 10.0, 99.5, 4.0}, args)
}

func TestBuildFilterQuery_PartialConstraints(t *testing.T) {
	rmin := 3.5
	q, args := buildFilterQuery(repository.FilterOptions{RatingMin: &rmin})

	assert.Contains(t, q, "WHERE rating >= $1")
	assert.Equal(t, []any{3.5}, args)
}
