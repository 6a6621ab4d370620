package postgres

import (
	"fmt"
	"strings"

	"github.com/okisetiawan/go-product-catalog/internal/domain/repository"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

const productColumns = "id, name, description, category, price, rating, user_id, image_url, created_at, updated_at"

// sortColumns whitelists client-supplied sort keys; anything else falls back
// to created_at to keep identifiers out of the SQL text.
var sortColumns = map[string]string{
	"name":       "name",
	"category":   "category",
	"price":      "price",
	"rating":     "rating",
	"created_at": "created_at",
}

// buildListQuery assembles the paginated product listing statement.
func buildListQuery(opts repository.ListOptions) (string, []any) {
	page := opts.Page
	if page < 1 {
		page = defaultPage
	}
	limit := opts.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	col, ok := sortColumns[opts.SortBy]
	if !ok {
		col = "created_at"
	}
	dir := "ASC"
	if strings.EqualFold(opts.SortOrder, "desc") {
		dir = "DESC"
	}

	q := fmt.Sprintf(`SELECT %s FROM products ORDER BY %s %s LIMIT $1 OFFSET $2`,
		productColumns, col, dir)
	return q, []any{limit, (page - 1) * limit}
}

// buildFilterQuery assembles the filtered listing statement from the present
// constraints only.
func buildFilterQuery(opts repository.FilterOptions) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if opts.Category != "" {
		add("category = $%d", opts.Category)
	}
	if opts.PriceMin != nil {
		add("price >= $%d", *opts.PriceMin)
	}
	if opts.PriceMax != nil {
		add("price <= $%d", *opts.PriceMax)
	}
	if opts.RatingMin != nil {
		add("rating >= $%d", *opts.RatingMin)
	}

	q := "SELECT " + productColumns + " FROM products"
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY created_at DESC"
	return q, args
}
