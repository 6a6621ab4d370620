package application

import (
	"time"

	"github.com/okisetiawan/go-product-catalog/internal/domain/entity"
)

// Catalog event types published to the event queue on product mutations.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// ProductDoc is the search-index projection of a product.
type ProductDoc struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Rating      float64   `json:"rating"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CatalogEvent is the JSON payload on the catalog event queue. Deleted
// events carry only the product id.
type CatalogEvent struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	ProductID  string      `json:"product_id"`
	OccurredAt time.Time   `json:"occurred_at"`
	Product    *ProductDoc `json:"product,omitempty"`
}

// NewProductDoc projects the entity into its search document.
func NewProductDoc(p *entity.Product) *ProductDoc {
	return &ProductDoc{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Rating:      p.Rating,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
