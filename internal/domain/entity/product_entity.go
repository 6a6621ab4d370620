package entity

import "time"

// Product is a catalog entry. UserID records the admin that created it.
type Product struct {
	ID          string
	Name        string
	Description string
	Category    string
	Price       float64
	Rating      float64
	UserID      string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
