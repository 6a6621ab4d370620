package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/okisetiawan/go-product-catalog/config"
	"github.com/okisetiawan/go-product-catalog/internal/domain/entity"
	"github.com/okisetiawan/go-product-catalog/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "admin@example.com"
	password := "admin12345"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var adminID string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET updated_at = now()
		RETURNING id
	`, email, hash, entity.RoleAdmin).Scan(&adminID)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s password=%s\n", adminID, email, password)

	products := []struct {
		name, description, category string
		price, rating               float64
	}{
		{"Mechanical Keyboard", "Hot-swappable 75% board", "electronics", 129.90, 4.5},
		{"Espresso Grinder", "Conical burr grinder, 40 settings", "kitchen", 89.00, 4.2},
		{"Trail Running Shoes", "Lightweight with 8mm drop", "sport", 104.50, 4.7},
	}
	for _, p := range products {
		var id string
		err = db.QueryRow(`
			INSERT INTO products (name, description, category, price, rating, user_id)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`, p.name, p.description, p.category, p.price, p.rating, adminID).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed product %q: %v", p.name, err)
		}
		fmt.Printf("seeded product: id=%s name=%s\n", id, p.name)
	}
}
