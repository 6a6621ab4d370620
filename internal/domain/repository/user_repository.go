package repository

import (
	"context"

	"github.com/okisetiawan/go-product-catalog/internal/domain/entity"
)

// UserRepository is the credential store. It exclusively owns user records;
// token issuing and verification only ever read from it.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
