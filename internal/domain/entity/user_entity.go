package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
// PasswordHash holds the bcrypt hash; the plaintext never leaves the
// signup/login handlers and the hash is never serialized in responses.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
