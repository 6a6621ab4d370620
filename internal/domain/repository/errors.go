package repository

import "errors"

// Sentinel errors shared by repository implementations so the application
// layer can branch without knowing the storage technology.
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
)
