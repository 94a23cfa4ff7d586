package domain

import "errors"

// Auth errors.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAuthRequired       = errors.New("authentication required")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("not authorized to access this route")
	ErrUserNotFound       = errors.New("user not found")
)

// Catalog errors.
var (
	ErrProductNotFound = errors.New("product not found")
	ErrDuplicateSKU    = errors.New("SKU already exists")
	ErrMissingQuery    = errors.New("search query required")
)

// ErrValidation is the kind every *ValidationError unwraps to.
var ErrValidation = errors.New("validation failed")

// ErrUniqueViolation is returned by repositories when an insert or update
// collides with a unique index. Services translate it into a domain error.
var ErrUniqueViolation = errors.New("unique constraint violation")
