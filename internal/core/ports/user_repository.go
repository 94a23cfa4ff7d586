package ports

import (
	"context"

	"github.com/storefront/catalog-api/internal/core/domain"
)

// UserRepository defines the persistence operations for principals.
type UserRepository interface {
	// FindByEmail returns domain.ErrUserNotFound when no principal matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByID never populates PasswordHash.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Create returns domain.ErrUniqueViolation on a duplicate email.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
