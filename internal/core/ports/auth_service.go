package ports

import (
	"context"

	"github.com/storefront/catalog-api/internal/core/domain"
)

// AuthResult is returned by a successful register or login.
type AuthResult struct {
	Token string
	User  domain.PrincipalView
}

type AuthService interface {
	Register(ctx context.Context, email, password, role string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}
