package ports

import (
	"context"

	"github.com/storefront/catalog-api/internal/core/domain"
)

// Query builder bounds.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ProductQuery is the normalized list descriptor produced by the query builder.
type ProductQuery struct {
	Filter ProductFilter
	Sort   ProductSort
	Page   int
	Skip   int
	Limit  int
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	Products []*domain.Product `json:"products"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Pages    int               `json:"pages"`
}

// ProductService defines the catalog use cases.
type ProductService interface {
	Create(ctx context.Context, input domain.ProductInput, actorID string) (*domain.Product, error)
	List(ctx context.Context, query ProductQuery) (*ProductPage, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, id string, patch domain.ProductPatch, actorID string) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string) ([]*domain.Product, error)
}
