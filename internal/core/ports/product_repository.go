package ports

import (
	"context"
	"time"

	"github.com/storefront/catalog-api/internal/core/domain"
)

// ProductFilter is a conjunction of equality filters. Empty fields are ignored.
type ProductFilter struct {
	Category  string
	CreatedBy string
}

// ProductSort names a single field sorted in descending order.
type ProductSort struct {
	Field string
}

// ProductChanges is the $set applied by UpdateByID.
type ProductChanges struct {
	Patch     domain.ProductPatch
	UpdatedBy string
	UpdatedAt time.Time
}

// ProductRepository defines persistence operations for products. Lookups by
// id return domain.ErrProductNotFound when the record is absent or the id is
// malformed; writes return domain.ErrUniqueViolation on a duplicate sku.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Find(ctx context.Context, filter ProductFilter, sort ProductSort, skip, limit int) ([]*domain.Product, error)
	Count(ctx context.Context, filter ProductFilter) (int64, error)
	UpdateByID(ctx context.Context, id string, changes ProductChanges) (*domain.Product, error)
	DeleteByID(ctx context.Context, id string) (*domain.Product, error)
	// TextSearch returns matches ordered by descending relevance.
	TextSearch(ctx context.Context, query string) ([]*domain.Product, error)
}

// ProductCache is an optional read-through cache keyed by product id.
// Get reports a miss with (nil, nil).
//
// Each id carries a generation that Delete advances. A reader takes the
// generation before loading from the store and fills with SetIfVersion, so a
// fill racing an invalidation is dropped instead of caching stale data.
type ProductCache interface {
	Get(ctx context.Context, id string) (*domain.Product, error)
	Version(ctx context.Context, id string) (int64, error)
	SetIfVersion(ctx context.Context, p *domain.Product, version int64) (bool, error)
	Delete(ctx context.Context, id string) error
}
