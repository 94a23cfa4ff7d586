package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/storefront/catalog-api/internal/core/domain"
	"github.com/storefront/catalog-api/internal/core/ports"
	"github.com/storefront/catalog-api/internal/pkg/metrics"
)

type ProductService struct {
	repo   ports.ProductRepository
	cache  ports.ProductCache
	logger zerolog.Logger
	now    func() time.Time
}

// NewProductService wires the catalog use cases. cache may be nil.
func NewProductService(repo ports.ProductRepository, cache ports.ProductCache, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, cache: cache, logger: logger, now: time.Now}
}

// Create persists a new product owned by actorID. SKU uniqueness is left to
// the store; a collision surfaces as domain.ErrDuplicateSKU.
func (s *ProductService) Create(ctx context.Context, input domain.ProductInput, actorID string) (*domain.Product, error) {
	input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	product := &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       *input.Price,
		Category:    input.Category,
		SKU:         input.SKU,
		Stock:       *input.Stock,
		CreatedBy:   actorID,
		UpdatedBy:   actorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		if errors.Is(err, domain.ErrUniqueViolation) {
			metrics.ProductMutationsTotal.WithLabelValues("create", "duplicate_sku").Inc()
			return nil, domain.ErrDuplicateSKU
		}
		metrics.ProductMutationsTotal.WithLabelValues("create", "error").Inc()
		return nil, err
	}

	metrics.ProductMutationsTotal.WithLabelValues("create", "success").Inc()
	s.logger.Info().Str("product_id", created.ID).Str("sku", created.SKU).Str("created_by", actorID).Msg("product created")
	return created, nil
}

// List fetches one page and the total match count concurrently. Either read
// failing fails the whole call.
func (s *ProductService) List(ctx context.Context, q ports.ProductQuery) (*ports.ProductPage, error) {
	var (
		products []*domain.Product
		total    int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.repo.Find(gctx, q.Filter, q.Sort, q.Skip, q.Limit)
		if err != nil {
			return fmt.Errorf("list products: find: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx, q.Filter)
		if err != nil {
			return fmt.Errorf("list products: count: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if products == nil {
		products = []*domain.Product{}
	}
	return &ports.ProductPage{
		Products: products,
		Total:    total,
		Page:     q.Page,
		Pages:    totalPages(total, q.Limit),
	}, nil
}

func (s *ProductService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	fill := false
	var version int64
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		switch {
		case err != nil:
			metrics.ProductCacheLookupsTotal.WithLabelValues("error").Inc()
			s.logger.Warn().Err(err).Str("product_id", id).Msg("product cache read failed")
		case cached != nil:
			metrics.ProductCacheLookupsTotal.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			metrics.ProductCacheLookupsTotal.WithLabelValues("miss").Inc()
			// Taken before the store read; see ports.ProductCache.
			if version, err = s.cache.Version(ctx, id); err != nil {
				s.logger.Warn().Err(err).Str("product_id", id).Msg("product cache version read failed")
			} else {
				fill = true
			}
		}
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if fill {
		stored, err := s.cache.SetIfVersion(ctx, product, version)
		switch {
		case err != nil:
			s.logger.Warn().Err(err).Str("product_id", id).Msg("product cache write failed")
		case !stored:
			s.logger.Debug().Str("product_id", id).Msg("product changed during read, cache fill skipped")
		}
	}
	return product, nil
}

// Update validates each patched field, merges it with $set and re-stamps the
// audit fields.
func (s *ProductService) Update(ctx context.Context, id string, patch domain.ProductPatch, actorID string) (*domain.Product, error) {
	patch.Normalize()
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateByID(ctx, id, ports.ProductChanges{
		Patch:     patch,
		UpdatedBy: actorID,
		UpdatedAt: s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrUniqueViolation) {
			metrics.ProductMutationsTotal.WithLabelValues("update", "duplicate_sku").Inc()
			return nil, domain.ErrDuplicateSKU
		}
		result := "error"
		if errors.Is(err, domain.ErrProductNotFound) {
			result = "not_found"
		}
		metrics.ProductMutationsTotal.WithLabelValues("update", result).Inc()
		return nil, err
	}

	s.invalidate(ctx, id)
	metrics.ProductMutationsTotal.WithLabelValues("update", "success").Inc()
	s.logger.Info().Str("product_id", id).Str("updated_by", actorID).Msg("product updated")
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.DeleteByID(ctx, id); err != nil {
		result := "error"
		if errors.Is(err, domain.ErrProductNotFound) {
			result = "not_found"
		}
		metrics.ProductMutationsTotal.WithLabelValues("delete", result).Inc()
		return err
	}

	s.invalidate(ctx, id)
	metrics.ProductMutationsTotal.WithLabelValues("delete", "success").Inc()
	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

// Search runs a relevance-ranked text match over name and description.
func (s *ProductService) Search(ctx context.Context, query string) ([]*domain.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrMissingQuery
	}

	products, err := s.repo.TextSearch(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	if products == nil {
		products = []*domain.Product{}
	}
	return products, nil
}

func (s *ProductService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("product_id", id).Msg("product cache invalidation failed")
	}
}

// totalPages is ceil(total/limit).
func totalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
