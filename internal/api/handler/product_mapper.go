package handler

import "github.com/storefront/catalog-api/internal/core/domain"

// --- Request → Service input ---

func toProductInput(req createProductRequest) domain.ProductInput {
	return domain.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		SKU:         req.SKU,
		Stock:       req.Stock,
	}
}

func toProductPatch(req updateProductRequest) domain.ProductPatch {
	return domain.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		SKU:         req.SKU,
		Stock:       req.Stock,
	}
}
