package handler

import "github.com/storefront/catalog-api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type authResponse struct {
	Message string               `json:"message"`
	Token   string               `json:"token"`
	User    domain.PrincipalView `json:"user"`
}

// --- Product requests ---

type createProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Category    string   `json:"category"`
	SKU         string   `json:"sku"`
	Stock       *int     `json:"stock"`
}

type updateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	SKU         *string  `json:"sku"`
	Stock       *int     `json:"stock"`
}

// --- Product responses ---

type createProductResponse struct {
	Message string          `json:"message"`
	Data    *domain.Product `json:"data"`
}
