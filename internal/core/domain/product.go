package domain

import (
	"strings"
	"time"
)

// Product is the catalog aggregate.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	SKU         string    `json:"sku"`
	Stock       int       `json:"stock"`
	CreatedBy   string    `json:"createdBy"`
	UpdatedBy   string    `json:"updatedBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductInput carries the fields required to create a product. Price and
// Stock are pointers so that an explicit zero is distinguishable from absent.
type ProductInput struct {
	Name        string   `json:"name"        validate:"required,max=100"`
	Description string   `json:"description" validate:"required,max=1000"`
	Price       *float64 `json:"price"       validate:"required,gte=0"`
	Category    string   `json:"category"    validate:"required"`
	SKU         string   `json:"sku"         validate:"required"`
	Stock       *int     `json:"stock"       validate:"required,gte=0"`
}

// Normalize trims the product name, mirroring the store schema.
func (in *ProductInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
}

func (in *ProductInput) Validate() error {
	return ValidateStruct(in)
}

// ProductPatch is a partial update. Nil fields are left untouched.
type ProductPatch struct {
	Name        *string  `json:"name,omitempty"        validate:"omitnil,min=1,max=100"`
	Description *string  `json:"description,omitempty" validate:"omitnil,min=1,max=1000"`
	Price       *float64 `json:"price,omitempty"       validate:"omitnil,gte=0"`
	Category    *string  `json:"category,omitempty"    validate:"omitnil,min=1"`
	SKU         *string  `json:"sku,omitempty"         validate:"omitnil,min=1"`
	Stock       *int     `json:"stock,omitempty"       validate:"omitnil,gte=0"`
}

func (p *ProductPatch) Normalize() {
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		p.Name = &name
	}
}

// Empty reports whether the patch changes nothing.
func (p *ProductPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil &&
		p.Category == nil && p.SKU == nil && p.Stock == nil
}

func (p *ProductPatch) Validate() error {
	if p.Empty() {
		return NewValidationError("at least one field must be provided")
	}
	return ValidateStruct(p)
}
