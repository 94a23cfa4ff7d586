package handler

import "github.com/storefront/catalog-api/internal/core/domain"

// echoValidator lets Echo call c.Validate(req) with the domain validation
// engine, so request and domain errors share one message format.
type echoValidator struct{}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{}
}

// Validate satisfies the echo.Validator interface. Failures are
// *domain.ValidationError.
func (ev *echoValidator) Validate(i any) error {
	return domain.ValidateStruct(i)
}
