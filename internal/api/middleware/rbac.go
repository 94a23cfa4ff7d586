package middleware

import (
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/storefront/catalog-api/internal/core/domain"
)

// RBAC admits the request only when the principal's stored role, as set by
// Auth, is one of roles.
func RBAC(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextRole).(string)
			if role == "" || !slices.Contains(roles, role) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
