package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/storefront/catalog-api/internal/api/middleware"
	"github.com/storefront/catalog-api/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the Auth middleware. An
// empty user id means the route was wired without Auth.
func ctxPrincipal(c echo.Context) (userID, role string, err error) {
	userID, _ = c.Get(middleware.ContextUserID).(string)
	if userID == "" {
		return "", "", domain.ErrAuthRequired
	}
	role, _ = c.Get(middleware.ContextRole).(string)
	return userID, role, nil
}
