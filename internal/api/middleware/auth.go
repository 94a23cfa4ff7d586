package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/storefront/catalog-api/internal/core/domain"
	"github.com/storefront/catalog-api/internal/core/ports"
)

// Context keys set by Auth.
const (
	ContextPrincipal = "principal"
	ContextUserID    = "user_id"
	ContextRole      = "role"
)

// Auth verifies the bearer token, loads the principal it names and injects
// it into the request context. Failures are returned as domain errors for
// the HTTP error handler to translate.
func Auth(tokens ports.TokenService, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return domain.ErrAuthRequired
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				return domain.ErrInvalidToken
			}

			user, err := users.FindByID(c.Request().Context(), claims.SubjectID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return domain.ErrInvalidToken
				}
				return fmt.Errorf("load principal: %w", err)
			}

			c.Set(ContextPrincipal, user.View())
			c.Set(ContextUserID, user.ID)
			c.Set(ContextRole, user.Role)

			return next(c)
		}
	}
}

// bearerToken extracts the token from "Bearer <token>". A missing header, a
// different scheme or a blank token all report false.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
