package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/storefront/catalog-api/internal/core/domain"
)

func runRBAC(role any, allowed ...string) (bool, error) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if role != nil {
		c.Set(ContextRole, role)
	}

	called := false
	err := RBAC(allowed...)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	return called, err
}

func TestRBAC_Allows(t *testing.T) {
	called, err := runRBAC(domain.RoleAdmin, domain.RoleAdmin, domain.RoleUser)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("next handler not called")
	}
}

func TestRBAC_Denies(t *testing.T) {
	cases := map[string]any{
		"user on admin route": domain.RoleUser,
		"no role":             nil,
		"empty role":          "",
		"non-string role":     42,
	}
	for name, role := range cases {
		t.Run(name, func(t *testing.T) {
			called, err := runRBAC(role, domain.RoleAdmin)
			if called {
				t.Fatal("next should not be called")
			}
			if !errors.Is(err, domain.ErrForbidden) {
				t.Fatalf("expected ErrForbidden, got %v", err)
			}
		})
	}
}
