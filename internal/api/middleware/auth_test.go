package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/storefront/catalog-api/internal/core/domain"
	"github.com/storefront/catalog-api/internal/core/service"
)

type stubUsers struct {
	byID map[string]*domain.User
	err  error
}

func (s *stubUsers) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *stubUsers) Create(context.Context, *domain.User) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func newUsers() *stubUsers {
	return &stubUsers{byID: map[string]*domain.User{
		"u-admin": {ID: "u-admin", Email: "alice@example.com", Role: domain.RoleAdmin},
		"u-user":  {ID: "u-user", Email: "bob@example.com", Role: domain.RoleUser},
	}}
}

func newTokens(t *testing.T) *service.TokenService {
	t.Helper()
	tokens, err := service.NewTokenService("secret", 0)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return tokens
}

func mint(t *testing.T, tokens *service.TokenService, sub, role string) string {
	t.Helper()
	tok, err := tokens.Mint(sub, role)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	return tok
}

func runAuth(t *testing.T, tokens *service.TokenService, users *stubUsers, header string) (echo.Context, bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	called := false
	err := Auth(tokens, users)(func(echo.Context) error {
		called = true
		return nil
	})(c)
	return c, called, err
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	tokens := newTokens(t)

	c, called, err := runAuth(t, tokens, newUsers(), "Bearer "+mint(t, tokens, "u-admin", domain.RoleAdmin))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("next not called")
	}
	if c.Get(ContextUserID) != "u-admin" || c.Get(ContextRole) != domain.RoleAdmin {
		t.Fatalf("principal not injected: user_id=%v role=%v", c.Get(ContextUserID), c.Get(ContextRole))
	}
	view, ok := c.Get(ContextPrincipal).(domain.PrincipalView)
	if !ok || view.Email != "alice@example.com" {
		t.Fatalf("unexpected principal: %#v", c.Get(ContextPrincipal))
	}
}

func TestAuthMiddleware_SchemeIsCaseInsensitive(t *testing.T) {
	tokens := newTokens(t)

	_, called, err := runAuth(t, tokens, newUsers(), "bearer "+mint(t, tokens, "u-user", domain.RoleUser))
	if err != nil || !called {
		t.Fatalf("expected lowercase scheme to be accepted, err=%v called=%v", err, called)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	tokens := newTokens(t)
	other, err := service.NewTokenService("another-secret", 0)
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name   string
		header string
		want   error
	}{
		{"missing header", "", domain.ErrAuthRequired},
		{"wrong scheme", "Token abc", domain.ErrAuthRequired},
		{"blank token", "Bearer   ", domain.ErrAuthRequired},
		{"garbage token", "Bearer not-a-token", domain.ErrInvalidToken},
		{"foreign signature", "Bearer " + mint(t, other, "u-admin", domain.RoleAdmin), domain.ErrInvalidToken},
		{"unknown principal", "Bearer " + mint(t, tokens, "u-gone", domain.RoleAdmin), domain.ErrInvalidToken},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, called, err := runAuth(t, tokens, newUsers(), tc.header)
			if called {
				t.Fatal("should not reach next")
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	issued := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	minter := newTokens(t).WithClock(func() time.Time { return issued })
	verifier := newTokens(t).WithClock(func() time.Time { return issued.Add(24 * time.Hour) })

	_, called, err := runAuth(t, verifier, newUsers(), "Bearer "+mint(t, minter, "u-admin", domain.RoleAdmin))
	if called || !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v (called=%v)", err, called)
	}
}

func TestAuthMiddleware_StoreFailure(t *testing.T) {
	tokens := newTokens(t)
	users := newUsers()
	users.err = errors.New("mongo down")

	_, called, err := runAuth(t, tokens, users, "Bearer "+mint(t, tokens, "u-admin", domain.RoleAdmin))
	if called {
		t.Fatal("should not reach next")
	}
	if err == nil || errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected an internal error, got %v", err)
	}
}
