package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/sellhub/market-system/internal/core/domain"
	"github.com/sellhub/market-system/internal/core/ports"
)

var testNames = CookieNames{Access: "access_token", Refresh: "refresh_token"}

// stubTokens resolves tokens through a fixed map; anything else is invalid.
type stubTokens struct {
	access  map[string]string
	refresh map[string]string
}

func (s *stubTokens) Issue(userID string) (ports.TokenPair, error) {
	return ports.TokenPair{}, nil
}

func (s *stubTokens) VerifyAccess(token string) (string, error) {
	if id, ok := s.access[token]; ok {
		return id, nil
	}
	return "", domain.ErrInvalidToken
}

func (s *stubTokens) VerifyRefresh(token string) (string, error) {
	if id, ok := s.refresh[token]; ok {
		return id, nil
	}
	return "", domain.ErrInvalidToken
}

type stubUsers struct {
	users map[string]*domain.User
}

func (s *stubUsers) Create(_ context.Context, u *domain.User) (*domain.User, error)  { return u, nil }
func (s *stubUsers) FindByEmail(_ context.Context, _ string) (*domain.User, error)   { return nil, domain.ErrUserNotFound }
func (s *stubUsers) FindByIDs(_ context.Context, _ []string) ([]*domain.User, error) { return nil, nil }
func (s *stubUsers) Update(_ context.Context, u *domain.User) (*domain.User, error)  { return u, nil }

func (s *stubUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func newTestContext(cookies map[string]string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for name, value := range cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func newTestDeps() (*stubTokens, *stubUsers) {
	tokens := &stubTokens{
		access:  map[string]string{"good-access": "u1", "orphan-access": "gone"},
		refresh: map[string]string{"good-refresh": "u1"},
	}
	users := &stubUsers{users: map[string]*domain.User{
		"u1": {ID: "u1", Email: "a@example.com", Nickname: "a"},
	}}
	return tokens, users
}

func TestAuthenticate_Valid(t *testing.T) {
	tokens, users := newTestDeps()
	c := newTestContext(map[string]string{
		testNames.Access:  "good-access",
		testNames.Refresh: "good-refresh",
	})

	called := false
	handler := Authenticate(tokens, users, testNames)(func(c echo.Context) error {
		called = true
		if CurrentUserID(c) != "u1" {
			t.Fatalf("identity not attached: %q", CurrentUserID(c))
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuthenticate_MissingAccessCookie(t *testing.T) {
	tokens, users := newTestDeps()
	c := newTestContext(map[string]string{testNames.Refresh: "good-refresh"})

	handler := Authenticate(tokens, users, testNames)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	// The two missing-cookie cases fail with distinct errors.
	if err := handler(c); err != domain.ErrMissingAccessToken {
		t.Fatalf("expected ErrMissingAccessToken, got %v", err)
	}
}

func TestAuthenticate_MissingRefreshCookie(t *testing.T) {
	tokens, users := newTestDeps()
	c := newTestContext(map[string]string{testNames.Access: "good-access"})

	handler := Authenticate(tokens, users, testNames)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != domain.ErrMissingRefreshToken {
		t.Fatalf("expected ErrMissingRefreshToken, got %v", err)
	}
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	tokens, users := newTestDeps()
	c := newTestContext(map[string]string{
		testNames.Access:  "forged",
		testNames.Refresh: "good-refresh",
	})

	handler := Authenticate(tokens, users, testNames)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthenticate_UserGone(t *testing.T) {
	tokens, users := newTestDeps()
	c := newTestContext(map[string]string{
		testNames.Access:  "orphan-access",
		testNames.Refresh: "good-refresh",
	})

	handler := Authenticate(tokens, users, testNames)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	// A valid token for a deleted account reads as not-found, not as a
	// bad token.
	if err := handler(c); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestIdentify_AnonymousPassthrough(t *testing.T) {
	tokens, users := newTestDeps()

	for name, cookies := range map[string]map[string]string{
		"no cookies":    {},
		"invalid token": {testNames.Access: "forged"},
		"user gone":     {testNames.Access: "orphan-access"},
	} {
		t.Run(name, func(t *testing.T) {
			c := newTestContext(cookies)
			called := false
			handler := Identify(tokens, users, testNames)(func(c echo.Context) error {
				called = true
				if CurrentUser(c) != nil {
					t.Fatalf("expected anonymous request")
				}
				return c.NoContent(http.StatusOK)
			})

			if err := handler(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if !called {
				t.Fatalf("next not called")
			}
		})
	}
}

func TestIdentify_AttachesIdentity(t *testing.T) {
	tokens, users := newTestDeps()
	c := newTestContext(map[string]string{testNames.Access: "good-access"})

	handler := Identify(tokens, users, testNames)(func(c echo.Context) error {
		if CurrentUserID(c) != "u1" {
			t.Fatalf("identity not attached: %q", CurrentUserID(c))
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}
