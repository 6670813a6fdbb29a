package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sellhub/market-system/internal/core/domain"
	"github.com/sellhub/market-system/internal/core/ports"
)

var testCookies = CookieWriter{AccessName: "access_token", RefreshName: "refresh_token"}

func testPair() ports.TokenPair {
	return ports.TokenPair{
		AccessToken:  "access-abc",
		RefreshToken: "refresh-abc",
		AccessTTL:    time.Hour,
		RefreshTTL:   7 * 24 * time.Hour,
	}
}

// stubAuth returns canned results per operation.
type stubAuth struct {
	registerErr error
	loginErr    error
	refreshErr  error
}

func (s *stubAuth) Register(_ context.Context, input ports.RegisterInput) (*domain.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &domain.User{ID: "u1", Email: input.Email, Nickname: input.Nickname}, nil
}

func (s *stubAuth) Login(_ context.Context, email, _ string) (*ports.LoginResult, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &ports.LoginResult{
		User:   &domain.User{ID: "u1", Email: email, Nickname: "a"},
		Tokens: testPair(),
	}, nil
}

func (s *stubAuth) Refresh(_ context.Context, _ string) (ports.TokenPair, error) {
	if s.refreshErr != nil {
		return ports.TokenPair{}, s.refreshErr
	}
	return testPair(), nil
}

func newAuthTestContext(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestAuthHandler_Register(t *testing.T) {
	h := NewAuthHandler(&stubAuth{}, testCookies)
	c, rec := newAuthTestContext(`{"email":"a@example.com","nickname":"a","password":"pass1234"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var body map[string]domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["user"].Email != "a@example.com" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("password material leaked into response: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	h := NewAuthHandler(&stubAuth{}, testCookies)
	c, _ := newAuthTestContext(`{"email":"a@example.com","nickname":"a","password":"short"}`)

	err := h.Register(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Login_SetsCookies(t *testing.T) {
	h := NewAuthHandler(&stubAuth{}, testCookies)
	c, rec := newAuthTestContext(`{"email":"a@example.com","password":"pass1234"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	access := findCookie(rec, "access_token")
	if access == nil || access.Value != "access-abc" {
		t.Fatalf("access cookie not set: %+v", access)
	}
	if !access.HttpOnly || access.SameSite != http.SameSiteStrictMode {
		t.Fatalf("access cookie not hardened: %+v", access)
	}
	if access.MaxAge != int(time.Hour.Seconds()) {
		t.Fatalf("access cookie max-age: %d", access.MaxAge)
	}

	refresh := findCookie(rec, "refresh_token")
	if refresh == nil || refresh.Value != "refresh-abc" {
		t.Fatalf("refresh cookie not set: %+v", refresh)
	}
	if refresh.MaxAge != int((7 * 24 * time.Hour).Seconds()) {
		t.Fatalf("refresh cookie max-age: %d", refresh.MaxAge)
	}

	if !strings.Contains(rec.Body.String(), "access-abc") {
		t.Fatalf("access token missing from body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_ErrorPassesThrough(t *testing.T) {
	h := NewAuthHandler(&stubAuth{loginErr: domain.ErrUserNotFound}, testCookies)
	c, rec := newAuthTestContext(`{"email":"ghost@example.com","password":"pass1234"}`)

	if err := h.Login(c); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if findCookie(rec, "access_token") != nil {
		t.Fatalf("no cookies on failed login")
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	h := NewAuthHandler(&stubAuth{}, testCookies)
	c, rec := newAuthTestContext("")
	c.Request().AddCookie(&http.Cookie{Name: "refresh_token", Value: "refresh-old"})

	if err := h.Refresh(c); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if cookie := findCookie(rec, "access_token"); cookie == nil || cookie.Value != "access-abc" {
		t.Fatalf("rotated access cookie not set: %+v", cookie)
	}
}

func TestAuthHandler_Refresh_MissingCookie(t *testing.T) {
	h := NewAuthHandler(&stubAuth{}, testCookies)
	c, _ := newAuthTestContext("")

	if err := h.Refresh(c); err != domain.ErrMissingRefreshToken {
		t.Fatalf("expected ErrMissingRefreshToken, got %v", err)
	}
}

func TestAuthHandler_Logout_ClearsCookies(t *testing.T) {
	h := NewAuthHandler(&stubAuth{}, testCookies)
	c, rec := newAuthTestContext("")

	if err := h.Logout(c); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	for _, name := range []string{"access_token", "refresh_token"} {
		cookie := findCookie(rec, name)
		if cookie == nil {
			t.Fatalf("%s not cleared", name)
		}
		if cookie.Value != "" || cookie.MaxAge != -1 {
			t.Fatalf("%s should be expired: %+v", name, cookie)
		}
	}
}
