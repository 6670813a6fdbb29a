package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sellhub/market-system/internal/core/ports"
)

// CookieWriter sets and clears the two session cookies. Both are http-only
// and SameSite=Strict; Secure is enabled in production.
type CookieWriter struct {
	AccessName  string
	RefreshName string
	Secure      bool
}

// Write stores a token pair in the response, each cookie with the max-age
// of its token.
func (w CookieWriter) Write(c echo.Context, pair ports.TokenPair) {
	c.SetCookie(w.cookie(w.AccessName, pair.AccessToken, int(pair.AccessTTL.Seconds())))
	c.SetCookie(w.cookie(w.RefreshName, pair.RefreshToken, int(pair.RefreshTTL.Seconds())))
}

// Clear expires both cookies immediately.
func (w CookieWriter) Clear(c echo.Context) {
	c.SetCookie(w.cookie(w.AccessName, "", -1))
	c.SetCookie(w.cookie(w.RefreshName, "", -1))
}

func (w CookieWriter) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   w.Secure,
		SameSite: http.SameSiteStrictMode,
	}
}
