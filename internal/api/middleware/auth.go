package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/sellhub/market-system/internal/core/domain"
	"github.com/sellhub/market-system/internal/core/ports"
)

// UserContextKey is the echo context key the session middleware stores the
// resolved *domain.User under. The attachment is read-only: nothing
// downstream mutates the identity.
const UserContextKey = "auth_user"

// CookieNames carries the transport-level storage names for the two tokens.
type CookieNames struct {
	Access  string
	Refresh string
}

// Authenticate verifies the session cookies and attaches the resolved user
// to the request context. Per-request states: no token (401, distinct
// message per missing cookie), invalid token (403), user gone (404),
// valid (identity attached, next called).
func Authenticate(tokens ports.TokenService, users ports.UserRepository, names CookieNames) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			access, err := c.Cookie(names.Access)
			if err != nil || access.Value == "" {
				return domain.ErrMissingAccessToken
			}
			refresh, err := c.Cookie(names.Refresh)
			if err != nil || refresh.Value == "" {
				return domain.ErrMissingRefreshToken
			}

			userID, err := tokens.VerifyAccess(access.Value)
			if err != nil {
				return domain.ErrInvalidToken
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				// A valid token for a deleted account never authenticates.
				return err
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

// Identify is the optional variant used by public reads that annotate
// per-user state: it resolves the identity when a valid access cookie is
// present and passes through anonymously otherwise.
func Identify(tokens ports.TokenService, users ports.UserRepository, names CookieNames) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			access, err := c.Cookie(names.Access)
			if err != nil || access.Value == "" {
				return next(c)
			}

			userID, err := tokens.VerifyAccess(access.Value)
			if err != nil {
				return next(c)
			}

			if user, err := users.FindByID(c.Request().Context(), userID); err == nil {
				c.Set(UserContextKey, user)
			}
			return next(c)
		}
	}
}

// CurrentUser returns the identity attached by Authenticate, or nil when
// the request is anonymous.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(UserContextKey).(*domain.User)
	return user
}

// CurrentUserID returns the authenticated user's id, or "" for anonymous
// requests.
func CurrentUserID(c echo.Context) string {
	if user := CurrentUser(c); user != nil {
		return user.ID
	}
	return ""
}
