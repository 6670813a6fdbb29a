package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	appmiddleware "github.com/sellhub/market-system/internal/api/middleware"
	"github.com/sellhub/market-system/internal/core/domain"
)

// ctxUser extracts the identity injected by the Authenticate middleware and
// performs a fast-fail check before any service call: a nil user on a
// protected route means the middleware did not run.
func ctxUser(c echo.Context) (*domain.User, error) {
	user := appmiddleware.CurrentUser(c)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}

// viewerID returns the optional identity set by the Identify middleware;
// empty for anonymous readers.
func viewerID(c echo.Context) string {
	return appmiddleware.CurrentUserID(c)
}
