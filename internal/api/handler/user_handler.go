package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sellhub/market-system/internal/core/ports"
)

// UserHandler serves the /users/me endpoints. Every route requires the
// Authenticate middleware.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type updateProfileRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Nickname *string `json:"nickname" validate:"omitempty,min=1,max=20"`
	Image    *string `json:"image" validate:"omitempty,url"`
}

type updatePasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

// Me returns the authenticated user's profile.
func (h *UserHandler) Me(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	profile, err := h.users.Get(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"user": profile})
}

// UpdateMe patches the authenticated user's profile fields.
func (h *UserHandler) UpdateMe(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.users.UpdateProfile(c.Request().Context(), user.ID, ports.UpdateProfileInput{
		Email:    req.Email,
		Nickname: req.Nickname,
		Image:    req.Image,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"user": updated})
}

// UpdatePassword replaces the authenticated user's password.
func (h *UserHandler) UpdatePassword(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.users.UpdatePassword(c.Request().Context(), user.ID, req.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "password updated"})
}

// OwnArticles lists articles created by the authenticated user.
func (h *UserHandler) OwnArticles(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	articles, err := h.users.OwnArticles(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"articles": articles})
}

// OwnProducts lists products created by the authenticated user.
func (h *UserHandler) OwnProducts(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	products, err := h.users.OwnProducts(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"products": products})
}

// LikedArticles lists articles the authenticated user has liked.
func (h *UserHandler) LikedArticles(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	articles, err := h.users.LikedArticles(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"articles": articles})
}

// LikedProducts lists products the authenticated user has liked.
func (h *UserHandler) LikedProducts(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	products, err := h.users.LikedProducts(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"products": products})
}
