package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sellhub/market-system/internal/core/domain"
	"github.com/sellhub/market-system/internal/core/ports"
)

type AuthHandler struct {
	auth    ports.AuthService
	cookies CookieWriter
}

func NewAuthHandler(auth ports.AuthService, cookies CookieWriter) *AuthHandler {
	return &AuthHandler{auth: auth, cookies: cookies}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Nickname string `json:"nickname" validate:"required,min=1,max=20"`
	Password string `json:"password" validate:"required,min=8"`
	Image    string `json:"image" validate:"omitempty,url"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	User        *domain.User `json:"user"`
	AccessToken string       `json:"access_token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.auth.Register(c.Request().Context(), ports.RegisterInput{
		Email:    req.Email,
		Nickname: req.Nickname,
		Password: req.Password,
		Image:    req.Image,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]any{"user": user})
}

// Login authenticates a user, sets the session cookies and returns the
// user together with the access token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.cookies.Write(c, result.Tokens)
	return c.JSON(http.StatusOK, loginResponse{
		User:        result.User,
		AccessToken: result.Tokens.AccessToken,
	})
}

// Refresh exchanges the refresh cookie for a brand-new token pair.
//
// @Summary      Refresh the session tokens
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie(h.cookies.RefreshName)
	if err != nil || cookie.Value == "" {
		return domain.ErrMissingRefreshToken
	}

	pair, err := h.auth.Refresh(c.Request().Context(), cookie.Value)
	if err != nil {
		return err
	}

	h.cookies.Write(c, pair)
	return c.JSON(http.StatusOK, messageResponse{Message: "tokens refreshed"})
}

// Logout clears both session cookies. No server-side state is involved.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.cookies.Clear(c)
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}
