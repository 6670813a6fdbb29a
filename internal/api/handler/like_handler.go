package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sellhub/market-system/internal/core/domain"
	"github.com/sellhub/market-system/internal/core/ports"
)

// LikeHandler serves the toggle endpoints for both target kinds.
type LikeHandler struct {
	likes ports.LikeService
}

func NewLikeHandler(likes ports.LikeService) *LikeHandler {
	return &LikeHandler{likes: likes}
}

// ToggleArticle flips the caller's like on an article.
//
// @Summary      Toggle a like on an article
// @Tags         likes
// @Produce      json
// @Param        id   path      string  true  "Article id"
// @Success      201  {object}  map[string]any
// @Failure      401  {object}  map[string]string
// @Router       /articles/{id}/like [post]
func (h *LikeHandler) ToggleArticle(c echo.Context) error {
	return h.toggle(c, domain.LikeTargetArticle)
}

// ToggleProduct flips the caller's like on a product.
//
// @Summary      Toggle a like on a product
// @Tags         likes
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      201  {object}  map[string]any
// @Failure      401  {object}  map[string]string
// @Router       /products/{id}/like [post]
func (h *LikeHandler) ToggleProduct(c echo.Context) error {
	return h.toggle(c, domain.LikeTargetProduct)
}

func (h *LikeHandler) toggle(c echo.Context, target domain.LikeTarget) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	result, err := h.likes.Toggle(c.Request().Context(), user.ID, target, c.Param("id"))
	if err != nil {
		return err
	}

	msg := "like removed"
	if result.Liked {
		msg = "like added"
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"message": msg,
		"liked":   result.Liked,
		"like":    result.Like,
	})
}
