package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sellhub/market-system/internal/core/domain"
	"github.com/sellhub/market-system/internal/core/ports"
)

// CommentHandler serves comments nested under articles and products, plus
// the flat patch/delete routes.
type CommentHandler struct {
	comments ports.CommentService
}

func NewCommentHandler(comments ports.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

type commentRequest struct {
	Content string `json:"content" validate:"required,max=1000"`
}

// CreateForArticle posts a comment under an article.
func (h *CommentHandler) CreateForArticle(c echo.Context) error {
	return h.create(c, domain.LikeTargetArticle)
}

// CreateForProduct posts a comment under a product.
func (h *CommentHandler) CreateForProduct(c echo.Context) error {
	return h.create(c, domain.LikeTargetProduct)
}

// ListForArticle lists comments under an article, newest first.
func (h *CommentHandler) ListForArticle(c echo.Context) error {
	return h.list(c, domain.LikeTargetArticle)
}

// ListForProduct lists comments under a product, newest first.
func (h *CommentHandler) ListForProduct(c echo.Context) error {
	return h.list(c, domain.LikeTargetProduct)
}

// Update patches a comment's content; only the owner may do so.
func (h *CommentHandler) Update(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.comments.Update(c.Request().Context(), c.Param("id"), user.ID, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"comment": comment})
}

// Delete removes a comment; only the owner may do so.
func (h *CommentHandler) Delete(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.comments.Delete(c.Request().Context(), c.Param("id"), user.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CommentHandler) create(c echo.Context, target domain.LikeTarget) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.comments.Create(c.Request().Context(), user.ID, target, c.Param("id"), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]any{"comment": comment})
}

func (h *CommentHandler) list(c echo.Context, target domain.LikeTarget) error {
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	comments, err := h.comments.List(c.Request().Context(), target, c.Param("id"), offset, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"comments": comments})
}
