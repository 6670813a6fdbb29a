package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sellhub/market-system/internal/core/ports"
)

type ArticleHandler struct {
	articles ports.ArticleService
}

func NewArticleHandler(articles ports.ArticleService) *ArticleHandler {
	return &ArticleHandler{articles: articles}
}

type createArticleRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=120"`
	Content string `json:"content" validate:"required"`
}

type updateArticleRequest struct {
	Title   *string `json:"title" validate:"omitempty,min=1,max=120"`
	Content *string `json:"content" validate:"omitempty,min=1"`
}

// Create registers a new article owned by the authenticated user.
//
// @Summary      Create an article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        body  body      createArticleRequest  true  "Article fields"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /articles [post]
func (h *ArticleHandler) Create(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	article, err := h.articles.Create(c.Request().Context(), user.ID, ports.CreateArticleInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]any{"article": article})
}

// List returns a page of articles annotated with like counts and, for an
// identified viewer, the viewer's like state.
func (h *ArticleHandler) List(c echo.Context) error {
	views, err := h.articles.List(c.Request().Context(), listFilter(c), viewerID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"articles": views})
}

// Get returns one article by id.
func (h *ArticleHandler) Get(c echo.Context) error {
	view, err := h.articles.Get(c.Request().Context(), c.Param("id"), viewerID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"article": view})
}

// Update patches an article; only the owner may do so.
func (h *ArticleHandler) Update(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	article, err := h.articles.Update(c.Request().Context(), c.Param("id"), user.ID, ports.UpdateArticleInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"article": article})
}

// Delete removes an article; only the owner may do so.
func (h *ArticleHandler) Delete(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.articles.Delete(c.Request().Context(), c.Param("id"), user.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// listFilter reads the shared listing query parameters.
func listFilter(c echo.Context) ports.ListFilter {
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return ports.ListFilter{
		Offset: offset,
		Limit:  limit,
		Order:  c.QueryParam("order"),
		Search: c.QueryParam("search"),
	}
}
