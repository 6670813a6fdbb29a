package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sellhub/market-system/internal/core/ports"
)

type ProductHandler struct {
	products ports.ProductService
}

func NewProductHandler(products ports.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

type createProductRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=60"`
	Description string   `json:"description" validate:"omitempty,max=2000"`
	Price       int64    `json:"price" validate:"gte=0"`
	Tags        []string `json:"tags" validate:"omitempty,dive,min=1,max=20"`
	ImageURL    string   `json:"image_url" validate:"omitempty,url"`
}

type updateProductRequest struct {
	Name        *string   `json:"name" validate:"omitempty,min=1,max=60"`
	Description *string   `json:"description" validate:"omitempty,max=2000"`
	Price       *int64    `json:"price" validate:"omitempty,gte=0"`
	Tags        *[]string `json:"tags" validate:"omitempty,dive,min=1,max=20"`
	ImageURL    *string   `json:"image_url" validate:"omitempty,url"`
}

// Create registers a new product owned by the authenticated user.
func (h *ProductHandler) Create(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.products.Create(c.Request().Context(), user.ID, ports.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Tags:        req.Tags,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]any{"product": product})
}

// List returns a page of products annotated with like counts.
func (h *ProductHandler) List(c echo.Context) error {
	views, err := h.products.List(c.Request().Context(), listFilter(c), viewerID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"products": views})
}

// Get returns one product by id.
func (h *ProductHandler) Get(c echo.Context) error {
	view, err := h.products.Get(c.Request().Context(), c.Param("id"), viewerID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"product": view})
}

// Update patches a product; only the owner may do so.
func (h *ProductHandler) Update(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.products.Update(c.Request().Context(), c.Param("id"), user.ID, ports.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Tags:        req.Tags,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"product": product})
}

// Delete removes a product; only the owner may do so.
func (h *ProductHandler) Delete(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.products.Delete(c.Request().Context(), c.Param("id"), user.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
