package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storefront/catalog-api/internal/core/ports"
	"github.com/storefront/catalog-api/internal/core/service"
)

// ProductHandler handles HTTP requests for catalog operations.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// Create handles POST /product/new-product.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Product details"
// @Success      201   {object}  createProductResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /product/new-product [post]
func (h *ProductHandler) Create(c echo.Context) error {
	userID, _, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	product, err := h.service.Create(c.Request().Context(), toProductInput(req), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createProductResponse{
		Message: "Product created successfully",
		Data:    product,
	})
}

// List handles GET /product/get-products.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        page       query     int     false  "Page number (default 1)"
// @Param        limit      query     int     false  "Page size (default 10, max 100)"
// @Param        category   query     string  false  "Category filter"
// @Param        createdBy  query     string  false  "Creator id filter"
// @Param        sort       query     string  false  "Sort field, descending"
// @Success      200        {object}  ports.ProductPage
// @Failure      500        {object}  errorResponse
// @Router       /product/get-products [get]
func (h *ProductHandler) List(c echo.Context) error {
	page, err := h.service.List(c.Request().Context(), service.BuildProductQuery(c.QueryParams()))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// ListByUser handles GET /product/get-user-product. userId defaults to the
// caller.
//
// @Summary      List products created by a user
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        userId    query     string  false  "Creator id (defaults to the caller)"
// @Param        page      query     int     false  "Page number (default 1)"
// @Param        limit     query     int     false  "Page size (default 10, max 100)"
// @Param        category  query     string  false  "Category filter"
// @Param        sort      query     string  false  "Sort field, descending"
// @Success      200       {object}  ports.ProductPage
// @Failure      401       {object}  errorResponse
// @Failure      403       {object}  errorResponse
// @Router       /product/get-user-product [get]
func (h *ProductHandler) ListByUser(c echo.Context) error {
	userID, _, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	q := service.BuildProductQuery(c.QueryParams())
	q.Filter.CreatedBy = userID
	if owner := c.QueryParam("userId"); owner != "" {
		q.Filter.CreatedBy = owner
	}

	page, err := h.service.List(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Get handles GET /product/get-product/:id.
//
// @Summary      Get a product by id
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  domain.Product
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /product/get-product/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Update handles PUT /product/update-product/:id.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Product id"
// @Param        body  body      updateProductRequest  true  "Fields to change"
// @Success      200   {object}  domain.Product
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /product/update-product/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	userID, _, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	product, err := h.service.Update(c.Request().Context(), c.Param("id"), toProductPatch(req), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Delete handles DELETE /product/products/:id.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /product/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Product deleted successfully"})
}

// Search handles GET /product/products/search?q=.
//
// @Summary      Full-text product search
// @Tags         products
// @Produce      json
// @Param        q    query     string  true  "Search terms"
// @Success      200  {array}   domain.Product
// @Failure      400  {object}  errorResponse
// @Router       /product/products/search [get]
func (h *ProductHandler) Search(c echo.Context) error {
	products, err := h.service.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}
