package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/noorskin/storefront/internal/api/dto"
	"github.com/noorskin/storefront/internal/auth"
	"github.com/noorskin/storefront/internal/domain"
	"github.com/noorskin/storefront/internal/service"
	apperrors "github.com/noorskin/storefront/pkg/util/errorutil"
)

// ProductsHandler exposes the product REST surface.
type ProductsHandler struct {
	products *service.ProductService
	version  string
}

// NewProductsHandler constructs handler.
func NewProductsHandler(products *service.ProductService, version string) *ProductsHandler {
	return &ProductsHandler{products: products, version: version}
}

// List handles GET /products.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	filter := domain.ProductFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("pageSize", 0),
	}
	items, pagination, err := h.products.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return writeData(c, http.StatusOK, h.version, items, pagination)
}

// Get handles GET /products/:id.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	product, err := h.products.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return writeData(c, http.StatusOK, h.version, product, nil)
}

// Create handles POST /products.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("", nil)
	}
	actor, _ := auth.PrincipalFromContext(c)
	product, err := h.products.Create(c.UserContext(), actor, req)
	if err != nil {
		return err
	}
	return writeData(c, http.StatusCreated, h.version, product, nil)
}

// Update handles PUT /products/:id.
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("", nil)
	}
	actor, _ := auth.PrincipalFromContext(c)
	product, err := h.products.Update(c.UserContext(), actor, id, req)
	if err != nil {
		return err
	}
	return writeData(c, http.StatusOK, h.version, product, nil)
}

// Delete handles DELETE /products/:id.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	actor, _ := auth.PrincipalFromContext(c)
	if err := h.products.Delete(c.UserContext(), actor, id); err != nil {
		return err
	}
	return writeData(c, http.StatusOK, h.version, fiber.Map{"id": id, "deleted": true}, nil)
}

func productID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("معرف المنتج غير صالح", map[string]any{"id": c.Params("id")})
	}
	return id, nil
}
