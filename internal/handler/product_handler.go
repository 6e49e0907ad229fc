package handler

import (
	"ecommerce-admin/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	service service.ProductService
}

func NewProductHandler(s service.ProductService) *ProductHandler {
	return &ProductHandler{service: s}
}

func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	product, err := h.service.CreateProduct(c.UserContext(), &req)
	if err != nil {
		return writeError(c, err)
	}

	return respond(c, fiber.StatusCreated, "Product created", product)
}

func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, fiber.StatusOK, "Products retrieved", products)
}

func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "product")
	if err != nil {
		return writeError(c, err)
	}

	product, err := h.service.GetProduct(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, fiber.StatusOK, "Product retrieved", product)
}

func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "product")
	if err != nil {
		return writeError(c, err)
	}

	var req service.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	updated, err := h.service.UpdateProduct(c.UserContext(), id, &req)
	if err != nil {
		return writeError(c, err)
	}

	return respond(c, fiber.StatusOK, "Product updated", updated)
}

func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "product")
	if err != nil {
		return writeError(c, err)
	}

	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return respond(c, fiber.StatusOK, "Product deleted", nil)
}
