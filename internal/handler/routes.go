package handler

import (
	"github.com/gofiber/fiber/v2"
)

// Handlers groups everything Register mounts.
type Handlers struct {
	Health    *HealthHandler
	Product   *ProductHandler
	Sale      *SaleHandler
	Inventory *InventoryHandler
}

// Register mounts the REST routes. Literal paths are registered before /:id.
func Register(router fiber.Router, h Handlers) {
	router.Get("/", h.Health.Welcome)
	router.Get("/health", h.Health.Health)

	products := router.Group("/products")
	products.Post("/", h.Product.CreateProduct)
	products.Get("/", h.Product.GetProducts)
	products.Get("/:id", h.Product.GetProduct)
	products.Put("/:id", h.Product.UpdateProduct)
	products.Delete("/:id", h.Product.DeleteProduct)

	sales := router.Group("/sales")
	sales.Post("/", h.Sale.CreateSale)
	sales.Get("/", h.Sale.GetSales)
	sales.Get("/all", h.Sale.GetAllSales)
	sales.Get("/revenue", h.Sale.GetRevenue)
	sales.Get("/compare/revenue", h.Sale.CompareRevenue)
	sales.Get("/summary", h.Sale.GetSummary)
	sales.Get("/:id", h.Sale.GetSale)

	inventory := router.Group("/inventory")
	inventory.Get("/status", h.Inventory.GetStatus)
	inventory.Put("/update", h.Inventory.UpdateInventory)
	inventory.Post("/", h.Inventory.CreateInventoryLog)
	inventory.Get("/", h.Inventory.GetLogs)
	inventory.Get("/logs", h.Inventory.GetLogs)
	inventory.Get("/:id", h.Inventory.GetLog)
}
