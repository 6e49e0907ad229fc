package handler

import (
	"ecommerce-admin/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type InventoryHandler struct {
	ledger  service.LedgerService
	reports service.ReportService
	logger  *zap.Logger
}

func NewInventoryHandler(ledger service.LedgerService, reports service.ReportService, logger *zap.Logger) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, reports: reports, logger: logger}
}

// inventoryLogPayload is the body of POST /inventory. PreviousStock is read for
// compatibility only; the stored value always comes from the locked product row.
type inventoryLogPayload struct {
	ProductID     uuid.UUID `json:"product_id"`
	PreviousStock *int      `json:"previous_stock"`
	NewStock      *int      `json:"new_stock"`
}

// GetStatus lists every product with its low-stock flag. ?threshold overrides the default.
func (h *InventoryHandler) GetStatus(c *fiber.Ctx) error {
	threshold, err := queryInt(c, "threshold")
	if err != nil {
		return writeError(c, err)
	}

	entries, err := h.reports.LowStockStatus(c.UserContext(), threshold)
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, fiber.StatusOK, "Low stock products", entries)
}

func (h *InventoryHandler) UpdateInventory(c *fiber.Ctx) error {
	var req service.AdjustInventoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	entry, err := h.ledger.AdjustInventory(c.UserContext(), &req)
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, fiber.StatusOK, "Inventory updated and logged", entry)
}

func (h *InventoryHandler) CreateInventoryLog(c *fiber.Ctx) error {
	var payload inventoryLogPayload
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	entry, err := h.ledger.AdjustInventory(c.UserContext(), &service.AdjustInventoryRequest{
		ProductID: payload.ProductID,
		NewStock:  payload.NewStock,
	})
	if err != nil {
		return writeError(c, err)
	}

	if payload.PreviousStock != nil && *payload.PreviousStock != entry.PreviousStock {
		h.logger.Warn("ignored client previous_stock",
			zap.String("productId", entry.ProductID.String()),
			zap.Int("claimed", *payload.PreviousStock),
			zap.Int("actual", entry.PreviousStock))
	}

	return respond(c, fiber.StatusCreated, "Inventory log created", entry)
}

// GetLogs lists inventory logs, optionally for one product_id.
func (h *InventoryHandler) GetLogs(c *fiber.Ctx) error {
	productID, err := queryUUID(c, "product_id")
	if err != nil {
		return writeError(c, err)
	}

	logs, err := h.ledger.ListInventoryLogs(c.UserContext(), productID)
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, fiber.StatusOK, "Inventory logs retrieved", logs)
}

func (h *InventoryHandler) GetLog(c *fiber.Ctx) error {
	id, err := paramID(c, "inventory log")
	if err != nil {
		return writeError(c, err)
	}

	entry, err := h.ledger.GetInventoryLog(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, fiber.StatusOK, "Inventory log retrieved", entry)
}
