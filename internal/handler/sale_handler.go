package handler

import (
	"ecommerce-admin/internal/repository"
	"ecommerce-admin/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SaleHandler struct {
	ledger  service.LedgerService
	reports service.ReportService
}

func NewSaleHandler(ledger service.LedgerService, reports service.ReportService) *SaleHandler {
	return &SaleHandler{ledger: ledger, reports: reports}
}

func (h *SaleHandler) CreateSale(c *fiber.Ctx) error {
	var req service.RecordSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	sale, err := h.ledger.RecordSale(c.UserContext(), &req)
	if err != nil {
		return writeError(c, err)
	}

	return respond(c, fiber.StatusCreated, "Sale recorded", sale)
}

func (h *SaleHandler) GetAllSales(c *fiber.Ctx) error {
	sales, err := h.ledger.ListSales(c.UserContext(), repository.SaleFilter{})
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, fiber.StatusOK, "Sales retrieved", sales)
}

// GetSales filters by start_date, end_date, medium and product_id.
func (h *SaleHandler) GetSales(c *fiber.Ctx) error {
	filter, err := saleFilter(c)
	if err != nil {
		return writeError(c, err)
	}

	sales, err := h.ledger.ListSales(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, fiber.StatusOK, "Sales retrieved", sales)
}

func (h *SaleHandler) GetSale(c *fiber.Ctx) error {
	id, err := paramID(c, "sale")
	if err != nil {
		return writeError(c, err)
	}

	sale, err := h.ledger.GetSale(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, fiber.StatusOK, "Sale retrieved", sale)
}

// GetRevenue buckets all sales by group_by (daily when absent).
func (h *SaleHandler) GetRevenue(c *fiber.Ctx) error {
	period, err := queryPeriod(c)
	if err != nil {
		return writeError(c, err)
	}

	points, err := h.reports.RevenueByPeriod(c.UserContext(), period)
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, fiber.StatusOK, "Revenue by "+string(period)+" period", points)
}

func (h *SaleHandler) CompareRevenue(c *fiber.Ctx) error {
	period, err := queryPeriod(c)
	if err != nil {
		return writeError(c, err)
	}
	filter, err := saleFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	filter.ProductID = nil

	points, err := h.reports.CompareRevenue(c.UserContext(), period, filter)
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, fiber.StatusOK, "Revenue comparison", points)
}

func (h *SaleHandler) GetSummary(c *fiber.Ctx) error {
	filter, err := saleFilter(c)
	if err != nil {
		return writeError(c, err)
	}

	rows, err := h.reports.SalesSummary(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, fiber.StatusOK, "Sales summary", rows)
}
