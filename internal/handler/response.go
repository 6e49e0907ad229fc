package handler

import (
	apperrors "ecommerce-admin/internal/errors"

	"github.com/gofiber/fiber/v2"
)

func respond(c *fiber.Ctx, status int, message string, data interface{}) error {
	body := fiber.Map{"status": "success", "message": message}
	if data != nil {
		body["data"] = data
	}
	return c.Status(status).JSON(body)
}

func badRequest(c *fiber.Ctx, message string, details ...apperrors.ValidationDetail) error {
	return writeError(c, apperrors.NewValidationError(message, details...))
}

// writeError is the only place application errors become HTTP statuses.
func writeError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	body := fiber.Map{"status": "error", "message": "Internal Server Error"}

	if nf, ok := apperrors.IsNotFoundError(err); ok {
		status = fiber.StatusNotFound
		body["message"] = nf.Message
	} else if ise, ok := apperrors.IsInsufficientStockError(err); ok {
		status = fiber.StatusBadRequest
		body["message"] = "Insufficient stock"
		body["details"] = fiber.Map{
			"product_id": ise.ProductID,
			"requested":  ise.Requested,
			"available":  ise.Available,
		}
	} else if ve, ok := apperrors.IsValidationError(err); ok {
		status = fiber.StatusBadRequest
		body["message"] = ve.Message
		if len(ve.Details) > 0 {
			body["details"] = ve.Details
		}
	}

	return c.Status(status).JSON(body)
}
