package handler

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db      *gorm.DB
	appName string
}

func NewHealthHandler(db *gorm.DB, appName string) *HealthHandler {
	return &HealthHandler{db: db, appName: appName}
}

func (h *HealthHandler) Welcome(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message":     "Welcome to " + h.appName,
		"graphql_url": "/graphql",
		"ws_url":      "/ws",
	})
}

// Health pings the database.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.UserContext())
	}
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "error", "message": "database unavailable"})
	}
	return c.JSON(fiber.Map{"status": "success", "message": "ok"})
}
