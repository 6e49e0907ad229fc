package handler

import (
	"strconv"
	"strings"
	"time"

	apperrors "ecommerce-admin/internal/errors"
	"ecommerce-admin/internal/model"
	"ecommerce-admin/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Accepted date query layouts. Values without an offset are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseDate(value string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, err
}

func queryDate(c *fiber.Ctx, key string) (*time.Time, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return nil, nil
	}
	t, err := parseDate(value)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid "+key,
			apperrors.ValidationDetail{Field: key, Message: "must be RFC 3339, YYYY-MM-DDTHH:MM:SS or YYYY-MM-DD"})
	}
	return &t, nil
}

func queryUUID(c *fiber.Ctx, key string) (*uuid.UUID, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid "+key,
			apperrors.ValidationDetail{Field: key, Message: "must be a UUID"})
	}
	return &id, nil
}

func queryInt(c *fiber.Ctx, key string) (*int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid "+key,
			apperrors.ValidationDetail{Field: key, Message: "must be an integer"})
	}
	return &n, nil
}

func queryPeriod(c *fiber.Ctx) (model.Period, error) {
	period, err := model.ParsePeriod(c.Query("group_by"))
	if err != nil {
		return "", apperrors.NewValidationError("invalid group_by",
			apperrors.ValidationDetail{Field: "group_by", Message: "must be one of daily, weekly, monthly, yearly"})
	}
	return period, nil
}

// saleFilter reads start_date, end_date, medium and product_id. Empty values are unset.
func saleFilter(c *fiber.Ctx) (repository.SaleFilter, error) {
	var (
		filter repository.SaleFilter
		err    error
	)
	if filter.StartDate, err = queryDate(c, "start_date"); err != nil {
		return filter, err
	}
	if filter.EndDate, err = queryDate(c, "end_date"); err != nil {
		return filter, err
	}
	if filter.ProductID, err = queryUUID(c, "product_id"); err != nil {
		return filter, err
	}
	if medium := strings.TrimSpace(c.Query("medium")); medium != "" {
		medium = strings.Clone(medium)
		filter.Medium = &medium
	}
	return filter, nil
}

func paramID(c *fiber.Ctx, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, apperrors.NewValidationError("Invalid "+what+" ID",
			apperrors.ValidationDetail{Field: "id", Message: "must be a UUID"})
	}
	return id, nil
}
