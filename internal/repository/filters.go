package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaleFilter narrows sale queries. A nil field is left out of the query entirely,
// so an empty filter matches every sale ever recorded.
type SaleFilter struct {
	StartDate *time.Time // inclusive
	EndDate   *time.Time // inclusive
	Medium    *string
	ProductID *uuid.UUID
}

func (f SaleFilter) apply(db *gorm.DB) *gorm.DB {
	if f.StartDate != nil {
		db = db.Where("created_at >= ?", f.StartDate.UTC())
	}
	if f.EndDate != nil {
		db = db.Where("created_at <= ?", f.EndDate.UTC())
	}
	if f.Medium != nil {
		db = db.Where("medium_of_sales = ?", *f.Medium)
	}
	if f.ProductID != nil {
		db = db.Where("product_id = ?", *f.ProductID)
	}
	return db
}
