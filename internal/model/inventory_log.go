package model

import (
	"time"

	"github.com/google/uuid"
)

// InventoryLog is the append-only audit row written for every direct stock edit.
type InventoryLog struct {
	BaseModel
	ProductID     uuid.UUID `gorm:"type:varchar(36);not null;index" json:"product_id"`
	PreviousStock int       `gorm:"not null" json:"previous_stock"`
	NewStock      int       `gorm:"not null" json:"new_stock"`
}

func NewInventoryLog(productID uuid.UUID, previousStock, newStock int, createdAt time.Time) *InventoryLog {
	return &InventoryLog{
		BaseModel:     BaseModel{CreatedAt: createdAt},
		ProductID:     productID,
		PreviousStock: previousStock,
		NewStock:      newStock,
	}
}
