package model

import (
	"time"

	"github.com/google/uuid"
)

// Sale is immutable once written. Its insertion always coincides with a stock decrement.
type Sale struct {
	BaseModel
	ProductID     uuid.UUID `gorm:"type:varchar(36);not null;index" json:"product_id"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	MediumOfSales string    `gorm:"type:varchar(100);not null;index" json:"medium_of_sales"`
	TotalPrice    *float64  `json:"total_price"`
}

func NewSale(productID uuid.UUID, quantity int, medium string, totalPrice *float64, createdAt time.Time) *Sale {
	return &Sale{
		BaseModel:     BaseModel{CreatedAt: createdAt},
		ProductID:     productID,
		Quantity:      quantity,
		MediumOfSales: medium,
		TotalPrice:    totalPrice,
	}
}
