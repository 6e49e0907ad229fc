package model

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	BaseModel
	Name      string         `gorm:"type:varchar(255);not null;index" json:"name"`
	Stock     int            `gorm:"not null;default:0" json:"stock"`
	Category  *string        `gorm:"type:varchar(100);index" json:"category"`
	Price     *float64       `json:"price"`
	UpdatedAt time.Time      `gorm:"index;not null" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relasi
	Sales         []Sale         `gorm:"constraint:OnDelete:RESTRICT;" json:"sales,omitempty"`
	InventoryLogs []InventoryLog `gorm:"constraint:OnDelete:RESTRICT;" json:"inventory_logs,omitempty"`
}

// NewProduct builds a product row from its explicit fields.
func NewProduct(name string, stock int, category *string, price *float64) *Product {
	return &Product{
		Name:     name,
		Stock:    stock,
		Category: category,
		Price:    price,
	}
}

// IsLowStock reports whether the stock is strictly below threshold.
func (p *Product) IsLowStock(threshold int) bool {
	return p.Stock < threshold
}
