package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel carries the generated ID and the creation timestamp shared by every table.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index;not null" json:"createdAt"`
}

// Hook Before Create: generate the UUID unless the caller already set one.
func (base *BaseModel) BeforeCreate(tx *gorm.DB) (err error) {
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	return
}

// Migrate creates or updates the products, sales and inventory_logs tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Product{}, &Sale{}, &InventoryLog{})
}
