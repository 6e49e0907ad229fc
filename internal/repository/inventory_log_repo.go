package repository

import (
	"context"

	"ecommerce-admin/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryLogRepository only appends and reads; logs are never updated or deleted.
type InventoryLogRepository interface {
	Create(ctx context.Context, tx *gorm.DB, log *model.InventoryLog) error
	FindAll(ctx context.Context, productID *uuid.UUID) ([]model.InventoryLog, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryLog, error)
}

type inventoryLogRepo struct {
	db *gorm.DB
}

func NewInventoryLogRepo(db *gorm.DB) InventoryLogRepository {
	return &inventoryLogRepo{db}
}

func (r *inventoryLogRepo) Create(ctx context.Context, tx *gorm.DB, log *model.InventoryLog) error {
	return translate(tx.WithContext(ctx).Create(log).Error, "product not found", "failed to create inventory log")
}

func (r *inventoryLogRepo) FindAll(ctx context.Context, productID *uuid.UUID) ([]model.InventoryLog, error) {
	var logs []model.InventoryLog
	q := r.db.WithContext(ctx)
	if productID != nil {
		q = q.Where("product_id = ?", *productID)
	}
	err := q.Order("created_at ASC").Find(&logs).Error
	return logs, translate(err, "", "failed to list inventory logs")
}

func (r *inventoryLogRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryLog, error) {
	var log model.InventoryLog
	if err := r.db.WithContext(ctx).First(&log, "id = ?", id).Error; err != nil {
		return nil, translate(err, "inventory log not found", "failed to load inventory log")
	}
	return &log, nil
}
