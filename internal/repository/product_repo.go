package repository

import (
	"context"

	"ecommerce-admin/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Create(ctx context.Context, tx *gorm.DB, product *model.Product) error
	FindAll(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	UpdateDetails(ctx context.Context, tx *gorm.DB, product *model.Product) error
	UpdateStock(ctx context.Context, tx *gorm.DB, product *model.Product, newStock int) error
	DecrementStock(ctx context.Context, tx *gorm.DB, product *model.Product, quantity int) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(ctx context.Context, tx *gorm.DB, product *model.Product) error {
	return translate(tx.WithContext(ctx).Create(product).Error, "product not found", "failed to create product")
}

func (r *productRepo) FindAll(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&products).Error
	return products, translate(err, "", "failed to list products")
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, translate(err, "product not found", "failed to load product")
	}
	return &product, nil
}

// FindByIDForUpdate locks the product row (SELECT ... FOR UPDATE) for the rest of tx.
// Dialects without row locks (SQLite) serialise writers at the database level instead.
func (r *productRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "product not found", "failed to lock product")
	}
	return &product, nil
}

// UpdateDetails writes name, category and price. Stock is never touched here.
func (r *productRepo) UpdateDetails(ctx context.Context, tx *gorm.DB, product *model.Product) error {
	now := tx.NowFunc()
	err := tx.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"name":       product.Name,
			"category":   product.Category,
			"price":      product.Price,
			"updated_at": now,
		}).Error
	if err != nil {
		return translate(err, "product not found", "failed to update product")
	}
	product.UpdatedAt = now
	return nil
}

// UpdateStock menerima *gorm.DB (tx) agar bisa berjalan dalam transaksi
func (r *productRepo) UpdateStock(ctx context.Context, tx *gorm.DB, product *model.Product, newStock int) error {
	now := tx.NowFunc()
	err := tx.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"stock":      newStock,
			"updated_at": now,
		}).Error
	if err != nil {
		return translate(err, "product not found", "failed to update stock")
	}
	product.Stock = newStock
	product.UpdatedAt = now
	return nil
}

// DecrementStock subtracts quantity only while enough stock remains. It reports false,
// without writing, when the guard fails.
func (r *productRepo) DecrementStock(ctx context.Context, tx *gorm.DB, product *model.Product, quantity int) (bool, error) {
	now := tx.NowFunc()
	res := tx.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND stock >= ?", product.ID, quantity).
		Updates(map[string]interface{}{
			"stock":      gorm.Expr("stock - ?", quantity),
			"updated_at": now,
		})
	if res.Error != nil {
		return false, translate(res.Error, "product not found", "failed to decrement stock")
	}
	if res.RowsAffected != 1 {
		return false, nil
	}
	product.Stock -= quantity
	product.UpdatedAt = now
	return true, nil
}

// Delete soft-deletes the product; its sales and inventory logs stay intact.
func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "product not found", "failed to delete product")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "product not found", "")
	}
	return nil
}
