package repository

import (
	"context"
	"time"

	"ecommerce-admin/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	Create(ctx context.Context, tx *gorm.DB, sale *model.Sale) error
	FindAll(ctx context.Context, filter SaleFilter) ([]model.Sale, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	EachRevenueRow(ctx context.Context, filter SaleFilter, fn func(RevenueRow) error) error
	Summarize(ctx context.Context, filter SaleFilter) ([]SalesSummaryRow, error)
}

// RevenueRow is the slice of a sale the revenue reports need.
type RevenueRow struct {
	CreatedAt     time.Time
	MediumOfSales string
	TotalPrice    *float64
}

// SalesSummaryRow aggregates the sales of one (product, medium) pair.
type SalesSummaryRow struct {
	ProductID     uuid.UUID `json:"product_id"`
	MediumOfSales string    `json:"medium_of_sales"`
	TotalRevenue  float64   `json:"total_revenue"`
	TotalSales    int64     `json:"total_sales"`
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) Create(ctx context.Context, tx *gorm.DB, sale *model.Sale) error {
	return translate(tx.WithContext(ctx).Create(sale).Error, "product not found", "failed to create sale")
}

func (r *saleRepo) FindAll(ctx context.Context, filter SaleFilter) ([]model.Sale, error) {
	var sales []model.Sale
	err := filter.apply(r.db.WithContext(ctx)).Order("created_at ASC").Find(&sales).Error
	return sales, translate(err, "", "failed to list sales")
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	if err := r.db.WithContext(ctx).First(&sale, "id = ?", id).Error; err != nil {
		return nil, translate(err, "sale not found", "failed to load sale")
	}
	return &sale, nil
}

// EachRevenueRow streams matching sales ordered by creation time, one row at a time.
func (r *saleRepo) EachRevenueRow(ctx context.Context, filter SaleFilter, fn func(RevenueRow) error) error {
	rows, err := filter.apply(r.db.WithContext(ctx).Model(&model.Sale{})).
		Select("created_at, medium_of_sales, total_price").
		Order("created_at ASC").
		Rows()
	if err != nil {
		return translate(err, "", "failed to query sales")
	}
	defer rows.Close()

	for rows.Next() {
		var row RevenueRow
		if err := r.db.ScanRows(rows, &row); err != nil {
			return translate(err, "", "failed to scan sale row")
		}
		if err := fn(row); err != nil {
			return err
		}
	}

	return translate(rows.Err(), "", "failed to iterate sales")
}

func (r *saleRepo) Summarize(ctx context.Context, filter SaleFilter) ([]SalesSummaryRow, error) {
	results := []SalesSummaryRow{}

	err := filter.apply(r.db.WithContext(ctx).Model(&model.Sale{})).
		Select(`
			product_id,
			medium_of_sales,
			COALESCE(SUM(total_price), 0) as total_revenue,
			COUNT(id) as total_sales
		`).
		Group("product_id, medium_of_sales").
		Order("product_id ASC, medium_of_sales ASC").
		Scan(&results).Error
	if err != nil {
		return nil, translate(err, "", "failed to summarize sales")
	}

	return results, nil
}
