package service

import (
	"context"
	"sort"

	apperrors "ecommerce-admin/internal/errors"
	"ecommerce-admin/internal/model"
	"ecommerce-admin/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ReportService interface {
	LowStockStatus(ctx context.Context, threshold *int) ([]LowStockEntry, error)
	RevenueByPeriod(ctx context.Context, period model.Period) ([]RevenuePoint, error)
	CompareRevenue(ctx context.Context, period model.Period, filter repository.SaleFilter) ([]MediumRevenuePoint, error)
	SalesSummary(ctx context.Context, filter repository.SaleFilter) ([]repository.SalesSummaryRow, error)
}

type LowStockEntry struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Stock     int       `json:"stock"`
	LowStock  bool      `json:"low_stock"`
}

type RevenuePoint struct {
	Period  string  `json:"period"`
	Revenue float64 `json:"revenue"`
}

type MediumRevenuePoint struct {
	Period        string  `json:"period"`
	MediumOfSales string  `json:"medium_of_sales"`
	Revenue       float64 `json:"revenue"`
}

type reportService struct {
	productRepo       repository.ProductRepository
	saleRepo          repository.SaleRepository
	lowStockThreshold int
}

func NewReportService(pRepo repository.ProductRepository, sRepo repository.SaleRepository, lowStockThreshold int) ReportService {
	return &reportService{
		productRepo:       pRepo,
		saleRepo:          sRepo,
		lowStockThreshold: lowStockThreshold,
	}
}

// LowStockStatus lists every product with low_stock = stock < threshold.
// A nil threshold uses the configured default.
func (s *reportService) LowStockStatus(ctx context.Context, threshold *int) ([]LowStockEntry, error) {
	limit := s.lowStockThreshold
	if threshold != nil {
		limit = *threshold
	}
	if limit < 0 {
		return nil, apperrors.NewValidationError("threshold must not be negative",
			apperrors.ValidationDetail{Field: "threshold", Message: "must be greater than or equal to 0"})
	}

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]LowStockEntry, 0, len(products))
	for i := range products {
		p := &products[i]
		result = append(result, LowStockEntry{
			ProductID: p.ID,
			Name:      p.Name,
			Stock:     p.Stock,
			LowStock:  p.IsLowStock(limit),
		})
	}
	return result, nil
}

func (s *reportService) RevenueByPeriod(ctx context.Context, period model.Period) ([]RevenuePoint, error) {
	totals := map[string]decimal.Decimal{}

	err := s.saleRepo.EachRevenueRow(ctx, repository.SaleFilter{}, func(row repository.RevenueRow) error {
		key := period.Key(row.CreatedAt)
		totals[key] = totals[key].Add(amount(row.TotalPrice))
		return nil
	})
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([]RevenuePoint, 0, len(keys))
	for _, k := range keys {
		result = append(result, RevenuePoint{Period: k, Revenue: totals[k].InexactFloat64()})
	}
	return result, nil
}

// CompareRevenue buckets like RevenueByPeriod and additionally splits each bucket by
// medium_of_sales. Rows are ordered by period, then medium.
func (s *reportService) CompareRevenue(ctx context.Context, period model.Period, filter repository.SaleFilter) ([]MediumRevenuePoint, error) {
	if err := validateRange(filter); err != nil {
		return nil, err
	}

	type bucket struct {
		period string
		medium string
	}
	totals := map[bucket]decimal.Decimal{}

	err := s.saleRepo.EachRevenueRow(ctx, filter, func(row repository.RevenueRow) error {
		b := bucket{period: period.Key(row.CreatedAt), medium: row.MediumOfSales}
		totals[b] = totals[b].Add(amount(row.TotalPrice))
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := make([]MediumRevenuePoint, 0, len(totals))
	for b, total := range totals {
		result = append(result, MediumRevenuePoint{
			Period:        b.period,
			MediumOfSales: b.medium,
			Revenue:       total.InexactFloat64(),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Period != result[j].Period {
			return result[i].Period < result[j].Period
		}
		return result[i].MediumOfSales < result[j].MediumOfSales
	})
	return result, nil
}

func (s *reportService) SalesSummary(ctx context.Context, filter repository.SaleFilter) ([]repository.SalesSummaryRow, error) {
	if err := validateRange(filter); err != nil {
		return nil, err
	}
	return s.saleRepo.Summarize(ctx, filter)
}

// amount treats a missing total_price as zero revenue.
func amount(totalPrice *float64) decimal.Decimal {
	if totalPrice == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*totalPrice)
}
