package service

import (
	"context"

	apperrors "ecommerce-admin/internal/errors"
	"ecommerce-admin/internal/eventbus"
	"ecommerce-admin/internal/model"
	"ecommerce-admin/internal/repository"
	"ecommerce-admin/pkg/clock"
	"ecommerce-admin/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LedgerService interface {
	RecordSale(ctx context.Context, req *RecordSaleRequest) (*model.Sale, error)
	AdjustInventory(ctx context.Context, req *AdjustInventoryRequest) (*model.InventoryLog, error)
	GetSale(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	ListSales(ctx context.Context, filter repository.SaleFilter) ([]model.Sale, error)
	GetInventoryLog(ctx context.Context, id uuid.UUID) (*model.InventoryLog, error)
	ListInventoryLogs(ctx context.Context, productID *uuid.UUID) ([]model.InventoryLog, error)
}

type RecordSaleRequest struct {
	ProductID     uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity      int       `json:"quantity" validate:"gt=0"`
	MediumOfSales string    `json:"medium_of_sales" validate:"required,notblank,max=100"`
	TotalPrice    *float64  `json:"total_price" validate:"omitempty,gte=0"`
}

// AdjustInventoryRequest sets a product's stock to NewStock. The previous stock is
// always read from the locked product row.
type AdjustInventoryRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	NewStock  *int      `json:"new_stock" validate:"required,gte=0"`
}

type ledgerService struct {
	db          *gorm.DB
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	logRepo     repository.InventoryLogRepository
	events      eventbus.Publisher
	clock       clock.Clock
	logger      *zap.Logger
}

func NewLedgerService(
	db *gorm.DB,
	pRepo repository.ProductRepository,
	sRepo repository.SaleRepository,
	lRepo repository.InventoryLogRepository,
	events eventbus.Publisher,
	clk clock.Clock,
	logger *zap.Logger,
) LedgerService {
	return &ledgerService{
		db:          db,
		productRepo: pRepo,
		saleRepo:    sRepo,
		logRepo:     lRepo,
		events:      events,
		clock:       clk,
		logger:      logger,
	}
}

func (s *ledgerService) RecordSale(ctx context.Context, req *RecordSaleRequest) (*model.Sale, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	var (
		sale          *model.Sale
		product       *model.Product
		previousStock int
	)

	// Lock, check, decrement and insert in one transaction; any error rolls all of it back.
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := s.productRepo.FindByIDForUpdate(ctx, tx, req.ProductID)
		if err != nil {
			return err
		}

		if p.Stock < req.Quantity {
			return apperrors.NewInsufficientStockError(p.ID.String(), req.Quantity, p.Stock)
		}
		previousStock = p.Stock

		ok, err := s.productRepo.DecrementStock(ctx, tx, p, req.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.NewInsufficientStockError(p.ID.String(), req.Quantity, p.Stock)
		}

		sale = model.NewSale(p.ID, req.Quantity, req.MediumOfSales, req.TotalPrice, s.clock.Now())
		if err := s.saleRepo.Create(ctx, tx, sale); err != nil {
			return err
		}

		product = p
		return nil
	})
	if err != nil {
		s.logger.Warn("sale rejected",
			zap.String("productId", req.ProductID.String()),
			zap.Int("quantity", req.Quantity),
			zap.Error(err))
		return nil, txError(err, "failed to record sale")
	}

	s.logger.Info("sale recorded",
		zap.String("saleId", sale.ID.String()),
		zap.String("productId", product.ID.String()),
		zap.Int("quantity", sale.Quantity),
		zap.Int("newStock", product.Stock))

	publish(ctx, s.events, s.logger, model.StockEvent{
		Type:          model.EventSaleRecorded,
		ProductID:     product.ID,
		ProductName:   product.Name,
		PreviousStock: previousStock,
		NewStock:      product.Stock,
		Quantity:      sale.Quantity,
		ReferenceID:   &sale.ID,
		OccurredAt:    sale.CreatedAt,
	})

	return sale, nil
}

func (s *ledgerService) AdjustInventory(ctx context.Context, req *AdjustInventoryRequest) (*model.InventoryLog, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	var (
		entry   *model.InventoryLog
		product *model.Product
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := s.productRepo.FindByIDForUpdate(ctx, tx, req.ProductID)
		if err != nil {
			return err
		}

		entry, err = writeStockAdjustment(ctx, tx, s.productRepo, s.logRepo, p, *req.NewStock)
		if err != nil {
			return err
		}

		product = p
		return nil
	})
	if err != nil {
		s.logger.Warn("inventory adjustment rejected",
			zap.String("productId", req.ProductID.String()),
			zap.Error(err))
		return nil, txError(err, "failed to adjust inventory")
	}

	s.logger.Info("inventory adjusted",
		zap.String("logId", entry.ID.String()),
		zap.String("productId", product.ID.String()),
		zap.Int("previousStock", entry.PreviousStock),
		zap.Int("newStock", entry.NewStock))

	publish(ctx, s.events, s.logger, model.StockEvent{
		Type:          model.EventInventoryAdjusted,
		ProductID:     product.ID,
		ProductName:   product.Name,
		PreviousStock: entry.PreviousStock,
		NewStock:      entry.NewStock,
		ReferenceID:   &entry.ID,
		OccurredAt:    entry.CreatedAt,
	})

	return entry, nil
}

func (s *ledgerService) GetSale(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	return s.saleRepo.FindByID(ctx, id)
}

func (s *ledgerService) ListSales(ctx context.Context, filter repository.SaleFilter) ([]model.Sale, error) {
	if err := validateRange(filter); err != nil {
		return nil, err
	}
	return s.saleRepo.FindAll(ctx, filter)
}

func (s *ledgerService) GetInventoryLog(ctx context.Context, id uuid.UUID) (*model.InventoryLog, error) {
	return s.logRepo.FindByID(ctx, id)
}

func (s *ledgerService) ListInventoryLogs(ctx context.Context, productID *uuid.UUID) ([]model.InventoryLog, error) {
	return s.logRepo.FindAll(ctx, productID)
}

func validateRange(filter repository.SaleFilter) error {
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.After(*filter.EndDate) {
		return apperrors.NewValidationError("start_date must not be after end_date",
			apperrors.ValidationDetail{Field: "start_date", Message: "must not be after end_date"})
	}
	return nil
}
