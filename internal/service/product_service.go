package service

import (
	"context"

	"ecommerce-admin/internal/eventbus"
	"ecommerce-admin/internal/model"
	"ecommerce-admin/internal/repository"
	"ecommerce-admin/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *CreateProductRequest) (*model.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *UpdateProductRequest) (*model.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type CreateProductRequest struct {
	Name     string   `json:"name" validate:"required,notblank,max=255"`
	Stock    int      `json:"stock" validate:"gte=0"`
	Category *string  `json:"category" validate:"omitempty,max=100"`
	Price    *float64 `json:"price" validate:"omitempty,gte=0"`
}

// UpdateProductRequest replaces name, category and price. A non-nil Stock that
// differs from the current value goes through the inventory log like any other
// direct stock edit.
type UpdateProductRequest struct {
	Name     string   `json:"name" validate:"required,notblank,max=255"`
	Stock    *int     `json:"stock" validate:"omitempty,gte=0"`
	Category *string  `json:"category" validate:"omitempty,max=100"`
	Price    *float64 `json:"price" validate:"omitempty,gte=0"`
}

type productService struct {
	db          *gorm.DB
	productRepo repository.ProductRepository
	logRepo     repository.InventoryLogRepository
	events      eventbus.Publisher
	logger      *zap.Logger
}

func NewProductService(
	db *gorm.DB,
	pRepo repository.ProductRepository,
	lRepo repository.InventoryLogRepository,
	events eventbus.Publisher,
	logger *zap.Logger,
) ProductService {
	return &productService{
		db:          db,
		productRepo: pRepo,
		logRepo:     lRepo,
		events:      events,
		logger:      logger,
	}
}

func (s *productService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*model.Product, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	product := model.NewProduct(req.Name, req.Stock, req.Category, req.Price)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.productRepo.Create(ctx, tx, product); err != nil {
			return err
		}
		if product.Stock == 0 {
			return nil
		}
		// Opening stock is logged as a change from zero.
		opening := model.NewInventoryLog(product.ID, 0, product.Stock, product.CreatedAt)
		return s.logRepo.Create(ctx, tx, opening)
	})
	if err != nil {
		return nil, txError(err, "failed to create product")
	}

	s.logger.Info("product created",
		zap.String("productId", product.ID.String()),
		zap.String("name", product.Name),
		zap.Int("stock", product.Stock))

	publish(ctx, s.events, s.logger, model.StockEvent{
		Type:        model.EventProductCreated,
		ProductID:   product.ID,
		ProductName: product.Name,
		NewStock:    product.Stock,
		OccurredAt:  product.CreatedAt,
	})

	return product, nil
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

func (s *productService) ListProducts(ctx context.Context) ([]model.Product, error) {
	return s.productRepo.FindAll(ctx)
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, req *UpdateProductRequest) (*model.Product, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	var (
		updated *model.Product
		entry   *model.InventoryLog
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.productRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		existing.Name = req.Name
		existing.Category = req.Category
		existing.Price = req.Price
		if err := s.productRepo.UpdateDetails(ctx, tx, existing); err != nil {
			return err
		}

		if req.Stock != nil && *req.Stock != existing.Stock {
			entry, err = writeStockAdjustment(ctx, tx, s.productRepo, s.logRepo, existing, *req.Stock)
			if err != nil {
				return err
			}
		}

		updated = existing
		return nil
	})
	if err != nil {
		return nil, txError(err, "failed to update product")
	}

	s.logger.Info("product updated", zap.String("productId", updated.ID.String()))

	if entry != nil {
		publish(ctx, s.events, s.logger, model.StockEvent{
			Type:          model.EventProductUpdated,
			ProductID:     updated.ID,
			ProductName:   updated.Name,
			PreviousStock: entry.PreviousStock,
			NewStock:      entry.NewStock,
			ReferenceID:   &entry.ID,
			OccurredAt:    entry.CreatedAt,
		})
	}

	return updated, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("product deleted", zap.String("productId", id.String()))
	return nil
}
