package service

import (
	"context"
	"errors"

	apperrors "ecommerce-admin/internal/errors"
	"ecommerce-admin/internal/eventbus"
	"ecommerce-admin/internal/model"
	"ecommerce-admin/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// writeStockAdjustment is the single place a direct stock edit happens. It must run
// inside tx on a product already locked by FindByIDForUpdate, and it always appends
// the audit row with the stock observed under that lock.
func writeStockAdjustment(
	ctx context.Context,
	tx *gorm.DB,
	products repository.ProductRepository,
	logs repository.InventoryLogRepository,
	product *model.Product,
	newStock int,
) (*model.InventoryLog, error) {
	entry := model.NewInventoryLog(product.ID, product.Stock, newStock, tx.NowFunc())
	if err := logs.Create(ctx, tx, entry); err != nil {
		return nil, err
	}
	if err := products.UpdateStock(ctx, tx, product, newStock); err != nil {
		return nil, err
	}
	return entry, nil
}

// txError keeps application errors raised inside a transaction closure and wraps
// anything else (begin/commit failures) as a store error.
func txError(err error, op string) error {
	if err == nil {
		return nil
	}
	var (
		nf  *apperrors.NotFoundError
		ise *apperrors.InsufficientStockError
		ve  *apperrors.ValidationError
		ie  *apperrors.InternalError
	)
	if errors.As(err, &nf) || errors.As(err, &ise) || errors.As(err, &ve) || errors.As(err, &ie) {
		return err
	}
	return apperrors.NewInternalError(op, err)
}

// publish hands a committed event to the bus. Failures are logged, never returned:
// the write they describe has already committed.
func publish(ctx context.Context, bus eventbus.Publisher, logger *zap.Logger, event model.StockEvent) {
	if bus == nil {
		return
	}
	if err := bus.Publish(ctx, event); err != nil {
		logger.Warn("failed to publish stock event",
			zap.String("type", string(event.Type)),
			zap.String("productId", event.ProductID.String()),
			zap.Error(err))
	}
}
