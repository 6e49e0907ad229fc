package service

import (
	"context"
	"sync"
	"testing"

	"ecommerce-admin/internal/model"
	"ecommerce-admin/internal/repository"
	"ecommerce-admin/internal/testutil"
	"ecommerce-admin/pkg/clock"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []model.StockEvent
}

func (r *recordingPublisher) Publish(_ context.Context, event model.StockEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingPublisher) Events() []model.StockEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.StockEvent(nil), r.events...)
}

type fixture struct {
	db       *gorm.DB
	clock    *clock.MockClock
	events   *recordingPublisher
	products ProductService
	ledger   LedgerService
	reports  ReportService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, clk := testutil.NewTestDB(t)
	events := &recordingPublisher{}
	logger := zap.NewNop()

	productRepo := repository.NewProductRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	logRepo := repository.NewInventoryLogRepo(db)

	return &fixture{
		db:       db,
		clock:    clk,
		events:   events,
		products: NewProductService(db, productRepo, logRepo, events, logger),
		ledger:   NewLedgerService(db, productRepo, saleRepo, logRepo, events, clk, logger),
		reports:  NewReportService(productRepo, saleRepo, 5),
	}
}

func (f *fixture) countRows(t *testing.T, m interface{}) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(m).Count(&n).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	return n
}

func intPtr(v int) *int {
	return &v
}
