package service

import (
	"context"
	"sync"
	"testing"
	"time"

	apperrors "ecommerce-admin/internal/errors"
	"ecommerce-admin/internal/model"
	"ecommerce-admin/internal/repository"
	"ecommerce-admin/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSale_DecrementsStockAndInsertsSale(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := testutil.SeedProduct(t, f.db, "Amazon Echo Dot", 100, testutil.Float(49.99))

	sale, err := f.ledger.RecordSale(ctx, &RecordSaleRequest{
		ProductID:     p.ID,
		Quantity:      2,
		MediumOfSales: "Online",
		TotalPrice:    testutil.Float(99.98),
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, sale.ID)
	assert.True(t, testutil.FixedTime.Equal(sale.CreatedAt))
	assert.Equal(t, 2, sale.Quantity)

	reloaded, err := f.products.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 98, reloaded.Stock)

	stored, err := f.ledger.GetSale(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, "Online", stored.MediumOfSales)
	require.NotNil(t, stored.TotalPrice)
	assert.InDelta(t, 99.98, *stored.TotalPrice, 0.0001)

	events := f.events.Events()
	require.Len(t, events, 1)
	assert.Equal(t, model.EventSaleRecorded, events[0].Type)
	assert.Equal(t, 100, events[0].PreviousStock)
	assert.Equal(t, 98, events[0].NewStock)
}

func TestRecordSale_ExactStockIsAllowed(t *testing.T) {
	f := newFixture(t)
	p := testutil.SeedProduct(t, f.db, "Office Chair", 3, nil)

	_, err := f.ledger.RecordSale(context.Background(), &RecordSaleRequest{ProductID: p.ID, Quantity: 3, MediumOfSales: "Store"})
	require.NoError(t, err)

	reloaded, err := f.products.GetProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.Stock)
}

func TestRecordSale_InsufficientStockLeavesNoTrace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := testutil.SeedProduct(t, f.db, "Smart TV", 2, nil)

	sale, err := f.ledger.RecordSale(ctx, &RecordSaleRequest{ProductID: p.ID, Quantity: 3, MediumOfSales: "Online"})

	assert.Nil(t, sale)
	ise, ok := apperrors.IsInsufficientStockError(err)
	require.True(t, ok, "expected InsufficientStockError, got %v", err)
	assert.Equal(t, 3, ise.Requested)
	assert.Equal(t, 2, ise.Available)

	reloaded, err := f.products.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Stock)
	assert.Equal(t, int64(0), f.countRows(t, &model.Sale{}))
	assert.Empty(t, f.events.Events())
}

func TestRecordSale_UnknownProduct(t *testing.T) {
	f := newFixture(t)

	_, err := f.ledger.RecordSale(context.Background(), &RecordSaleRequest{ProductID: uuid.New(), Quantity: 1, MediumOfSales: "Online"})

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok, "expected NotFoundError, got %v", err)
	assert.Equal(t, int64(0), f.countRows(t, &model.Sale{}))
}

func TestRecordSale_DeletedProductIsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := testutil.SeedProduct(t, f.db, "Microwave", 10, nil)
	require.NoError(t, f.products.DeleteProduct(ctx, p.ID))

	_, err := f.ledger.RecordSale(ctx, &RecordSaleRequest{ProductID: p.ID, Quantity: 1, MediumOfSales: "Online"})

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestRecordSale_Validation(t *testing.T) {
	f := newFixture(t)
	p := testutil.SeedProduct(t, f.db, "Echo", 10, nil)

	for name, req := range map[string]*RecordSaleRequest{
		"zero quantity":     {ProductID: p.ID, Quantity: 0, MediumOfSales: "Online"},
		"negative quantity": {ProductID: p.ID, Quantity: -1, MediumOfSales: "Online"},
		"missing medium":    {ProductID: p.ID, Quantity: 1},
		"blank medium":      {ProductID: p.ID, Quantity: 1, MediumOfSales: "   "},
		"negative total":    {ProductID: p.ID, Quantity: 1, MediumOfSales: "Online", TotalPrice: testutil.Float(-1)},
		"missing product":   {Quantity: 1, MediumOfSales: "Online"},
	} {
		_, err := f.ledger.RecordSale(context.Background(), req)
		_, ok := apperrors.IsValidationError(err)
		assert.True(t, ok, "%s: expected ValidationError, got %v", name, err)
	}

	reloaded, err := f.products.GetProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, reloaded.Stock)
}

func TestRecordSale_ConcurrentSalesNeverOversell(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := testutil.SeedProduct(t, f.db, "Flash Deal", 5, nil)

	const buyers = 12
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.ledger.RecordSale(ctx, &RecordSaleRequest{ProductID: p.ID, Quantity: 1, MediumOfSales: "Online"})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
				return
			}
			if _, ok := apperrors.IsInsufficientStockError(err); ok {
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, succeeded)
	assert.Equal(t, buyers-5, rejected)

	reloaded, err := f.products.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.Stock)
	assert.Equal(t, int64(5), f.countRows(t, &model.Sale{}))
}

func TestAdjustInventory_LogsPreviousStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := testutil.SeedProduct(t, f.db, "Walmart Office Chair", 30, nil)

	f.clock.Advance(time.Hour)
	entry, err := f.ledger.AdjustInventory(ctx, &AdjustInventoryRequest{ProductID: p.ID, NewStock: intPtr(12)})
	require.NoError(t, err)

	assert.Equal(t, 30, entry.PreviousStock)
	assert.Equal(t, 12, entry.NewStock)
	assert.Equal(t, p.ID, entry.ProductID)

	reloaded, err := f.products.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, reloaded.Stock)
	assert.True(t, testutil.FixedTime.Add(time.Hour).Equal(reloaded.UpdatedAt))

	logs, err := f.ledger.ListInventoryLogs(ctx, &p.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entry.ID, logs[0].ID)

	stored, err := f.ledger.GetInventoryLog(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, stored.PreviousStock)
}

func TestAdjustInventory_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := testutil.SeedProduct(t, f.db, "Chair", 3, nil)

	_, err := f.ledger.AdjustInventory(ctx, &AdjustInventoryRequest{ProductID: uuid.New(), NewStock: intPtr(1)})
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)

	_, err = f.ledger.AdjustInventory(ctx, &AdjustInventoryRequest{ProductID: p.ID, NewStock: intPtr(-1)})
	_, ok = apperrors.IsValidationError(err)
	assert.True(t, ok)

	_, err = f.ledger.AdjustInventory(ctx, &AdjustInventoryRequest{ProductID: p.ID})
	_, ok = apperrors.IsValidationError(err)
	assert.True(t, ok)

	assert.Equal(t, int64(0), f.countRows(t, &model.InventoryLog{}))
}

// Stock always equals the last adjustment minus the sales recorded after it.
func TestLedger_StockFollowsOperationSequence(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := testutil.SeedProduct(t, f.db, "Echo", 10, nil)

	sell := func(q int) error {
		f.clock.Advance(time.Minute)
		_, err := f.ledger.RecordSale(ctx, &RecordSaleRequest{ProductID: p.ID, Quantity: q, MediumOfSales: "Online"})
		return err
	}
	adjust := func(n int) {
		f.clock.Advance(time.Minute)
		_, err := f.ledger.AdjustInventory(ctx, &AdjustInventoryRequest{ProductID: p.ID, NewStock: intPtr(n)})
		require.NoError(t, err)
	}

	require.NoError(t, sell(3)) // 7
	require.NoError(t, sell(4)) // 3
	require.Error(t, sell(4))   // rejected, still 3
	adjust(20)                  // 20
	require.NoError(t, sell(5)) // 15
	adjust(2)                   // 2
	require.NoError(t, sell(2)) // 0
	require.Error(t, sell(1))   // rejected

	reloaded, err := f.products.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.Stock)

	logs, err := f.ledger.ListInventoryLogs(ctx, &p.ID)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, 3, logs[0].PreviousStock)
	assert.Equal(t, 20, logs[0].NewStock)
	assert.Equal(t, 15, logs[1].PreviousStock)
	assert.Equal(t, 2, logs[1].NewStock)

	sales, err := f.ledger.ListSales(ctx, repository.SaleFilter{ProductID: &p.ID})
	require.NoError(t, err)
	assert.Len(t, sales, 4)
}

func TestListSales_DateFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := testutil.SeedProduct(t, f.db, "Echo", 10, nil)

	day := func(d int) time.Time { return time.Date(2024, 1, d, 10, 0, 0, 0, time.UTC) }
	testutil.SeedSale(t, f.db, p.ID, "Online", nil, day(1))
	testutil.SeedSale(t, f.db, p.ID, "Online", nil, day(2))
	testutil.SeedSale(t, f.db, p.ID, "Store", nil, day(3))

	all, err := f.ledger.ListSales(ctx, repository.SaleFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	start, end := day(2), day(3)
	ranged, err := f.ledger.ListSales(ctx, repository.SaleFilter{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	assert.Len(t, ranged, 2)

	_, err = f.ledger.ListSales(ctx, repository.SaleFilter{StartDate: &end, EndDate: &start})
	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestGetSale_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.ledger.GetSale(context.Background(), uuid.New())
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)

	_, err = f.ledger.GetInventoryLog(context.Background(), uuid.New())
	_, ok = apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}
