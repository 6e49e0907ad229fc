package main

import (
	"context"
	"log"
	"time"

	"ecommerce-admin/internal/config"
	"ecommerce-admin/internal/eventbus"
	"ecommerce-admin/internal/model"
	"ecommerce-admin/internal/repository"
	"ecommerce-admin/internal/service"
	"ecommerce-admin/pkg/clock"
	"ecommerce-admin/pkg/database"
	"ecommerce-admin/pkg/logger"

	"go.uber.org/zap"
)

type sampleProduct struct {
	name     string
	stock    int
	category string
	price    float64
}

var sampleProducts = []sampleProduct{
	{"Amazon Echo Dot", 100, "Electronics", 49.99},
	{"Walmart Smart TV", 50, "Electronics", 299.99},
	{"Amazon Basics Microwave", 75, "Home Appliances", 89.99},
	{"Walmart Office Chair", 30, "Furniture", 129.99},
}

// Sales per product, one per day ending today.
const (
	salesPerProduct = 3
	saleQuantity    = 2
)

func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	// 2. Setup Database. The seed clock back-dates the sample history.
	now := time.Now().UTC()
	clk := clock.NewMockClock(now.AddDate(0, 0, -7))

	db, err := database.Connect(cfg.Database, clk)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	if err := model.Migrate(db); err != nil {
		zapLogger.Fatal("migrating schema", zap.Error(err))
	}

	ctx := context.Background()
	productRepo := repository.NewProductRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	logRepo := repository.NewInventoryLogRepo(db)
	events := eventbus.NewNopPublisher()

	productService := service.NewProductService(db, productRepo, logRepo, events, zapLogger)
	ledgerService := service.NewLedgerService(db, productRepo, saleRepo, logRepo, events, clk, zapLogger)

	existing, err := productService.ListProducts(ctx)
	if err != nil {
		zapLogger.Fatal("checking existing products", zap.Error(err))
	}
	if len(existing) > 0 {
		zapLogger.Info("products already present, skipping seed", zap.Int("products", len(existing)))
		return
	}

	// 3. Products, with their opening inventory logs
	products := make([]*model.Product, 0, len(sampleProducts))
	for _, sp := range sampleProducts {
		category, price := sp.category, sp.price
		p, err := productService.CreateProduct(ctx, &service.CreateProductRequest{
			Name:     sp.name,
			Stock:    sp.stock,
			Category: &category,
			Price:    &price,
		})
		if err != nil {
			zapLogger.Fatal("creating product", zap.String("name", sp.name), zap.Error(err))
		}
		products = append(products, p)
	}

	// 4. Sales, oldest first
	for day := salesPerProduct - 1; day >= 0; day-- {
		clk.Set(now.AddDate(0, 0, -day))
		for _, p := range products {
			total := *p.Price * saleQuantity
			if _, err := ledgerService.RecordSale(ctx, &service.RecordSaleRequest{
				ProductID:     p.ID,
				Quantity:      saleQuantity,
				MediumOfSales: "Online",
				TotalPrice:    &total,
			}); err != nil {
				zapLogger.Fatal("recording sale", zap.String("product", p.Name), zap.Error(err))
			}
		}
	}

	zapLogger.Info("sample data inserted",
		zap.Int("products", len(products)),
		zap.Int("sales", len(products)*salesPerProduct))
}
