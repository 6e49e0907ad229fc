package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ecommerce-admin/internal/config"
	"ecommerce-admin/internal/eventbus"
	"ecommerce-admin/internal/graphql"
	"ecommerce-admin/internal/handler"
	"ecommerce-admin/internal/middleware"
	"ecommerce-admin/internal/model"
	"ecommerce-admin/internal/repository"
	"ecommerce-admin/internal/service"
	"ecommerce-admin/internal/ws"
	"ecommerce-admin/pkg/clock"
	"ecommerce-admin/pkg/database"
	"ecommerce-admin/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
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

	// 2. Setup Database
	clk := clock.NewRealClock()
	db, err := database.Connect(cfg.Database, clk)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	// Auto Migrate (Hati-hati di production, sebaiknya pakai tools migrasi terpisah)
	if err := model.Migrate(db); err != nil {
		zapLogger.Fatal("migrating schema", zap.Error(err))
	}
	zapLogger.Info("database connected", zap.String("driver", cfg.Database.Driver))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Setup WebSocket Hub and event publishers
	wsHub := ws.NewHub(zapLogger)
	go wsHub.Run(ctx)

	events := eventbus.Fanout{wsHub}
	if cfg.Events.RabbitMQURL != "" {
		rmq, err := eventbus.NewRabbitMQPublisher(cfg.Events.RabbitMQURL, cfg.Events.RabbitMQExchange, zapLogger)
		if err != nil {
			zapLogger.Fatal("connecting to rabbitmq", zap.Error(err))
		}
		defer rmq.Close()
		events = append(events, rmq)
	}

	// 4. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	logRepo := repository.NewInventoryLogRepo(db)

	productService := service.NewProductService(db, productRepo, logRepo, events, zapLogger)
	ledgerService := service.NewLedgerService(db, productRepo, saleRepo, logRepo, events, clk, zapLogger)
	reportService := service.NewReportService(productRepo, saleRepo, cfg.Report.LowStockThreshold)

	schema, err := graphql.NewSchema(productService, ledgerService)
	if err != nil {
		zapLogger.Fatal("building graphql schema", zap.Error(err))
	}
	gqlHandler := graphql.NewHandler(schema)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: cfg.AppName,
	})

	// Middleware
	app.Use(recover.New())                       // Panic recovery
	app.Use(cors.New())                          // CORS
	app.Use(middleware.RequestLogger(zapLogger)) // Logging request

	// 6. Routes
	handler.Register(app, handler.Handlers{
		Health:    handler.NewHealthHandler(db, cfg.AppName),
		Product:   handler.NewProductHandler(productService),
		Sale:      handler.NewSaleHandler(ledgerService, reportService),
		Inventory: handler.NewInventoryHandler(ledgerService, reportService, zapLogger),
	})
	app.Get("/graphql", gqlHandler.Serve)
	app.Post("/graphql", gqlHandler.Serve)

	// WebSocket Route
	app.Use("/ws", ws.RequireUpgrade)
	app.Get("/ws", wsHub.Handler())

	// 7. Graceful Shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		zapLogger.Info("starting server", zap.String("addr", addr))
		if err := app.Listen(addr); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down server")
	cancel()
	<-wsHub.Done()
	wsDone := make(chan struct{})
	go func() {
		wsHub.Wait()
		close(wsDone)
	}()
	select {
	case <-wsDone:
	case <-time.After(5 * time.Second):
		zapLogger.Warn("websocket clients did not close in time")
	}
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zapLogger.Fatal("server forced to shutdown", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	zapLogger.Info("server exited")
}
