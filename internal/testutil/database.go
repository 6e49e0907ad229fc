package testutil

import (
	"fmt"
	"testing"
	"time"

	"ecommerce-admin/internal/config"
	"ecommerce-admin/internal/model"
	"ecommerce-admin/pkg/clock"
	"ecommerce-admin/pkg/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FixedTime is the instant every MockClock handed out by NewTestDB starts at.
var FixedTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// NewTestDB opens a private in-memory SQLite database with the schema migrated.
// The returned clock drives GORM's timestamps.
func NewTestDB(t *testing.T) (*gorm.DB, *clock.MockClock) {
	t.Helper()

	clk := clock.NewMockClock(FixedTime)
	db, err := database.Connect(config.DatabaseConfig{
		Driver:   database.DriverSQLite,
		URL:      fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString()),
		LogLevel: "silent",
	}, clk)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := model.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db, clk
}

// SeedProduct inserts a product directly, bypassing the services.
func SeedProduct(t *testing.T, db *gorm.DB, name string, stock int, price *float64) *model.Product {
	t.Helper()

	p := model.NewProduct(name, stock, nil, price)
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("failed to seed product %s: %v", name, err)
	}
	return p
}

// SeedSale inserts a sale row at createdAt without touching stock.
func SeedSale(t *testing.T, db *gorm.DB, productID uuid.UUID, medium string, totalPrice *float64, createdAt time.Time) *model.Sale {
	t.Helper()

	s := model.NewSale(productID, 1, medium, totalPrice, createdAt)
	if err := db.Create(s).Error; err != nil {
		t.Fatalf("failed to seed sale: %v", err)
	}
	return s
}

func Float(f float64) *float64 {
	return &f
}

func String(s string) *string {
	return &s
}
