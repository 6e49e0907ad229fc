package database

import (
	"strings"
	"testing"
	"time"

	"ecommerce-admin/internal/config"
	"ecommerce-admin/pkg/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestDialector_SelectsDriver(t *testing.T) {
	for _, tc := range []struct {
		driver string
		name   string
	}{
		{DriverPostgres, "postgres"},
		{DriverMySQL, "mysql"},
		{DriverSQLite, "sqlite"},
	} {
		d, err := Dialector(config.DatabaseConfig{Driver: tc.driver, Name: "shop"})
		require.NoError(t, err, tc.driver)
		assert.Equal(t, tc.name, d.Name())
	}
}

func TestDialector_UnknownDriver(t *testing.T) {
	_, err := Dialector(config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestMySQLDSN_FromFields(t *testing.T) {
	dsn := mysqlDSN(config.DatabaseConfig{
		Host: "db", Port: 3306, User: "root", Password: "pw", Name: "ecommerce_admin_api_db",
	})

	assert.True(t, strings.HasPrefix(dsn, "root:pw@tcp(db:3306)/ecommerce_admin_api_db"))
	assert.Contains(t, dsn, "parseTime=true")
}

func TestPostgresDSN_URLWins(t *testing.T) {
	dsn := postgresDSN(config.DatabaseConfig{URL: "postgres://u:p@h/db", Host: "ignored"})
	assert.Equal(t, "postgres://u:p@h/db", dsn)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logger.Info, parseLogLevel("INFO"))
	assert.Equal(t, logger.Silent, parseLogLevel("silent"))
	assert.Equal(t, logger.Warn, parseLogLevel("whatever"))
}

func TestConnect_SQLiteInMemory(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	db, err := Connect(config.DatabaseConfig{
		Driver:   DriverSQLite,
		URL:      "file:connect_test?mode=memory&cache=shared",
		LogLevel: "silent",
	}, clk)
	require.NoError(t, err)

	assert.Equal(t, clk.Now(), db.NowFunc())
}
