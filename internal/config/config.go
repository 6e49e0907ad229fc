package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppName  string
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
	Report   ReportConfig
	Events   EventsConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Driver          string // postgres, mysql or sqlite
	URL             string // full DSN, overrides the individual fields
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogLevel        string
}

type LogConfig struct {
	Level string
}

type ReportConfig struct {
	LowStockThreshold int
}

// EventsConfig controls where committed stock changes are published.
// An empty RabbitMQURL disables the broker publisher.
type EventsConfig struct {
	RabbitMQURL      string
	RabbitMQExchange string
}

// Load reads an optional .env file, then environment variables, falling back to defaults.
func Load() (*Config, error) {
	// A missing .env is fine, the process environment still applies.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_NAME", "E-commerce Admin API")
	v.SetDefault("PORT", 3000)
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "ecommerce_admin_api_db")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "1h")
	v.SetDefault("DB_LOG_LEVEL", "warn")

	v.SetDefault("LOW_STOCK_THRESHOLD", 5)

	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_EXCHANGE", "inventory.events")

	connMaxLifetime, err := time.ParseDuration(v.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, fmt.Errorf("parsing DB_CONN_MAX_LIFETIME: %w", err)
	}

	cfg := &Config{
		AppName: v.GetString("APP_NAME"),
		Server: ServerConfig{
			Port: v.GetInt("PORT"),
		},
		Database: DatabaseConfig{
			Driver:          v.GetString("DB_DRIVER"),
			URL:             v.GetString("DATABASE_URL"),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSL_MODE"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
			LogLevel:        v.GetString("DB_LOG_LEVEL"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Report: ReportConfig{
			LowStockThreshold: v.GetInt("LOW_STOCK_THRESHOLD"),
		},
		Events: EventsConfig{
			RabbitMQURL:      v.GetString("RABBITMQ_URL"),
			RabbitMQExchange: v.GetString("RABBITMQ_EXCHANGE"),
		},
	}

	if cfg.Report.LowStockThreshold < 0 {
		return nil, fmt.Errorf("LOW_STOCK_THRESHOLD must not be negative, got %d", cfg.Report.LowStockThreshold)
	}

	return cfg, nil
}
