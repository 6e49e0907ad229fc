package model

import (
	"time"

	"github.com/google/uuid"
)

type StockEventType string

const (
	EventProductCreated    StockEventType = "product_created"
	EventProductUpdated    StockEventType = "product_updated"
	EventSaleRecorded      StockEventType = "sale_recorded"
	EventInventoryAdjusted StockEventType = "inventory_adjusted"
)

// StockEvent describes a committed stock change. It is published after the
// transaction commits and never drives any write.
type StockEvent struct {
	Type          StockEventType `json:"type"`
	ProductID     uuid.UUID      `json:"product_id"`
	ProductName   string         `json:"product_name"`
	PreviousStock int            `json:"previous_stock"`
	NewStock      int            `json:"new_stock"`
	Quantity      int            `json:"quantity,omitempty"`
	ReferenceID   *uuid.UUID     `json:"reference_id,omitempty"` // sale or inventory log id
	OccurredAt    time.Time      `json:"occurred_at"`
}

// RoutingKey is the broker topic for the event, e.g. "stock.sale_recorded".
func (e StockEvent) RoutingKey() string {
	return "stock." + string(e.Type)
}
