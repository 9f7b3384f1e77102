package inventory

import (
	"context"
	"time"
)

const EventStockChanged = "InventoryStockChanged"

// StockChangedEvent is emitted after a quantity change was recorded.
type StockChangedEvent struct {
	EventID   string           `json:"event_id"`
	EventType string           `json:"event_type"`
	Payload   StockChangedBody `json:"payload"`
	Timestamp time.Time        `json:"timestamp"`
}

type StockChangedBody struct {
	ItemID           int64  `json:"item_id"`
	Name             string `json:"name"`
	Action           string `json:"action"`
	Quantity         int    `json:"quantity"`
	PreviousQuantity int    `json:"previous_quantity"`
	NewQuantity      int    `json:"new_quantity"`
	Status           string `json:"status"`
	Reason           string `json:"reason"`
	UpdatedBy        string `json:"updated_by"`
}

type EventPublisher interface {
	PublishStockChanged(ctx context.Context, event *StockChangedEvent) error
}

// NopPublisher drops events; used when Kafka is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishStockChanged(context.Context, *StockChangedEvent) error { return nil }
