package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bharatsutharx/radiology-center-2/internal/inventory"
	"github.com/bharatsutharx/radiology-center-2/internal/inventory/dto"
	"github.com/bharatsutharx/radiology-center-2/internal/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const EventSupplyConsumed = "SupplyConsumed"

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type SupplyListener struct {
	consumer MessageReader
	uc       inventory.UseCase
	logger   logger.ZapLogger
}

func NewSupplyListener(consumer MessageReader, uc inventory.UseCase, logger logger.ZapLogger) *SupplyListener {
	return &SupplyListener{
		consumer: consumer,
		uc:       uc,
		logger:   logger,
	}
}

func (l *SupplyListener) Start(ctx context.Context) {
	l.logger.Info("Starting supply usage listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping supply usage listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

// SupplyConsumedEvent is published by the imaging rooms when a procedure
// used up stock.
type SupplyConsumedEvent struct {
	EventID   string                `json:"event_id"`
	EventType string                `json:"event_type"`
	Payload   SupplyConsumedPayload `json:"payload"`
	Timestamp time.Time             `json:"timestamp"`
}

type SupplyConsumedPayload struct {
	ProcedureID string         `json:"procedure_id"`
	ConsumedBy  string         `json:"consumed_by"`
	Reason      string         `json:"reason"`
	Items       []SupplyAmount `json:"items"`
}

type SupplyAmount struct {
	ItemID   int64 `json:"item_id"`
	Quantity int   `json:"quantity"`
}

func (l *SupplyListener) processMessage(ctx context.Context, value []byte) {
	var event SupplyConsumedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	if event.EventType != EventSupplyConsumed {
		return
	}

	l.logger.Info("Processing SupplyConsumed event",
		zap.String("event_id", event.EventID),
		zap.String("procedure_id", event.Payload.ProcedureID),
	)

	reason := event.Payload.Reason
	if reason == "" {
		reason = "Used in procedure " + event.Payload.ProcedureID
	}
	actor := event.Payload.ConsumedBy
	if actor == "" {
		actor = "system"
	}

	for _, item := range event.Payload.Items {
		if item.Quantity <= 0 {
			continue
		}
		input := &dto.AdjustStockInput{
			ID:        item.ItemID,
			Action:    dto.AdjustRemove,
			Amount:    item.Quantity,
			Reason:    reason,
			UpdatedBy: actor,
		}

		if _, err := l.uc.AdjustStock(ctx, input); err != nil {
			l.logger.Error("Failed to remove consumed stock",
				zap.String("procedure_id", event.Payload.ProcedureID),
				zap.Int64("item_id", item.ItemID),
				zap.Error(err),
			)
		}
	}
}
