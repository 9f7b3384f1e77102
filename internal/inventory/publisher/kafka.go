package publisher

import (
	"context"
	"strconv"

	"github.com/bharatsutharx/radiology-center-2/internal/inventory"
)

type jsonProducer interface {
	PublishJSON(ctx context.Context, key string, v interface{}) error
}

// KafkaPublisher writes stock events keyed by item id so every change to one
// item lands on the same partition.
type KafkaPublisher struct {
	producer jsonProducer
}

func NewKafkaPublisher(producer jsonProducer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

func (p *KafkaPublisher) PublishStockChanged(ctx context.Context, event *inventory.StockChangedEvent) error {
	return p.producer.PublishJSON(ctx, strconv.FormatInt(event.Payload.ItemID, 10), event)
}
