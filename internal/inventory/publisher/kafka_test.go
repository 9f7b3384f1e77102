package publisher

import (
	"context"
	"testing"

	"github.com/bharatsutharx/radiology-center-2/internal/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingProducer struct {
	key   string
	value interface{}
}

func (p *capturingProducer) PublishJSON(_ context.Context, key string, v interface{}) error {
	p.key, p.value = key, v
	return nil
}

func TestKafkaPublisher_KeysByItem(t *testing.T) {
	producer := &capturingProducer{}
	event := &inventory.StockChangedEvent{
		EventID:   "e1",
		EventType: inventory.EventStockChanged,
		Payload:   inventory.StockChangedBody{ItemID: 42, Action: "removed", Quantity: 2},
	}

	require.NoError(t, NewKafkaPublisher(producer).PublishStockChanged(context.Background(), event))
	assert.Equal(t, "42", producer.key)
	assert.Same(t, event, producer.value)
}
