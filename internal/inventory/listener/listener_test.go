package listener

import (
	"context"
	"errors"
	"testing"

	"github.com/bharatsutharx/radiology-center-2/internal/inventory"
	"github.com/bharatsutharx/radiology-center-2/internal/inventory/dto"
	"github.com/bharatsutharx/radiology-center-2/internal/model"
	"github.com/bharatsutharx/radiology-center-2/internal/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUseCase struct {
	inventory.UseCase
	adjusted []dto.AdjustStockInput
	err      error
}

func (f *fakeUseCase) AdjustStock(_ context.Context, input *dto.AdjustStockInput) (*model.InventoryItem, error) {
	f.adjusted = append(f.adjusted, *input)
	return &model.InventoryItem{ID: input.ID}, f.err
}

func TestProcessMessage_RemovesConsumedStock(t *testing.T) {
	uc := &fakeUseCase{}
	l := NewSupplyListener(nil, uc, logger.NewNop())

	l.processMessage(context.Background(), []byte(`{
		"event_id": "e1",
		"event_type": "SupplyConsumed",
		"payload": {
			"procedure_id": "CT-1042",
			"items": [
				{"item_id": 1, "quantity": 2},
				{"item_id": 3, "quantity": 0},
				{"item_id": 4, "quantity": 1}
			]
		}
	}`))

	require.Len(t, uc.adjusted, 2)
	assert.Equal(t, int64(1), uc.adjusted[0].ID)
	assert.Equal(t, dto.AdjustRemove, uc.adjusted[0].Action)
	assert.Equal(t, 2, uc.adjusted[0].Amount)
	assert.Equal(t, "Used in procedure CT-1042", uc.adjusted[0].Reason)
	assert.Equal(t, "system", uc.adjusted[0].UpdatedBy)
	assert.Equal(t, int64(4), uc.adjusted[1].ID)
}

func TestProcessMessage_KeepsGivenReasonAndActor(t *testing.T) {
	uc := &fakeUseCase{err: errors.New("item gone")}
	l := NewSupplyListener(nil, uc, logger.NewNop())

	l.processMessage(context.Background(), []byte(`{"event_type":"SupplyConsumed","payload":{"procedure_id":"MR-7","consumed_by":"Rajesh Kumar","reason":"Contrast study","items":[{"item_id":1,"quantity":1},{"item_id":2,"quantity":1}]}}`))

	require.Len(t, uc.adjusted, 2)
	assert.Equal(t, "Contrast study", uc.adjusted[0].Reason)
	assert.Equal(t, "Rajesh Kumar", uc.adjusted[0].UpdatedBy)
}

func TestProcessMessage_IgnoresOtherEvents(t *testing.T) {
	uc := &fakeUseCase{}
	l := NewSupplyListener(nil, uc, logger.NewNop())

	l.processMessage(context.Background(), []byte(`{"event_type":"ProcedureScheduled","payload":{"items":[{"item_id":1,"quantity":1}]}}`))
	l.processMessage(context.Background(), []byte(`not json`))

	assert.Empty(t, uc.adjusted)
}

type scriptedReader struct {
	msgs   []kafka.Message
	cancel context.CancelFunc
}

func (r *scriptedReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.msgs) == 0 {
		r.cancel()
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	msg := r.msgs[0]
	r.msgs = r.msgs[1:]
	return msg, nil
}

func TestStart_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &scriptedReader{
		msgs:   []kafka.Message{{Value: []byte(`{"event_type":"SupplyConsumed","payload":{"items":[{"item_id":5,"quantity":3}]}}`)}},
		cancel: cancel,
	}
	uc := &fakeUseCase{}
	NewSupplyListener(reader, uc, logger.NewNop()).Start(ctx)

	require.Len(t, uc.adjusted, 1)
	assert.Equal(t, 3, uc.adjusted[0].Amount)
}
