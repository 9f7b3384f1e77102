package usecase

import (
	"context"
	"time"

	"github.com/bharatsutharx/radiology-center-2/internal/inventory"
	"github.com/bharatsutharx/radiology-center-2/internal/inventory/dto"
	"github.com/bharatsutharx/radiology-center-2/internal/model"
	"github.com/bharatsutharx/radiology-center-2/internal/pkg/logger"
	"github.com/bharatsutharx/radiology-center-2/internal/seed"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type inventoryUseCase struct {
	repo      inventory.Repository
	publisher inventory.EventPublisher
	logger    logger.ZapLogger
	now       func() time.Time
}

func NewInventoryUseCase(repo inventory.Repository, publisher inventory.EventPublisher, log logger.ZapLogger) inventory.UseCase {
	if publisher == nil {
		publisher = inventory.NopPublisher{}
	}
	return &inventoryUseCase{
		repo:      repo,
		publisher: publisher,
		logger:    log,
		now:       time.Now,
	}
}

func (uc *inventoryUseCase) SaveInventoryData(ctx context.Context, items []model.InventoryItem) error {
	out := make([]model.InventoryItem, len(items))
	for i, item := range items {
		item.Status = model.DeriveStatus(item.Quantity, item.MinStock)
		if item.LastUpdated.IsZero() {
			item.LastUpdated = uc.now()
		}
		if item.History == nil {
			item.History = []model.InventoryHistoryEntry{}
		}
		out[i] = item
	}

	if err := uc.repo.ReplaceAll(ctx, out); err != nil {
		uc.logger.Error("failed to save inventory data", zap.Int("items", len(out)), zap.Error(err))
	}
	return nil
}

// GetInventoryData returns every item. An empty inventory is seeded with the
// default stock first.
func (uc *inventoryUseCase) GetInventoryData(ctx context.Context) ([]model.InventoryItem, error) {
	items, err := uc.repo.FindAll(ctx)
	if err != nil {
		uc.logger.Error("failed to load inventory data", zap.Error(err))
		return []model.InventoryItem{}, nil
	}
	if len(items) > 0 {
		return items, nil
	}
	return uc.seedDefaults(ctx), nil
}

func (uc *inventoryUseCase) seedDefaults(ctx context.Context) []model.InventoryItem {
	defaults := seed.DefaultInventory(uc.now())
	for i := range defaults {
		entry := defaults[i].History[0]
		if err := uc.repo.Create(ctx, &defaults[i], &entry); err != nil {
			uc.logger.Error("failed to seed inventory item",
				zap.String("name", defaults[i].Name),
				zap.Error(err),
			)
		}
	}
	uc.logger.Info("seeded default inventory", zap.Int("items", len(defaults)))
	return defaults
}

func (uc *inventoryUseCase) find(ctx context.Context, id int64) (*model.InventoryItem, error) {
	item, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		uc.logger.Error("failed to load inventory item", zap.Int64("id", id), zap.Error(err))
		return nil, inventory.ErrItemNotFound
	}
	if item == nil {
		return nil, inventory.ErrItemNotFound
	}
	return item, nil
}

// UpdateInventoryItem merges updates into the stored item, recomputes its
// status and records one history entry when the quantity moved.
func (uc *inventoryUseCase) UpdateInventoryItem(ctx context.Context, id int64, updates model.ItemUpdate, reason, updatedBy string) (*model.InventoryItem, error) {
	current, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}

	item := *current
	if updates.Name != "" {
		item.Name = updates.Name
	}
	if updates.Category != "" {
		item.Category = updates.Category
	}
	if updates.Unit != "" {
		item.Unit = updates.Unit
	}
	if updates.Quantity != nil {
		item.Quantity = *updates.Quantity
	}
	if updates.MinStock != nil {
		item.MinStock = *updates.MinStock
	}

	now := uc.now()
	item.Status = model.DeriveStatus(item.Quantity, item.MinStock)
	item.LastUpdated = now

	var entry *model.InventoryHistoryEntry
	if updates.Quantity != nil {
		if e, ok := model.QuantityChange(item.ID, current.Quantity, item.Quantity, reason, updatedBy, now); ok {
			entry = &e
			item.History = append([]model.InventoryHistoryEntry{e}, current.History...)
		}
	}

	if err := uc.repo.SaveWithHistory(ctx, &item, entry); err != nil {
		uc.logger.Error("failed to update inventory item", zap.Int64("id", id), zap.Error(err))
		return &item, nil
	}
	if entry != nil {
		uc.publish(ctx, &item, entry)
	}
	return &item, nil
}

func (uc *inventoryUseCase) AddInventoryItem(ctx context.Context, input *dto.AddItemInput) (*model.InventoryItem, error) {
	now := uc.now()
	entry := seed.InitialStockEntry(input.Quantity, now)
	if input.AddedBy != "" {
		entry.UpdatedBy = input.AddedBy
	}

	item := &model.InventoryItem{
		Name:        input.Name,
		Category:    input.Category,
		Quantity:    input.Quantity,
		MinStock:    input.MinStock,
		Unit:        input.Unit,
		Status:      model.DeriveStatus(input.Quantity, input.MinStock),
		LastUpdated: now,
		History:     []model.InventoryHistoryEntry{entry},
	}

	if err := uc.repo.Create(ctx, item, &entry); err != nil {
		uc.logger.Error("failed to add inventory item", zap.String("name", input.Name), zap.Error(err))
	}
	return item, nil
}

func (uc *inventoryUseCase) GetInventoryHistory(ctx context.Context, startDate, endDate string) ([]model.InventoryHistoryEntry, error) {
	if !model.ValidDate(startDate) || !model.ValidDate(endDate) {
		return nil, inventory.ErrInvalidDate
	}

	entries, err := uc.repo.ListHistory(ctx, startDate, endDate)
	if err != nil {
		uc.logger.Error("failed to load inventory history",
			zap.String("start", startDate),
			zap.String("end", endDate),
			zap.Error(err),
		)
		return []model.InventoryHistoryEntry{}, nil
	}
	if entries == nil {
		return []model.InventoryHistoryEntry{}, nil
	}
	return entries, nil
}

// AdjustStock adds or removes amount units. Removal never takes the quantity
// below zero.
func (uc *inventoryUseCase) AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.InventoryItem, error) {
	if input.Reason == "" {
		return nil, inventory.ErrReasonMissing
	}

	current, err := uc.find(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	next := current.Quantity
	switch input.Action {
	case dto.AdjustAdd:
		next += input.Amount
	case dto.AdjustRemove:
		next -= input.Amount
		if next < 0 {
			next = 0
		}
	default:
		return nil, inventory.ErrInvalidAction
	}

	return uc.UpdateInventoryItem(ctx, input.ID, model.ItemUpdate{Quantity: &next}, input.Reason, input.UpdatedBy)
}

func (uc *inventoryUseCase) RemoveItem(ctx context.Context, id int64) error {
	items, err := uc.repo.FindAll(ctx)
	if err != nil {
		uc.logger.Error("failed to load inventory data", zap.Error(err))
		return inventory.ErrItemNotFound
	}

	kept := make([]model.InventoryItem, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return inventory.ErrItemNotFound
	}

	if err := uc.repo.ReplaceAll(ctx, kept); err != nil {
		uc.logger.Error("failed to remove inventory item", zap.Int64("id", id), zap.Error(err))
	}
	return nil
}

func (uc *inventoryUseCase) ListLowStock(ctx context.Context) ([]model.InventoryItem, error) {
	items, _ := uc.GetInventoryData(ctx)

	low := []model.InventoryItem{}
	for _, item := range items {
		if item.Status == model.StockLow {
			low = append(low, item)
		}
	}
	return low, nil
}

func (uc *inventoryUseCase) publish(ctx context.Context, item *model.InventoryItem, entry *model.InventoryHistoryEntry) {
	previous := 0
	if entry.PreviousQuantity != nil {
		previous = *entry.PreviousQuantity
	}

	event := &inventory.StockChangedEvent{
		EventID:   uuid.NewString(),
		EventType: inventory.EventStockChanged,
		Payload: inventory.StockChangedBody{
			ItemID:           item.ID,
			Name:             item.Name,
			Action:           string(entry.Action),
			Quantity:         entry.Quantity,
			PreviousQuantity: previous,
			NewQuantity:      item.Quantity,
			Status:           item.Status,
			Reason:           entry.Reason,
			UpdatedBy:        entry.UpdatedBy,
		},
		Timestamp: entry.Date,
	}
	if err := uc.publisher.PublishStockChanged(ctx, event); err != nil {
		uc.logger.Warn("failed to publish stock change",
			zap.Int64("id", item.ID),
			zap.String("event_id", event.EventID),
			zap.Error(err),
		)
	}
}
