package inventory

import (
	"context"
	"errors"

	"github.com/bharatsutharx/radiology-center-2/internal/inventory/dto"
	"github.com/bharatsutharx/radiology-center-2/internal/model"
)

var (
	ErrItemNotFound  = errors.New("inventory item not found")
	ErrInvalidDate   = errors.New("date must be formatted as YYYY-MM-DD")
	ErrInvalidAction = errors.New("action must be add or remove")
	ErrReasonMissing = errors.New("a reason is required for stock changes")
)

type UseCase interface {
	SaveInventoryData(ctx context.Context, items []model.InventoryItem) error
	GetInventoryData(ctx context.Context) ([]model.InventoryItem, error)
	UpdateInventoryItem(ctx context.Context, id int64, updates model.ItemUpdate, reason, updatedBy string) (*model.InventoryItem, error)
	AddInventoryItem(ctx context.Context, input *dto.AddItemInput) (*model.InventoryItem, error)
	GetInventoryHistory(ctx context.Context, startDate, endDate string) ([]model.InventoryHistoryEntry, error)

	// Stock dialog operations
	AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.InventoryItem, error)
	RemoveItem(ctx context.Context, id int64) error
	ListLowStock(ctx context.Context) ([]model.InventoryItem, error)
}
