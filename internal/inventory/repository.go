package inventory

import (
	"context"

	"github.com/bharatsutharx/radiology-center-2/internal/model"
)

type Repository interface {
	// Items
	ReplaceAll(ctx context.Context, items []model.InventoryItem) error
	FindAll(ctx context.Context) ([]model.InventoryItem, error)
	FindByID(ctx context.Context, id int64) (*model.InventoryItem, error)

	// Item writes paired with their ledger entry
	Create(ctx context.Context, item *model.InventoryItem, entry *model.InventoryHistoryEntry) error
	SaveWithHistory(ctx context.Context, item *model.InventoryItem, entry *model.InventoryHistoryEntry) error

	// Ledger
	ListHistory(ctx context.Context, startDate, endDate string) ([]model.InventoryHistoryEntry, error)
}
