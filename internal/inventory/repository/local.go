package repository

import (
	"context"
	"sort"

	"github.com/bharatsutharx/radiology-center-2/internal/inventory"
	"github.com/bharatsutharx/radiology-center-2/internal/localstore"
	"github.com/bharatsutharx/radiology-center-2/internal/model"
)

// LocalRepository keeps the whole item list, each item carrying its own
// history, under localstore.InventoryKey.
type LocalRepository struct {
	store localstore.Store
}

func NewLocalRepository(store localstore.Store) *LocalRepository {
	return &LocalRepository{store: store}
}

func (r *LocalRepository) load(ctx context.Context) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	ok, err := localstore.LoadJSON(ctx, r.store, localstore.InventoryKey, &items)
	if err != nil {
		return nil, err
	}
	if !ok || items == nil {
		return []model.InventoryItem{}, nil
	}
	for i := range items {
		if items[i].History == nil {
			items[i].History = []model.InventoryHistoryEntry{}
		}
	}
	return items, nil
}

func (r *LocalRepository) save(ctx context.Context, items []model.InventoryItem) error {
	return localstore.SaveJSON(ctx, r.store, localstore.InventoryKey, items)
}

func nextID(items []model.InventoryItem) int64 {
	var maxID int64
	for _, item := range items {
		if item.ID > maxID {
			maxID = item.ID
		}
	}
	return maxID + 1
}

// ReplaceAll stores items as the full list. An item that arrives without
// history keeps the ledger already stored under its id.
func (r *LocalRepository) ReplaceAll(ctx context.Context, items []model.InventoryItem) error {
	stored, err := r.load(ctx)
	if err != nil {
		return err
	}
	ledgers := make(map[int64][]model.InventoryHistoryEntry, len(stored))
	for _, item := range stored {
		ledgers[item.ID] = item.History
	}

	out := make([]model.InventoryItem, len(items))
	copy(out, items)
	id := nextID(out)
	for i := range out {
		if out[i].ID == 0 {
			out[i].ID = id
			id++
		} else if len(out[i].History) == 0 {
			out[i].History = ledgers[out[i].ID]
		}
		if out[i].History == nil {
			out[i].History = []model.InventoryHistoryEntry{}
		}
	}
	return r.save(ctx, out)
}

func (r *LocalRepository) FindAll(ctx context.Context) ([]model.InventoryItem, error) {
	return r.load(ctx)
}

func (r *LocalRepository) FindByID(ctx context.Context, id int64) (*model.InventoryItem, error) {
	items, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, nil
}

func (r *LocalRepository) Create(ctx context.Context, item *model.InventoryItem, entry *model.InventoryHistoryEntry) error {
	items, err := r.load(ctx)
	if err != nil {
		return err
	}

	stored := *item
	stored.ID = nextID(items)
	stored.History = []model.InventoryHistoryEntry{}
	if entry != nil {
		e := *entry
		e.InventoryID = 0
		stored.History = append(stored.History, e)
	}

	if err := r.save(ctx, append(items, stored)); err != nil {
		return err
	}
	item.ID = stored.ID
	return nil
}

// SaveWithHistory overwrites the stored item's fields and prepends entry to
// its embedded history.
func (r *LocalRepository) SaveWithHistory(ctx context.Context, item *model.InventoryItem, entry *model.InventoryHistoryEntry) error {
	items, err := r.load(ctx)
	if err != nil {
		return err
	}

	for i := range items {
		if items[i].ID != item.ID {
			continue
		}
		history := items[i].History
		if entry != nil {
			e := *entry
			e.InventoryID = 0
			history = append([]model.InventoryHistoryEntry{e}, history...)
		}
		items[i] = *item
		items[i].History = history
		return r.save(ctx, items)
	}
	return inventory.ErrItemNotFound
}

// ListHistory flattens every item's history, keeps entries whose day is in
// [startDate, endDate] and sorts them newest first.
func (r *LocalRepository) ListHistory(ctx context.Context, startDate, endDate string) ([]model.InventoryHistoryEntry, error) {
	items, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	entries := []model.InventoryHistoryEntry{}
	for _, item := range items {
		for _, e := range item.History {
			if !model.InRange(e.Date.Format(model.DateLayout), startDate, endDate) {
				continue
			}
			e.InventoryID = item.ID
			entries = append(entries, e)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	return entries, nil
}
