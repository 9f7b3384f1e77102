package model

import "time"

const (
	StockLow = "Low Stock"
	StockIn  = "In Stock"
)

type HistoryAction string

const (
	ActionAdded   HistoryAction = "added"
	ActionRemoved HistoryAction = "removed"
	ActionUpdated HistoryAction = "updated"
)

// DeriveStatus is the only source of an item's status.
func DeriveStatus(quantity, minStock int) string {
	if quantity <= minStock {
		return StockLow
	}
	return StockIn
}

type InventoryItem struct {
	ID          int64                   `json:"id"`
	Name        string                  `json:"name"`
	Category    string                  `json:"category"`
	Quantity    int                     `json:"quantity"`
	MinStock    int                     `json:"minStock"`
	Unit        string                  `json:"unit"`
	Status      string                  `json:"status"`
	LastUpdated time.Time               `json:"lastUpdated"`
	History     []InventoryHistoryEntry `json:"history"`
}

type InventoryHistoryEntry struct {
	InventoryID      int64         `json:"inventoryId,omitempty"`
	Date             time.Time     `json:"date"`
	Action           HistoryAction `json:"action"`
	Quantity         int           `json:"quantity"`
	PreviousQuantity *int          `json:"previousQuantity,omitempty"`
	Reason           string        `json:"reason"`
	UpdatedBy        string        `json:"updatedBy"`
}

// ItemUpdate carries the optional fields of a partial update. Nil or empty
// values keep the stored value.
type ItemUpdate struct {
	Name     string
	Category string
	Quantity *int
	MinStock *int
	Unit     string
}

// QuantityChange builds the ledger entry for a move from previous to next.
// ok is false when nothing changed.
func QuantityChange(itemID int64, previous, next int, reason, updatedBy string, at time.Time) (InventoryHistoryEntry, bool) {
	if previous == next {
		return InventoryHistoryEntry{}, false
	}
	action := ActionRemoved
	magnitude := previous - next
	if next > previous {
		action = ActionAdded
		magnitude = next - previous
	}
	prev := previous
	return InventoryHistoryEntry{
		InventoryID:      itemID,
		Date:             at,
		Action:           action,
		Quantity:         magnitude,
		PreviousQuantity: &prev,
		Reason:           reason,
		UpdatedBy:        updatedBy,
	}, true
}
