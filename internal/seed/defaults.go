package seed

import (
	"time"

	"github.com/bharatsutharx/radiology-center-2/internal/model"
)

// DefaultRoster is the six-person roster written for a day with no data.
func DefaultRoster(date string, now time.Time) []model.AttendanceRecord {
	roster := []model.AttendanceRecord{
		{ID: 1, Name: "Dr. Bhajan Singh", Role: "Chief Radiologist", CheckIn: "08:00", CheckOut: "18:00", Status: model.StatusPresent, Hours: "10h"},
		{ID: 2, Name: "Dr. Priya Sharma", Role: "Senior Radiologist", CheckIn: "08:30", CheckOut: "17:30", Status: model.StatusPresent, Hours: "9h"},
		{ID: 3, Name: "Rajesh Kumar", Role: "Chief Technologist", CheckIn: "07:45", CheckOut: "16:45", Status: model.StatusPresent, Hours: "9h"},
		{ID: 4, Name: "Sunita Patel", Role: "MRI Technician", CheckIn: "09:15", CheckOut: "18:15", Status: model.StatusLate, Hours: "9h"},
		{ID: 5, Name: "Amit Verma", Role: "CT Technician", CheckIn: model.NoTime, CheckOut: model.NoTime, Status: model.StatusAbsent, Hours: model.ZeroHours},
		{ID: 6, Name: "Neha Gupta", Role: "Ultrasound Technician", CheckIn: "08:15", CheckOut: "17:15", Status: model.StatusPresent, Hours: "9h"},
	}
	for i := range roster {
		roster[i].Date = date
		roster[i].CreatedAt = now
		roster[i].UpdatedAt = now
	}
	return roster
}

// DefaultInventory is the five-item starter stock, every item below its
// minimum.
func DefaultInventory(now time.Time) []model.InventoryItem {
	items := []model.InventoryItem{
		{ID: 1, Name: "Contrast Dye", Category: "Medical Supplies", Quantity: 5, MinStock: 20, Unit: "Bottles"},
		{ID: 2, Name: "X-Ray Films", Category: "Imaging Supplies", Quantity: 15, MinStock: 50, Unit: "Boxes"},
		{ID: 3, Name: "Ultrasound Gel", Category: "Medical Supplies", Quantity: 8, MinStock: 25, Unit: "Tubes"},
		{ID: 4, Name: "Disposable Gloves", Category: "Safety Equipment", Quantity: 45, MinStock: 100, Unit: "Boxes"},
		{ID: 5, Name: "Lead Aprons", Category: "Safety Equipment", Quantity: 8, MinStock: 15, Unit: "Units"},
	}
	for i := range items {
		items[i].Status = model.DeriveStatus(items[i].Quantity, items[i].MinStock)
		items[i].LastUpdated = now
		items[i].History = []model.InventoryHistoryEntry{InitialStockEntry(items[i].Quantity, now)}
	}
	return items
}

const (
	InitialStockReason = "Initial stock"
	SystemActor        = "Admin"
)

func InitialStockEntry(quantity int, at time.Time) model.InventoryHistoryEntry {
	return model.InventoryHistoryEntry{
		Date:      at,
		Action:    model.ActionAdded,
		Quantity:  quantity,
		Reason:    InitialStockReason,
		UpdatedBy: SystemActor,
	}
}
