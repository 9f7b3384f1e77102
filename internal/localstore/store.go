// Package localstore is the synchronous key-value string store used when the
// remote database cannot be reached.
package localstore

import (
	"context"
	"errors"
)

// Keys holding the fallback datasets.
const (
	AttendanceKey = "radiology_attendance_data"
	InventoryKey  = "radiology_inventory_data"
)

var ErrNotFound = errors.New("localstore: key not found")

type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}
