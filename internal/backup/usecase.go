package backup

import (
	"context"
	"errors"
	"time"
)

const Version = "1.0"

var ErrInvalidBackup = errors.New("backup file is not valid JSON")

// Backup is the full-state download. Attendance and Inventory carry the raw
// local-store payloads, or null when the key was empty.
type Backup struct {
	ExportDate time.Time `json:"exportDate"`
	Attendance *string   `json:"attendance"`
	Inventory  *string   `json:"inventory"`
	Metadata   Metadata  `json:"metadata"`
}

type Metadata struct {
	UserAgent string `json:"userAgent"`
	Timestamp int64  `json:"timestamp"`
	Version   string `json:"version"`
}

func (b *Backup) Filename() string {
	return "radiology-center-backup-" + b.ExportDate.Format("2006-01-02") + ".json"
}

type ImportResult struct {
	Attendance bool `json:"attendance"`
	Inventory  bool `json:"inventory"`
}

// Usage sizes are formatted as "<n.nn> KB".
type Usage struct {
	Attendance string `json:"attendance"`
	Inventory  string `json:"inventory"`
	Total      string `json:"total"`
	TotalUsed  string `json:"totalUsed"`
	Keys       int    `json:"keys"`
}

type Inspection struct {
	HasAttendance     bool     `json:"hasAttendance"`
	AttendanceDates   []string `json:"attendanceDates"`
	AttendanceRecords int      `json:"attendanceRecords"`
	HasInventory      bool     `json:"hasInventory"`
	InventoryItems    int      `json:"inventoryItems"`
	HistoryEntries    int      `json:"historyEntries"`
}

type UseCase interface {
	Export(ctx context.Context, userAgent string) (*Backup, error)
	Import(ctx context.Context, raw []byte) (*ImportResult, error)
	Clear(ctx context.Context) error
	Usage(ctx context.Context) (*Usage, error)
	Inspect(ctx context.Context) (*Inspection, error)
}
