package export

import (
	"context"
	"errors"

	"github.com/bharatsutharx/radiology-center-2/internal/model"
)

var (
	ErrInvalidDate  = errors.New("date must be formatted as YYYY-MM-DD")
	ErrInvalidRange = errors.New("start date must not be after end date")
	ErrStaffMissing = errors.New("staff name is required")
)

type AttendanceSource interface {
	GetAllAttendanceData(ctx context.Context) (model.AttendanceLog, error)
}

// StaffRecordSource supplies a staff member's per-day records with absences
// filled in. analytics.UseCase satisfies it.
type StaffRecordSource interface {
	GetStaffRecords(ctx context.Context, staffName, startDate, endDate string) ([]model.AttendanceRecord, error)
}

type InventorySource interface {
	GetInventoryData(ctx context.Context) ([]model.InventoryItem, error)
}

type UseCase interface {
	AttendanceReport(ctx context.Context, startDate, endDate string) (*Report, error)
	InventoryReport(ctx context.Context) (*Report, error)
	StaffPerformanceReport(ctx context.Context, staffName, startDate, endDate string) (*Report, error)
}
