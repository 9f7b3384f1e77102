package analytics

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

// AttendanceSource supplies the full attendance history. attendance.UseCase
// satisfies it.
type AttendanceSource interface {
	GetAllAttendanceData(ctx context.Context) (model.AttendanceLog, error)
}

type UseCase interface {
	GetDetailedStaffAnalytics(ctx context.Context, staffName, startDate, endDate string) (*model.StaffAnalytics, error)
	GetAllStaffList(ctx context.Context) ([]string, error)
	GetStaffComparison(ctx context.Context, startDate, endDate string) ([]model.StaffComparison, error)
	GetStaffRecords(ctx context.Context, staffName, startDate, endDate string) ([]model.AttendanceRecord, error)
}
