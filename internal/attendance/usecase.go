package attendance

import (
	"context"
	"errors"

	"github.com/bharatsutharx/radiology-center-2/internal/attendance/dto"
	"github.com/bharatsutharx/radiology-center-2/internal/model"
)

var (
	ErrInvalidDate    = errors.New("date must be formatted as YYYY-MM-DD")
	ErrInvalidMonth   = errors.New("month must be formatted as YYYY-MM")
	ErrInvalidStatus  = errors.New("status must be one of Present, Absent, Half Day, Late")
	ErrInvalidRange   = errors.New("start date must not be after end date")
	ErrStaffExists    = errors.New("staff member already has a record for this date")
	ErrRecordNotFound = errors.New("attendance record not found")
)

type UseCase interface {
	SaveAttendanceData(ctx context.Context, date string, records []model.AttendanceRecord) error
	GetAttendanceData(ctx context.Context, date string) ([]model.AttendanceRecord, error)
	GetAllAttendanceData(ctx context.Context) (model.AttendanceLog, error)
	GetAttendanceAnalytics(ctx context.Context, staffName, startDate, endDate string) (*model.AttendanceAnalytics, error)
	GetMonthlyAttendanceStats(ctx context.Context, month string) (*model.MonthlyStats, error)

	// Roster editing
	AddStaff(ctx context.Context, input *dto.AddStaffInput) (*model.AttendanceRecord, error)
	SaveRecord(ctx context.Context, input *dto.SaveRecordInput) (*model.AttendanceRecord, error)
	DeleteRecord(ctx context.Context, date string, id int64) error
}
