package attendance

import (
	"context"

	"github.com/bharatsutharx/radiology-center-2/internal/model"
)

// Repository persists per-date rosters. ReplaceByDate swaps the whole day.
type Repository interface {
	ReplaceByDate(ctx context.Context, date string, records []model.AttendanceRecord) error
	FindByDate(ctx context.Context, date string) ([]model.AttendanceRecord, error)
	FindAll(ctx context.Context) (model.AttendanceLog, error)
}
