package usecase

import (
	"context"
	"testing"

	"github.com/bharatsutharx/radiology-center-2/internal/export"
	"github.com/bharatsutharx/radiology-center-2/internal/model"
	"github.com/bharatsutharx/radiology-center-2/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	anUC "github.com/bharatsutharx/radiology-center-2/internal/analytics/usecase"
)

type staticLog model.AttendanceLog

func (l staticLog) GetAllAttendanceData(context.Context) (model.AttendanceLog, error) {
	return model.AttendanceLog(l), nil
}

type emptyInventory struct{}

func (emptyInventory) GetInventoryData(context.Context) ([]model.InventoryItem, error) {
	return []model.InventoryItem{}, nil
}

func newExportUseCase(data model.AttendanceLog) export.UseCase {
	log := logger.NewNop()
	source := staticLog(data)
	return NewExportUseCase(source, anUC.NewAnalyticsUseCase(source, log), emptyInventory{}, log)
}

func TestStaffPerformanceReport_UsesStaffRecords(t *testing.T) {
	uc := newExportUseCase(model.AttendanceLog{
		"2024-06-02": {{ID: 1, Name: "B", Role: "Tech", Date: "2024-06-02", CheckIn: "08:00", CheckOut: "16:00", Status: model.StatusPresent, Hours: "8h"}},
		"2024-06-01": {{ID: 1, Name: "A", Role: "Tech", Date: "2024-06-01", CheckIn: "09:30", CheckOut: "17:30", Status: model.StatusLate, Hours: "8h"}},
	})

	r, err := uc.StaffPerformanceReport(context.Background(), "A", "2024-06-01", "2024-06-30")
	require.NoError(t, err)
	require.Len(t, r.Rows, 2)
	assert.Equal(t, []string{"2024-06-01", "Saturday", "09:30", "17:30", "8h", "Late", "90"}, r.Rows[0])
	assert.Equal(t, []string{"2024-06-02", "Sunday", "-", "-", "0h", "Absent", "0"}, r.Rows[1])
}

func TestStaffPerformanceReport_Validation(t *testing.T) {
	uc := newExportUseCase(model.AttendanceLog{})

	_, err := uc.StaffPerformanceReport(context.Background(), "", "2024-06-01", "2024-06-30")
	assert.ErrorIs(t, err, export.ErrStaffMissing)

	_, err = uc.StaffPerformanceReport(context.Background(), "A", "2024-06-30", "2024-06-01")
	assert.ErrorIs(t, err, export.ErrInvalidRange)
}
