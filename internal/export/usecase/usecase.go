package usecase

import (
	"context"

	"github.com/bharatsutharx/radiology-center-2/internal/export"
	"github.com/bharatsutharx/radiology-center-2/internal/model"
	"github.com/bharatsutharx/radiology-center-2/internal/pkg/logger"
	"go.uber.org/zap"
)

type exportUseCase struct {
	attendance export.AttendanceSource
	staff      export.StaffRecordSource
	inventory  export.InventorySource
	logger     logger.ZapLogger
}

func NewExportUseCase(attendance export.AttendanceSource, staff export.StaffRecordSource, inventory export.InventorySource, log logger.ZapLogger) export.UseCase {
	return &exportUseCase{
		attendance: attendance,
		staff:      staff,
		inventory:  inventory,
		logger:     log,
	}
}

func validRange(startDate, endDate string) error {
	if !model.ValidDate(startDate) || !model.ValidDate(endDate) {
		return export.ErrInvalidDate
	}
	if startDate > endDate {
		return export.ErrInvalidRange
	}
	return nil
}

func (uc *exportUseCase) log(ctx context.Context) model.AttendanceLog {
	data, err := uc.attendance.GetAllAttendanceData(ctx)
	if err != nil {
		uc.logger.Error("failed to load attendance for export", zap.Error(err))
		return model.AttendanceLog{}
	}
	return data
}

func (uc *exportUseCase) AttendanceReport(ctx context.Context, startDate, endDate string) (*export.Report, error) {
	if err := validRange(startDate, endDate); err != nil {
		return nil, err
	}
	return export.AttendanceReport(uc.log(ctx), startDate, endDate), nil
}

func (uc *exportUseCase) InventoryReport(ctx context.Context) (*export.Report, error) {
	items, err := uc.inventory.GetInventoryData(ctx)
	if err != nil {
		uc.logger.Error("failed to load inventory for export", zap.Error(err))
	}
	return export.InventoryReport(items), nil
}

func (uc *exportUseCase) StaffPerformanceReport(ctx context.Context, staffName, startDate, endDate string) (*export.Report, error) {
	if staffName == "" {
		return nil, export.ErrStaffMissing
	}
	if err := validRange(startDate, endDate); err != nil {
		return nil, err
	}

	records, err := uc.staff.GetStaffRecords(ctx, staffName, startDate, endDate)
	if err != nil {
		return nil, err
	}
	return export.StaffPerformanceReport(records, staffName, startDate, endDate), nil
}
