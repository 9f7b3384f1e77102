package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/bharatsutharx/radiology-center-2/internal/attendance"
	"github.com/bharatsutharx/radiology-center-2/internal/attendance/dto"
	"github.com/bharatsutharx/radiology-center-2/internal/model"
	"github.com/bharatsutharx/radiology-center-2/internal/pkg/logger"
	"go.uber.org/zap"
)

type attendanceUseCase struct {
	repo   attendance.Repository
	logger logger.ZapLogger
	now    func() time.Time
}

func NewAttendanceUseCase(repo attendance.Repository, log logger.ZapLogger) attendance.UseCase {
	return &attendanceUseCase{
		repo:   repo,
		logger: log,
		now:    time.Now,
	}
}

// SaveAttendanceData replaces the roster for date. Storage failures are logged
// and swallowed; only invalid input is reported.
func (uc *attendanceUseCase) SaveAttendanceData(ctx context.Context, date string, records []model.AttendanceRecord) error {
	if !model.ValidDate(date) {
		return attendance.ErrInvalidDate
	}

	seen := make(map[string]struct{}, len(records))
	roster := make([]model.AttendanceRecord, len(records))
	for i, rec := range records {
		if !rec.Status.Valid() {
			return attendance.ErrInvalidStatus
		}
		if _, dup := seen[rec.Name]; dup {
			return attendance.ErrStaffExists
		}
		seen[rec.Name] = struct{}{}

		rec.Date = date
		rec.Normalize()
		roster[i] = rec
	}

	uc.persist(ctx, date, roster)
	return nil
}

func (uc *attendanceUseCase) persist(ctx context.Context, date string, roster []model.AttendanceRecord) {
	if err := uc.repo.ReplaceByDate(ctx, date, roster); err != nil {
		uc.logger.Error("failed to save attendance data",
			zap.String("date", date),
			zap.Int("records", len(roster)),
			zap.Error(err),
		)
	}
}

func (uc *attendanceUseCase) GetAttendanceData(ctx context.Context, date string) ([]model.AttendanceRecord, error) {
	if !model.ValidDate(date) {
		return nil, attendance.ErrInvalidDate
	}
	return uc.roster(ctx, date), nil
}

func (uc *attendanceUseCase) roster(ctx context.Context, date string) []model.AttendanceRecord {
	records, err := uc.repo.FindByDate(ctx, date)
	if err != nil {
		uc.logger.Error("failed to load attendance data", zap.String("date", date), zap.Error(err))
		return []model.AttendanceRecord{}
	}
	if records == nil {
		return []model.AttendanceRecord{}
	}
	return records
}

func (uc *attendanceUseCase) GetAllAttendanceData(ctx context.Context) (model.AttendanceLog, error) {
	data, err := uc.repo.FindAll(ctx)
	if err != nil {
		uc.logger.Error("failed to load all attendance data", zap.Error(err))
		return model.AttendanceLog{}, nil
	}
	if data == nil {
		return model.AttendanceLog{}, nil
	}
	return data, nil
}

func (uc *attendanceUseCase) GetAttendanceAnalytics(ctx context.Context, staffName, startDate, endDate string) (*model.AttendanceAnalytics, error) {
	if !model.ValidDate(startDate) || !model.ValidDate(endDate) {
		return nil, attendance.ErrInvalidDate
	}
	if startDate > endDate {
		return nil, attendance.ErrInvalidRange
	}

	data, _ := uc.GetAllAttendanceData(ctx)

	stats := &model.AttendanceAnalytics{}
	for date := range data {
		if !model.InRange(date, startDate, endDate) {
			continue
		}
		if rec, ok := data.Find(date, staffName); ok {
			stats.Count(rec.Status)
		}
	}
	stats.Finish()
	return stats, nil
}

func (uc *attendanceUseCase) GetMonthlyAttendanceStats(ctx context.Context, month string) (*model.MonthlyStats, error) {
	if !model.ValidMonth(month) {
		return nil, attendance.ErrInvalidMonth
	}

	data, _ := uc.GetAllAttendanceData(ctx)

	stats := &model.MonthlyStats{}
	for date, records := range data {
		if !strings.HasPrefix(date, month) {
			continue
		}
		for _, rec := range records {
			switch rec.Status {
			case model.StatusPresent:
				stats.Present++
			case model.StatusAbsent:
				stats.Absent++
			case model.StatusLate:
				stats.Late++
			case model.StatusHalfDay:
				stats.HalfDay++
			}
		}
	}
	return stats, nil
}

func (uc *attendanceUseCase) AddStaff(ctx context.Context, input *dto.AddStaffInput) (*model.AttendanceRecord, error) {
	if !model.ValidDate(input.Date) {
		return nil, attendance.ErrInvalidDate
	}
	status := model.AttendanceStatus(input.Status)
	if !status.Valid() {
		return nil, attendance.ErrInvalidStatus
	}

	roster := uc.roster(ctx, input.Date)

	var maxID int64
	for _, rec := range roster {
		if rec.Name == input.Name {
			return nil, attendance.ErrStaffExists
		}
		if rec.ID > maxID {
			maxID = rec.ID
		}
	}

	now := uc.now()
	rec := model.AttendanceRecord{
		ID:        maxID + 1,
		Name:      input.Name,
		Role:      input.Role,
		Date:      input.Date,
		CheckIn:   input.CheckIn,
		CheckOut:  input.CheckOut,
		Status:    status,
		Hours:     model.ZeroHours,
		CreatedAt: now,
		UpdatedAt: now,
	}
	rec.Normalize()
	rec.RecomputeHours()

	uc.persist(ctx, input.Date, append(roster, rec))
	return &rec, nil
}

// SaveRecord applies an edit to one roster entry, recomputes its hours and
// writes the whole day back.
func (uc *attendanceUseCase) SaveRecord(ctx context.Context, input *dto.SaveRecordInput) (*model.AttendanceRecord, error) {
	if !model.ValidDate(input.Date) {
		return nil, attendance.ErrInvalidDate
	}

	roster := uc.roster(ctx, input.Date)

	idx := -1
	for i, rec := range roster {
		if rec.ID == input.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, attendance.ErrRecordNotFound
	}

	rec := roster[idx]
	if input.Name != "" && input.Name != rec.Name {
		for _, other := range roster {
			if other.Name == input.Name {
				return nil, attendance.ErrStaffExists
			}
		}
		rec.Name = input.Name
	}
	if input.Role != "" {
		rec.Role = input.Role
	}
	if input.CheckIn != "" {
		rec.CheckIn = input.CheckIn
	}
	if input.CheckOut != "" {
		rec.CheckOut = input.CheckOut
	}
	if input.Status != "" {
		status := model.AttendanceStatus(input.Status)
		if !status.Valid() {
			return nil, attendance.ErrInvalidStatus
		}
		rec.Status = status
	}

	rec.RecomputeHours()
	rec.UpdatedAt = uc.now()
	roster[idx] = rec

	uc.persist(ctx, input.Date, roster)
	return &rec, nil
}

func (uc *attendanceUseCase) DeleteRecord(ctx context.Context, date string, id int64) error {
	if !model.ValidDate(date) {
		return attendance.ErrInvalidDate
	}

	roster := uc.roster(ctx, date)
	kept := make([]model.AttendanceRecord, 0, len(roster))
	for _, rec := range roster {
		if rec.ID != id {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(roster) {
		return attendance.ErrRecordNotFound
	}

	uc.persist(ctx, date, kept)
	return nil
}
