package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/bharatsutharx/radiology-center-2/internal/analytics"
	"github.com/bharatsutharx/radiology-center-2/internal/model"
	"github.com/bharatsutharx/radiology-center-2/internal/pkg/logger"
	"go.uber.org/zap"
)

const (
	fullDayHours       = 8
	recentActivitySize = 10
	unknownRole        = "Unknown"
)

type analyticsUseCase struct {
	source analytics.AttendanceSource
	logger logger.ZapLogger
	now    func() time.Time
}

func NewAnalyticsUseCase(source analytics.AttendanceSource, log logger.ZapLogger) analytics.UseCase {
	return &analyticsUseCase{
		source: source,
		logger: log,
		now:    time.Now,
	}
}

func validRange(startDate, endDate string) error {
	if !model.ValidDate(startDate) || !model.ValidDate(endDate) {
		return analytics.ErrInvalidDate
	}
	if startDate > endDate {
		return analytics.ErrInvalidRange
	}
	return nil
}

func (uc *analyticsUseCase) load(ctx context.Context) model.AttendanceLog {
	data, err := uc.source.GetAllAttendanceData(ctx)
	if err != nil || data == nil {
		if err != nil {
			uc.logger.Error("failed to load attendance history", zap.Error(err))
		}
		return model.AttendanceLog{}
	}
	return data
}

// GetStaffRecords returns one record per dataset date in range for staffName,
// oldest first. Dates where the staff member has no record get a synthetic
// Absent record.
func (uc *analyticsUseCase) GetStaffRecords(ctx context.Context, staffName, startDate, endDate string) ([]model.AttendanceRecord, error) {
	if staffName == "" {
		return nil, analytics.ErrStaffMissing
	}
	if err := validRange(startDate, endDate); err != nil {
		return nil, err
	}
	data := uc.load(ctx)
	return staffRecords(data, staffName, roleOf(data, staffName), startDate, endDate, uc.now()), nil
}

func staffRecords(data model.AttendanceLog, name, role, startDate, endDate string, now time.Time) []model.AttendanceRecord {
	dates := data.Dates()
	sort.Strings(dates)

	records := []model.AttendanceRecord{}
	for _, date := range dates {
		if !model.InRange(date, startDate, endDate) {
			continue
		}
		if rec, ok := data.Find(date, name); ok {
			records = append(records, rec)
			continue
		}
		records = append(records, model.AttendanceRecord{
			Name:      name,
			Role:      role,
			Date:      date,
			CheckIn:   model.NoTime,
			CheckOut:  model.NoTime,
			Status:    model.StatusAbsent,
			Hours:     model.ZeroHours,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return records
}

// roleOf returns the role on the newest record for name.
func roleOf(data model.AttendanceLog, name string) string {
	for _, date := range data.Dates() {
		if rec, ok := data.Find(date, name); ok {
			return rec.Role
		}
	}
	return unknownRole
}

func (uc *analyticsUseCase) GetDetailedStaffAnalytics(ctx context.Context, staffName, startDate, endDate string) (*model.StaffAnalytics, error) {
	if staffName == "" {
		return nil, analytics.ErrStaffMissing
	}
	if err := validRange(startDate, endDate); err != nil {
		return nil, err
	}
	return detailed(uc.load(ctx), staffName, startDate, endDate, uc.now()), nil
}

func detailed(data model.AttendanceLog, name, startDate, endDate string, now time.Time) *model.StaffAnalytics {
	role := roleOf(data, name)
	records := staffRecords(data, name, role, startDate, endDate, now)

	var counts model.AttendanceAnalytics
	totalHours, workingDays := 0, 0
	lateMinutes, perfect := 0, 0
	streak, longest := 0, 0

	for _, rec := range records {
		counts.Count(rec.Status)

		hours, hasHours := model.ParseHours(rec.Hours)
		if hasHours {
			totalHours += hours
		}
		if rec.Status != model.StatusAbsent {
			workingDays++
		}
		if rec.Status == model.StatusLate {
			lateMinutes += model.LateMinutes(rec.CheckIn)
		}
		if rec.Status == model.StatusPresent && rec.CheckIn <= model.ShiftStart && hasHours && hours >= fullDayHours {
			perfect++
		}

		if rec.Status == model.StatusAbsent {
			streak++
			if streak > longest {
				longest = streak
			}
		} else {
			streak = 0
		}
	}
	counts.Finish()

	var averageHours float64
	if workingDays > 0 {
		averageHours = float64(totalHours) / float64(workingDays)
	}

	return &model.StaffAnalytics{
		Name:                  name,
		Role:                  role,
		TotalDays:             counts.TotalDays,
		PresentDays:           counts.PresentDays,
		AbsentDays:            counts.AbsentDays,
		LateDays:              counts.LateDays,
		HalfDays:              counts.HalfDays,
		AttendanceRate:        counts.AttendanceRate,
		AverageHours:          averageHours,
		LateMinutes:           lateMinutes,
		PerfectAttendanceDays: perfect,
		LongestAbsentStreak:   longest,
		MonthlyBreakdown:      monthlyBreakdown(records),
		RecentActivity:        recentActivity(records),
		PerformanceGrade:      performanceGrade(counts.AttendanceRate, lateMinutes, counts.AbsentDays),
		Recommendations:       recommendations(counts.AttendanceRate, lateMinutes, counts.AbsentDays, counts.LateDays),
	}
}

// monthlyBreakdown expects records sorted by date, so months come out in
// ascending order.
func monthlyBreakdown(records []model.AttendanceRecord) []model.MonthlyBreakdown {
	out := []model.MonthlyBreakdown{}
	index := map[string]int{}
	for _, rec := range records {
		month := rec.Date
		if len(month) >= 7 {
			month = month[:7]
		}
		i, ok := index[month]
		if !ok {
			i = len(out)
			index[month] = i
			out = append(out, model.MonthlyBreakdown{Month: month})
		}

		m := &out[i]
		m.TotalDays++
		switch rec.Status {
		case model.StatusPresent:
			m.Present++
		case model.StatusAbsent:
			m.Absent++
		case model.StatusLate:
			m.Late++
		case model.StatusHalfDay:
			m.HalfDay++
		}
	}
	for i := range out {
		out[i].AttendanceRate = model.AttendanceRate(out[i].Present, out[i].Late, out[i].HalfDay, out[i].TotalDays)
	}
	return out
}

func recentActivity(records []model.AttendanceRecord) []model.AttendanceRecord {
	n := len(records)
	if n > recentActivitySize {
		n = recentActivitySize
	}
	recent := make([]model.AttendanceRecord, 0, n)
	for i := len(records) - 1; i >= 0 && len(recent) < n; i-- {
		recent = append(recent, records[i])
	}
	return recent
}

func (uc *analyticsUseCase) GetAllStaffList(ctx context.Context) ([]string, error) {
	return staffNames(uc.load(ctx)), nil
}

func staffNames(data model.AttendanceLog) []string {
	seen := map[string]struct{}{}
	names := []string{}
	for _, records := range data {
		for _, rec := range records {
			if _, ok := seen[rec.Name]; ok {
				continue
			}
			seen[rec.Name] = struct{}{}
			names = append(names, rec.Name)
		}
	}
	sort.Strings(names)
	return names
}

// GetStaffComparison grades every known staff member over the range, best
// attendance rate first.
func (uc *analyticsUseCase) GetStaffComparison(ctx context.Context, startDate, endDate string) ([]model.StaffComparison, error) {
	if err := validRange(startDate, endDate); err != nil {
		return nil, err
	}

	data := uc.load(ctx)
	now := uc.now()

	out := []model.StaffComparison{}
	for _, name := range staffNames(data) {
		a := detailed(data, name, startDate, endDate, now)
		out = append(out, model.StaffComparison{
			Name:             a.Name,
			Role:             a.Role,
			AttendanceRate:   a.AttendanceRate,
			PresentDays:      a.PresentDays,
			AbsentDays:       a.AbsentDays,
			PerformanceGrade: a.PerformanceGrade,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AttendanceRate > out[j].AttendanceRate
	})
	return out, nil
}

