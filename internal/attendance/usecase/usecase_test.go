package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bharatsutharx/radiology-center-2/internal/attendance"
	"github.com/bharatsutharx/radiology-center-2/internal/attendance/dto"
	"github.com/bharatsutharx/radiology-center-2/internal/attendance/repository"
	"github.com/bharatsutharx/radiology-center-2/internal/localstore"
	"github.com/bharatsutharx/radiology-center-2/internal/model"
	"github.com/bharatsutharx/radiology-center-2/internal/pkg/logger"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func newUseCase() *attendanceUseCase {
	return &attendanceUseCase{
		repo:   repository.NewLocalRepository(localstore.NewMemoryStore()),
		logger: logger.NewNop(),
		now:    func() time.Time { return fixedNow },
	}
}

type brokenRepo struct{}

var errBroken = errors.New("both stores down")

func (brokenRepo) ReplaceByDate(context.Context, string, []model.AttendanceRecord) error {
	return errBroken
}

func (brokenRepo) FindByDate(context.Context, string) ([]model.AttendanceRecord, error) {
	return nil, errBroken
}

func (brokenRepo) FindAll(context.Context) (model.AttendanceLog, error) {
	return nil, errBroken
}

func TestSaveRecord_RecomputesHours(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase()

	require.NoError(t, uc.SaveAttendanceData(ctx, "2024-06-01", []model.AttendanceRecord{
		{ID: 1, Name: "A", Role: "Tech", Status: model.StatusPresent, CheckIn: "08:00", CheckOut: "17:00"},
	}))

	rec, err := uc.SaveRecord(ctx, &dto.SaveRecordInput{Date: "2024-06-01", ID: 1})
	require.NoError(t, err)
	assert.Equal(t, "9h", rec.Hours)
	assert.Equal(t, fixedNow, rec.UpdatedAt)

	stored, err := uc.GetAttendanceData(ctx, "2024-06-01")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "9h", stored[0].Hours)
}

func TestSaveAttendanceData_Validation(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase()

	err := uc.SaveAttendanceData(ctx, "06/01/2024", nil)
	assert.ErrorIs(t, err, attendance.ErrInvalidDate)

	err = uc.SaveAttendanceData(ctx, "2024-06-01", []model.AttendanceRecord{{Name: "A", Status: "Sick"}})
	assert.ErrorIs(t, err, attendance.ErrInvalidStatus)

	err = uc.SaveAttendanceData(ctx, "2024-06-01", []model.AttendanceRecord{
		{Name: "A", Status: model.StatusPresent},
		{Name: "A", Status: model.StatusLate},
	})
	assert.ErrorIs(t, err, attendance.ErrStaffExists)
}

func TestSaveAttendanceData_AbsentIsNormalised(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase()

	require.NoError(t, uc.SaveAttendanceData(ctx, "2024-06-01", []model.AttendanceRecord{
		{ID: 1, Name: "Amit Verma", Status: model.StatusAbsent, CheckIn: "08:00", CheckOut: "17:00", Hours: "9h"},
	}))

	got, err := uc.GetAttendanceData(ctx, "2024-06-01")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.NoTime, got[0].CheckIn)
	assert.Equal(t, model.NoTime, got[0].CheckOut)
	assert.Equal(t, model.ZeroHours, got[0].Hours)
}

func TestAddStaff(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase()

	first, err := uc.AddStaff(ctx, &dto.AddStaffInput{Date: "2024-06-01", Name: "A", Role: "Tech", CheckIn: "08:00", CheckOut: "18:00", Status: "Present"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, "10h", first.Hours)

	second, err := uc.AddStaff(ctx, &dto.AddStaffInput{Date: "2024-06-01", Name: "B", Role: "Tech", Status: "Absent"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, model.NoTime, second.CheckIn)

	_, err = uc.AddStaff(ctx, &dto.AddStaffInput{Date: "2024-06-01", Name: "A", Role: "Tech", Status: "Present"})
	assert.ErrorIs(t, err, attendance.ErrStaffExists)

	roster, _ := uc.GetAttendanceData(ctx, "2024-06-01")
	assert.Len(t, roster, 2)
}

func TestSaveRecord_Errors(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase()
	require.NoError(t, uc.SaveAttendanceData(ctx, "2024-06-01", []model.AttendanceRecord{
		{ID: 1, Name: "A", Status: model.StatusPresent},
		{ID: 2, Name: "B", Status: model.StatusPresent},
	}))

	_, err := uc.SaveRecord(ctx, &dto.SaveRecordInput{Date: "2024-06-01", ID: 9})
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)

	_, err = uc.SaveRecord(ctx, &dto.SaveRecordInput{Date: "2024-06-01", ID: 1, Name: "B"})
	assert.ErrorIs(t, err, attendance.ErrStaffExists)
}

func TestDeleteRecord(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase()
	require.NoError(t, uc.SaveAttendanceData(ctx, "2024-06-01", []model.AttendanceRecord{
		{ID: 1, Name: "A", Status: model.StatusPresent},
		{ID: 2, Name: "B", Status: model.StatusPresent},
	}))

	require.NoError(t, uc.DeleteRecord(ctx, "2024-06-01", 1))
	assert.ErrorIs(t, uc.DeleteRecord(ctx, "2024-06-01", 1), attendance.ErrRecordNotFound)

	roster, _ := uc.GetAttendanceData(ctx, "2024-06-01")
	require.Len(t, roster, 1)
	assert.Equal(t, "B", roster[0].Name)
}

func TestStorageFailuresAreSwallowed(t *testing.T) {
	ctx := context.Background()
	uc := &attendanceUseCase{repo: brokenRepo{}, logger: logger.NewNop(), now: time.Now}

	assert.NoError(t, uc.SaveAttendanceData(ctx, "2024-06-01", []model.AttendanceRecord{{Name: "A", Status: model.StatusPresent}}))

	records, err := uc.GetAttendanceData(ctx, "2024-06-01")
	assert.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)

	all, err := uc.GetAllAttendanceData(ctx)
	assert.NoError(t, err)
	assert.Empty(t, all)
}

func TestGetAttendanceAnalytics(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase()

	days := map[string]model.AttendanceStatus{
		"2024-06-01": model.StatusPresent,
		"2024-06-02": model.StatusLate,
		"2024-06-03": model.StatusAbsent,
		"2024-06-04": model.StatusHalfDay,
		"2024-07-01": model.StatusPresent,
	}
	for date, status := range days {
		require.NoError(t, uc.SaveAttendanceData(ctx, date, []model.AttendanceRecord{{ID: 1, Name: "A", Status: status}}))
	}

	stats, err := uc.GetAttendanceAnalytics(ctx, "A", "2024-06-01", "2024-06-30")
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalDays)
	assert.Equal(t, 1, stats.PresentDays)
	assert.Equal(t, 1, stats.LateDays)
	assert.Equal(t, 1, stats.AbsentDays)
	assert.Equal(t, 1, stats.HalfDays)
	assert.Equal(t, 75.0, stats.AttendanceRate)

	none, err := uc.GetAttendanceAnalytics(ctx, "Nobody", "2024-06-01", "2024-06-30")
	require.NoError(t, err)
	assert.Equal(t, 0.0, none.AttendanceRate)

	_, err = uc.GetAttendanceAnalytics(ctx, "A", "2024-06-30", "2024-06-01")
	assert.ErrorIs(t, err, attendance.ErrInvalidRange)

	monthly, err := uc.GetMonthlyAttendanceStats(ctx, "2024-06")
	require.NoError(t, err)
	assert.Equal(t, &model.MonthlyStats{Present: 1, Absent: 1, Late: 1, HalfDay: 1}, monthly)

	_, err = uc.GetMonthlyAttendanceStats(ctx, "June")
	assert.ErrorIs(t, err, attendance.ErrInvalidMonth)
}

func TestAddStaff_PostgresKeepsAssignedID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	uc := &attendanceUseCase{
		repo:   repository.NewPGRepository(sqlx.NewDb(db, "postgres")),
		logger: logger.NewNop(),
		now:    func() time.Time { return fixedNow },
	}

	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM attendance WHERE date = \$1`).
		WithArgs("2024-06-01").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "role", "date", "check_in", "check_out", "status", "hours", "created_at", "updated_at"}).
			AddRow(int64(10), "Amit Verma", "CT Technician", day, "08:15", "17:15", "Present", "9h", fixedNow, fixedNow))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM attendance`).WillReturnResult(sqlmock.NewResult(0, 1))

	anyArg := sqlmock.AnyArg()
	mock.ExpectExec(`INSERT INTO attendance \(id, name`).
		WithArgs(
			int64(10), anyArg, anyArg, anyArg, anyArg, anyArg, anyArg, anyArg, anyArg, anyArg,
			int64(11), "Neha Gupta", anyArg, anyArg, anyArg, anyArg, anyArg, anyArg, anyArg, anyArg,
		).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	rec, err := uc.AddStaff(context.Background(), &dto.AddStaffInput{
		Date: "2024-06-01", Name: "Neha Gupta", Role: "Ultrasound Technician",
		CheckIn: "08:00", CheckOut: "17:00", Status: "Present",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), rec.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
