package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bharatsutharx/radiology-center-2/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

var rowColumns = []string{"id", "name", "role", "date", "check_in", "check_out", "status", "hours", "created_at", "updated_at"}

func TestPGRepository_ReplaceByDate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM attendance WHERE date = \$1`).
		WithArgs("2024-06-01").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`INSERT INTO attendance`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := repo.ReplaceByDate(context.Background(), "2024-06-01", []model.AttendanceRecord{
		{Name: "A", Role: "Tech", CheckIn: "08:00", CheckOut: "17:00", Status: model.StatusPresent, Hours: "9h"},
		{Name: "B", Role: "Tech", CheckIn: model.NoTime, CheckOut: model.NoTime, Status: model.StatusAbsent, Hours: "0h"},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepository_ReplaceByDate_KeepsRecordIDs(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM attendance WHERE date = \$1`).
		WithArgs("2024-06-01").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO attendance \(id, name`).
		WithArgs(
			int64(10), "Amit Verma", "CT Technician", "2024-06-01", "08:00", "17:00", "Present", "9h", sqlmock.AnyArg(), sqlmock.AnyArg(),
			int64(11), "Neha Gupta", "Ultrasound Technician", "2024-06-01", nil, nil, "Absent", "0h", sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := repo.ReplaceByDate(context.Background(), "2024-06-01", []model.AttendanceRecord{
		{ID: 10, Name: "Amit Verma", Role: "CT Technician", CheckIn: "08:00", CheckOut: "17:00", Status: model.StatusPresent, Hours: "9h"},
		{Name: "Neha Gupta", Role: "Ultrasound Technician", CheckIn: model.NoTime, CheckOut: model.NoTime, Status: model.StatusAbsent, Hours: "0h"},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepository_ReplaceByDate_RollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM attendance`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO attendance`).WillReturnError(errors.New("unique violation"))
	mock.ExpectRollback()

	err := repo.ReplaceByDate(context.Background(), "2024-06-01", []model.AttendanceRecord{{Name: "A", Status: model.StatusPresent}})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepository_FindByDate_NullTimes(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGRepository(db)

	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	now := time.Now()
	mock.ExpectQuery(`FROM attendance WHERE date = \$1 ORDER BY name`).
		WithArgs("2024-06-01").
		WillReturnRows(sqlmock.NewRows(rowColumns).
			AddRow(1, "Amit Verma", "CT Technician", day, nil, nil, "Absent", "0h", now, now).
			AddRow(2, "Neha Gupta", "Ultrasound Technician", day, "08:15", "17:15", "Present", "9h", now, now))

	got, err := repo.FindByDate(context.Background(), "2024-06-01")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, model.NoTime, got[0].CheckIn)
	assert.Equal(t, model.NoTime, got[0].CheckOut)
	assert.Equal(t, "2024-06-01", got[0].Date)
	assert.Equal(t, "08:15", got[1].CheckIn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepository_FindAll_GroupsByDate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGRepository(db)

	now := time.Now()
	mock.ExpectQuery(`FROM attendance ORDER BY date DESC, name`).
		WillReturnRows(sqlmock.NewRows(rowColumns).
			AddRow(3, "A", "Tech", time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), "08:00", "17:00", "Present", "9h", now, now).
			AddRow(1, "A", "Tech", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), "08:00", "17:00", "Present", "9h", now, now).
			AddRow(2, "B", "Tech", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), "09:30", "17:00", "Late", "8h", now, now))

	got, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Len(t, got["2024-06-01"], 2)
	assert.Equal(t, []string{"2024-06-02", "2024-06-01"}, got.Dates())
}
