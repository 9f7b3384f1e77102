package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bharatsutharx/radiology-center-2/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

// attendanceRow mirrors the attendance table. Unset times are stored as NULL.
type attendanceRow struct {
	ID        int64          `db:"id"`
	Name      string         `db:"name"`
	Role      string         `db:"role"`
	Date      time.Time      `db:"date"`
	CheckIn   sql.NullString `db:"check_in"`
	CheckOut  sql.NullString `db:"check_out"`
	Status    string         `db:"status"`
	Hours     string         `db:"hours"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

type attendanceInsert struct {
	ID        int64          `db:"id"`
	Name      string         `db:"name"`
	Role      string         `db:"role"`
	Date      string         `db:"date"`
	CheckIn   sql.NullString `db:"check_in"`
	CheckOut  sql.NullString `db:"check_out"`
	Status    string         `db:"status"`
	Hours     string         `db:"hours"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

const selectColumns = `id, name, role, date, check_in, check_out, status, hours, created_at, updated_at`

func (row attendanceRow) toModel() model.AttendanceRecord {
	return model.AttendanceRecord{
		ID:        row.ID,
		Name:      row.Name,
		Role:      row.Role,
		Date:      row.Date.Format(model.DateLayout),
		CheckIn:   fromNullTime(row.CheckIn),
		CheckOut:  fromNullTime(row.CheckOut),
		Status:    model.AttendanceStatus(row.Status),
		Hours:     row.Hours,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func fromNullTime(v sql.NullString) string {
	if !v.Valid || v.String == "" {
		return model.NoTime
	}
	return v.String
}

func toNullTime(v string) sql.NullString {
	if v == "" || v == model.NoTime {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}

// ReplaceByDate deletes the day's roster and inserts records in one transaction,
// so readers never see the day empty mid-replace. Record ids are kept; records
// without one get the next id of the day.
func (r *PGRepository) ReplaceByDate(ctx context.Context, date string, records []model.AttendanceRecord) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM attendance WHERE date = $1`, date); err != nil {
		return fmt.Errorf("failed to clear attendance for %s: %w", date, err)
	}

	if len(records) > 0 {
		now := time.Now()
		rows := make([]attendanceInsert, len(records))
		for i, rec := range model.AssignRecordIDs(records) {
			createdAt := rec.CreatedAt
			if createdAt.IsZero() {
				createdAt = now
			}
			rows[i] = attendanceInsert{
				ID:        rec.ID,
				Name:      rec.Name,
				Role:      rec.Role,
				Date:      date,
				CheckIn:   toNullTime(rec.CheckIn),
				CheckOut:  toNullTime(rec.CheckOut),
				Status:    string(rec.Status),
				Hours:     rec.Hours,
				CreatedAt: createdAt,
				UpdatedAt: now,
			}
		}

		insertQuery := `
        INSERT INTO attendance (id, name, role, date, check_in, check_out, status, hours, created_at, updated_at)
        VALUES (:id, :name, :role, :date, :check_in, :check_out, :status, :hours, :created_at, :updated_at)
    `
		if _, err := tx.NamedExecContext(ctx, insertQuery, rows); err != nil {
			return fmt.Errorf("failed to insert attendance for %s: %w", date, err)
		}
	}

	return tx.Commit()
}

func (r *PGRepository) FindByDate(ctx context.Context, date string) ([]model.AttendanceRecord, error) {
	var rows []attendanceRow
	query := `SELECT ` + selectColumns + ` FROM attendance WHERE date = $1 ORDER BY name`
	if err := r.DB.SelectContext(ctx, &rows, query, date); err != nil {
		return nil, err
	}

	records := make([]model.AttendanceRecord, len(rows))
	for i, row := range rows {
		records[i] = row.toModel()
	}
	return records, nil
}

func (r *PGRepository) FindAll(ctx context.Context) (model.AttendanceLog, error) {
	var rows []attendanceRow
	query := `SELECT ` + selectColumns + ` FROM attendance ORDER BY date DESC, name`
	if err := r.DB.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	grouped := model.AttendanceLog{}
	for _, row := range rows {
		rec := row.toModel()
		grouped[rec.Date] = append(grouped[rec.Date], rec)
	}
	return grouped, nil
}
