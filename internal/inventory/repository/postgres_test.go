package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bharatsutharx/radiology-center-2/internal/inventory"
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

var (
	itemCols    = []string{"id", "name", "category", "quantity", "min_stock", "unit", "status", "last_updated"}
	historyCols = []string{"inventory_id", "action", "quantity", "previous_quantity", "reason", "updated_by", "created_at"}
)

func TestPGRepository_SaveWithHistory(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGRepository(db)
	at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	prev := 15
	item := &model.InventoryItem{ID: 3, Name: "Gloves", Quantity: 25, MinStock: 20, Status: model.StockIn, LastUpdated: at}
	entry := &model.InventoryHistoryEntry{Date: at, Action: model.ActionAdded, Quantity: 10, PreviousQuantity: &prev, Reason: "New shipment", UpdatedBy: "Admin"}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE inventory SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO inventory_history`).
		WithArgs(int64(3), "added", 10, sql.NullInt64{Int64: 15, Valid: true}, "New shipment", "Admin", at).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.SaveWithHistory(context.Background(), item, entry))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepository_SaveWithHistory_Missing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE inventory SET`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.SaveWithHistory(context.Background(), &model.InventoryItem{ID: 9}, nil)
	assert.ErrorIs(t, err, inventory.ErrItemNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGRepository(db)
	at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectPrepare(`INSERT INTO inventory \(name`).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(12)))
	mock.ExpectExec(`INSERT INTO inventory_history`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	item := &model.InventoryItem{Name: "Gel", Quantity: 8, MinStock: 25, Status: model.StockLow, LastUpdated: at}
	entry := &model.InventoryHistoryEntry{Date: at, Action: model.ActionAdded, Quantity: 8, Reason: "Initial stock", UpdatedBy: "Admin"}

	require.NoError(t, repo.Create(context.Background(), item, entry))
	assert.Equal(t, int64(12), item.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepository_FindByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGRepository(db)
	at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .+ FROM inventory WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(itemCols).AddRow(int64(3), "Gloves", "Safety Equipment", 25, 20, "Boxes", model.StockIn, at))
	mock.ExpectQuery(`SELECT .+ FROM inventory_history WHERE inventory_id = \$1`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(historyCols).
			AddRow(int64(3), "added", 10, int64(15), "New shipment", "Admin", at).
			AddRow(int64(3), "added", 15, nil, "Initial stock", "Admin", at.Add(-time.Hour)))

	item, err := repo.FindByID(context.Background(), 3)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "Gloves", item.Name)
	require.Len(t, item.History, 2)
	require.NotNil(t, item.History[0].PreviousQuantity)
	assert.Equal(t, 15, *item.History[0].PreviousQuantity)
	assert.Nil(t, item.History[1].PreviousQuantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepository_FindByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM inventory WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(itemCols))

	item, err := repo.FindByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestPGRepository_ListHistory(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGRepository(db)
	at := time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM inventory_history\s+WHERE created_at::date BETWEEN \$1 AND \$2`).
		WithArgs("2024-06-01", "2024-06-30").
		WillReturnRows(sqlmock.NewRows(historyCols).AddRow(int64(1), "removed", 2, int64(7), "Used", "Dr. Sharma", at))

	entries, err := repo.ListHistory(context.Background(), "2024-06-01", "2024-06-30")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].InventoryID)
	assert.Equal(t, model.ActionRemoved, entries[0].Action)
}

func TestPGRepository_ReplaceAll(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGRepository(db)
	at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM inventory WHERE NOT \(id = ANY\(\$1\)\)`).
		WithArgs("{3}").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`(?s)INSERT INTO inventory \(id, name.+ON CONFLICT \(id\) DO UPDATE`).
		WithArgs(int64(3), "Gloves", "Safety Equipment", 25, 20, "Boxes", model.StockIn, at).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectPrepare(`INSERT INTO inventory \(name`).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(8)))
	mock.ExpectExec(`SELECT setval\('inventory_id_seq', GREATEST\(\s*\(SELECT COALESCE\(MAX\(id\), 0\) FROM inventory\),\s*\(SELECT last_value FROM inventory_id_seq\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.ReplaceAll(context.Background(), []model.InventoryItem{
		{ID: 3, Name: "Gloves", Category: "Safety Equipment", Quantity: 25, MinStock: 20, Unit: "Boxes", Status: model.StockIn, LastUpdated: at},
		{Name: "Gel", Category: "Medical Supplies", Quantity: 8, MinStock: 25, Unit: "Bottles", Status: model.StockLow, LastUpdated: at},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepository_ReplaceAll_EmptyPrunesEverything(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM inventory WHERE NOT \(id = ANY\(\$1\)\)`).
		WithArgs("{}").
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectExec(`SELECT setval`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.ReplaceAll(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepository_ReplaceAll_RollsBackOnUpsertError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM inventory`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO inventory \(id, name`).WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	err := repo.ReplaceAll(context.Background(), []model.InventoryItem{{ID: 1, Name: "Gloves"}})
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGRepository_FindAll_JoinsHistoryNewestFirst(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPGRepository(db)
	at := time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .+ FROM inventory ORDER BY id`).
		WillReturnRows(sqlmock.NewRows(itemCols).
			AddRow(int64(1), "Gloves", "Safety Equipment", 25, 20, "Boxes", model.StockIn, at).
			AddRow(int64(2), "Gel", "Medical Supplies", 8, 25, "Bottles", model.StockLow, at).
			AddRow(int64(3), "Film", "Imaging", 40, 10, "Packs", model.StockIn, at))
	mock.ExpectQuery(`SELECT .+ FROM inventory_history ORDER BY created_at DESC, id DESC`).
		WillReturnRows(sqlmock.NewRows(historyCols).
			AddRow(int64(1), "added", 10, int64(15), "New shipment", "Admin", at).
			AddRow(int64(9), "added", 4, nil, "Initial stock", "Admin", at.Add(-time.Hour)).
			AddRow(int64(2), "added", 8, nil, "Initial stock", "Admin", at.Add(-2*time.Hour)).
			AddRow(int64(1), "added", 15, nil, "Initial stock", "Admin", at.Add(-3*time.Hour)))

	items, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)

	require.Len(t, items[0].History, 2)
	assert.Equal(t, "New shipment", items[0].History[0].Reason)
	assert.Equal(t, "Initial stock", items[0].History[1].Reason)
	assert.True(t, items[0].History[0].Date.After(items[0].History[1].Date))

	require.Len(t, items[1].History, 1)
	assert.Equal(t, int64(2), items[1].History[0].InventoryID)

	assert.NotNil(t, items[2].History)
	assert.Empty(t, items[2].History)
	assert.NoError(t, mock.ExpectationsWereMet())
}
