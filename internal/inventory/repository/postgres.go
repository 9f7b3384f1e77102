package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bharatsutharx/radiology-center-2/internal/inventory"
	"github.com/bharatsutharx/radiology-center-2/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

type itemRow struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Category    string    `db:"category"`
	Quantity    int       `db:"quantity"`
	MinStock    int       `db:"min_stock"`
	Unit        string    `db:"unit"`
	Status      string    `db:"status"`
	LastUpdated time.Time `db:"last_updated"`
}

type historyRow struct {
	InventoryID      int64         `db:"inventory_id"`
	Action           string        `db:"action"`
	Quantity         int           `db:"quantity"`
	PreviousQuantity sql.NullInt64 `db:"previous_quantity"`
	Reason           string        `db:"reason"`
	UpdatedBy        string        `db:"updated_by"`
	CreatedAt        time.Time     `db:"created_at"`
}

const (
	itemColumns    = `id, name, category, quantity, min_stock, unit, status, last_updated`
	historyColumns = `inventory_id, action, quantity, previous_quantity, reason, updated_by, created_at`
)

func newItemRow(item *model.InventoryItem) itemRow {
	return itemRow{
		ID:          item.ID,
		Name:        item.Name,
		Category:    item.Category,
		Quantity:    item.Quantity,
		MinStock:    item.MinStock,
		Unit:        item.Unit,
		Status:      item.Status,
		LastUpdated: item.LastUpdated,
	}
}

func (row itemRow) toModel() model.InventoryItem {
	return model.InventoryItem{
		ID:          row.ID,
		Name:        row.Name,
		Category:    row.Category,
		Quantity:    row.Quantity,
		MinStock:    row.MinStock,
		Unit:        row.Unit,
		Status:      row.Status,
		LastUpdated: row.LastUpdated,
		History:     []model.InventoryHistoryEntry{},
	}
}

func newHistoryRow(itemID int64, e *model.InventoryHistoryEntry) historyRow {
	row := historyRow{
		InventoryID: itemID,
		Action:      string(e.Action),
		Quantity:    e.Quantity,
		Reason:      e.Reason,
		UpdatedBy:   e.UpdatedBy,
		CreatedAt:   e.Date,
	}
	if e.PreviousQuantity != nil {
		row.PreviousQuantity = sql.NullInt64{Int64: int64(*e.PreviousQuantity), Valid: true}
	}
	return row
}

func (row historyRow) toModel() model.InventoryHistoryEntry {
	e := model.InventoryHistoryEntry{
		InventoryID: row.InventoryID,
		Date:        row.CreatedAt,
		Action:      model.HistoryAction(row.Action),
		Quantity:    row.Quantity,
		Reason:      row.Reason,
		UpdatedBy:   row.UpdatedBy,
	}
	if row.PreviousQuantity.Valid {
		prev := int(row.PreviousQuantity.Int64)
		e.PreviousQuantity = &prev
	}
	return e
}

const syncSequenceQuery = `
    SELECT setval('inventory_id_seq', GREATEST(
        (SELECT COALESCE(MAX(id), 0) FROM inventory),
        (SELECT last_value FROM inventory_id_seq),
        1
    ))
`

const insertHistoryQuery = `
    INSERT INTO inventory_history (` + historyColumns + `)
    VALUES (:inventory_id, :action, :quantity, :previous_quantity, :reason, :updated_by, :created_at)
`

// ReplaceAll makes the inventory table equal to items: rows missing from
// items are deleted, the rest are upserted by id. The history ledger is not
// touched.
func (r *PGRepository) ReplaceAll(ctx context.Context, items []model.InventoryItem) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	keep := make([]int64, 0, len(items))
	for _, item := range items {
		if item.ID > 0 {
			keep = append(keep, item.ID)
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM inventory WHERE NOT (id = ANY($1))`, pq.Array(keep)); err != nil {
		return fmt.Errorf("failed to prune inventory: %w", err)
	}

	upsertQuery := `
        INSERT INTO inventory (` + itemColumns + `)
        VALUES (:id, :name, :category, :quantity, :min_stock, :unit, :status, :last_updated)
        ON CONFLICT (id) DO UPDATE SET
            name = EXCLUDED.name,
            category = EXCLUDED.category,
            quantity = EXCLUDED.quantity,
            min_stock = EXCLUDED.min_stock,
            unit = EXCLUDED.unit,
            status = EXCLUDED.status,
            last_updated = EXCLUDED.last_updated
    `
	for i := range items {
		row := newItemRow(&items[i])
		if row.ID == 0 {
			if err := insertItem(ctx, tx, &row); err != nil {
				return err
			}
			continue
		}
		if _, err := tx.NamedExecContext(ctx, upsertQuery, row); err != nil {
			return fmt.Errorf("failed to upsert inventory item %d: %w", row.ID, err)
		}
	}

	// Explicit ids bypass the sequence; move it past them. It never moves
	// back, so a removed item's id and its ledger rows are not reused.
	if _, err := tx.ExecContext(ctx, syncSequenceQuery); err != nil {
		return fmt.Errorf("failed to sync inventory id sequence: %w", err)
	}

	return tx.Commit()
}

func insertItem(ctx context.Context, tx *sqlx.Tx, row *itemRow) error {
	stmt, err := tx.PrepareNamedContext(ctx, `
        INSERT INTO inventory (name, category, quantity, min_stock, unit, status, last_updated)
        VALUES (:name, :category, :quantity, :min_stock, :unit, :status, :last_updated)
        RETURNING id
    `)
	if err != nil {
		return err
	}
	defer stmt.Close()

	if err := stmt.GetContext(ctx, &row.ID, row); err != nil {
		return fmt.Errorf("failed to insert inventory item %q: %w", row.Name, err)
	}
	return nil
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.InventoryItem, error) {
	var rows []itemRow
	if err := r.DB.SelectContext(ctx, &rows, `SELECT `+itemColumns+` FROM inventory ORDER BY id`); err != nil {
		return nil, err
	}

	var history []historyRow
	if err := r.DB.SelectContext(ctx, &history,
		`SELECT `+historyColumns+` FROM inventory_history ORDER BY created_at DESC, id DESC`,
	); err != nil {
		return nil, err
	}

	items := make([]model.InventoryItem, len(rows))
	index := make(map[int64]int, len(rows))
	for i, row := range rows {
		items[i] = row.toModel()
		index[row.ID] = i
	}
	for _, h := range history {
		if i, ok := index[h.InventoryID]; ok {
			items[i].History = append(items[i].History, h.toModel())
		}
	}
	return items, nil
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.InventoryItem, error) {
	var row itemRow
	err := r.DB.GetContext(ctx, &row, `SELECT `+itemColumns+` FROM inventory WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	var history []historyRow
	if err := r.DB.SelectContext(ctx, &history,
		`SELECT `+historyColumns+` FROM inventory_history WHERE inventory_id = $1 ORDER BY created_at DESC, id DESC`, id,
	); err != nil {
		return nil, err
	}

	item := row.toModel()
	for _, h := range history {
		item.History = append(item.History, h.toModel())
	}
	return &item, nil
}

// Create inserts item and its opening ledger entry; item.ID is set from the
// generated key.
func (r *PGRepository) Create(ctx context.Context, item *model.InventoryItem, entry *model.InventoryHistoryEntry) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	row := newItemRow(item)
	if err := insertItem(ctx, tx, &row); err != nil {
		return err
	}

	if entry != nil {
		if _, err := tx.NamedExecContext(ctx, insertHistoryQuery, newHistoryRow(row.ID, entry)); err != nil {
			return fmt.Errorf("failed to log inventory history: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	item.ID = row.ID
	return nil
}

// SaveWithHistory updates item and appends entry (if any) atomically.
func (r *PGRepository) SaveWithHistory(ctx context.Context, item *model.InventoryItem, entry *model.InventoryHistoryEntry) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.NamedExecContext(ctx, `
        UPDATE inventory SET
            name = :name,
            category = :category,
            quantity = :quantity,
            min_stock = :min_stock,
            unit = :unit,
            status = :status,
            last_updated = :last_updated
        WHERE id = :id
    `, newItemRow(item))
	if err != nil {
		return fmt.Errorf("failed to update inventory item %d: %w", item.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return inventory.ErrItemNotFound
	}

	if entry != nil {
		if _, err := tx.NamedExecContext(ctx, insertHistoryQuery, newHistoryRow(item.ID, entry)); err != nil {
			return fmt.Errorf("failed to log inventory history: %w", err)
		}
	}

	return tx.Commit()
}

// ListHistory returns ledger entries whose day falls in [startDate, endDate],
// newest first.
func (r *PGRepository) ListHistory(ctx context.Context, startDate, endDate string) ([]model.InventoryHistoryEntry, error) {
	var rows []historyRow
	query := `
        SELECT ` + historyColumns + ` FROM inventory_history
        WHERE created_at::date BETWEEN $1 AND $2
        ORDER BY created_at DESC, id DESC
    `
	if err := r.DB.SelectContext(ctx, &rows, query, startDate, endDate); err != nil {
		return nil, err
	}

	entries := make([]model.InventoryHistoryEntry, len(rows))
	for i, row := range rows {
		entries[i] = row.toModel()
	}
	return entries, nil
}
