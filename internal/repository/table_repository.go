package repository

import (
    "context"
    "database/sql"
)

// TableRepo provides read and admin write access to the static table
// inventory.  Tables carry the billiard type and the hourly rate that
// prices every reservation; the availability checker treats the inventory
// as read-only input.
type TableRepo struct {
    db *sql.DB
}

// NewTableRepo returns a new TableRepo bound to the given database.
func NewTableRepo(db *sql.DB) *TableRepo { return &TableRepo{db: db} }

// TableRecord mirrors the schema of the tables table.
type TableRecord struct {
    ID              uint64 `json:"id"`
    BilliardType    string `json:"billiard_type"`
    HourlyRateCents uint32 `json:"hourly_rate_cents"`
    Status          string `json:"status"`
}

// List returns all tables ordered by id.  It backs the public inventory
// endpoint, so only the pricing-relevant columns are selected.
func (r *TableRepo) List(ctx context.Context) ([]TableRecord, error) {
    const q = `SELECT id, billiard_type, hourly_rate_cents, status FROM tables ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]TableRecord, 0)
    for rows.Next() {
        var t TableRecord
        if err := rows.Scan(&t.ID, &t.BilliardType, &t.HourlyRateCents, &t.Status); err != nil {
            return nil, err
        }
        out = append(out, t)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// Get returns a single table by id.  sql.ErrNoRows is returned when the
// table does not exist.
func (r *TableRepo) Get(ctx context.Context, id uint64) (*TableRecord, error) {
    const q = `SELECT id, billiard_type, hourly_rate_cents, status FROM tables WHERE id = ?`
    var t TableRecord
    if err := r.db.QueryRowContext(ctx, q, id).Scan(&t.ID, &t.BilliardType, &t.HourlyRateCents, &t.Status); err != nil {
        return nil, err
    }
    return &t, nil
}

// GetTx is Get executed inside an existing transaction, used when a booking
// needs the table's rate and status under the same snapshot as the
// availability probe.
func (r *TableRepo) GetTx(ctx context.Context, tx *sql.Tx, id uint64) (*TableRecord, error) {
    const q = `SELECT id, billiard_type, hourly_rate_cents, status FROM tables WHERE id = ?`
    var t TableRecord
    if err := tx.QueryRowContext(ctx, q, id).Scan(&t.ID, &t.BilliardType, &t.HourlyRateCents, &t.Status); err != nil {
        return nil, err
    }
    return &t, nil
}

// Create inserts a new table and returns its generated id.
func (r *TableRepo) Create(ctx context.Context, billiardType string, hourlyRateCents uint32, status string) (uint64, error) {
    const q = `INSERT INTO tables (billiard_type, hourly_rate_cents, status) VALUES (?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, billiardType, hourlyRateCents, status)
    if err != nil {
        return 0, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return 0, err
    }
    return uint64(id), nil
}

// Update overwrites a table's billiard type, rate and operational status.
// sql.ErrNoRows is returned when no row was touched.
func (r *TableRepo) Update(ctx context.Context, id uint64, billiardType string, hourlyRateCents uint32, status string) error {
    const q = `UPDATE tables SET billiard_type = ?, hourly_rate_cents = ?, status = ? WHERE id = ?`
    res, err := r.db.ExecContext(ctx, q, billiardType, hourlyRateCents, status, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return sql.ErrNoRows
    }
    return nil
}
