package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/billiard-table-reservation/internal/model"
)

// RescheduleRepo provides access to reschedule proposals.  A proposal row is
// short-lived: approval deletes it after the original reservation has been
// overwritten, rejection keeps it with status=rejected for the audit trail.
type RescheduleRepo struct {
    db *sql.DB
}

// NewRescheduleRepo returns a new RescheduleRepo bound to the given database.
func NewRescheduleRepo(db *sql.DB) *RescheduleRepo { return &RescheduleRepo{db: db} }

const rescheduleColumns = `id, reservation_id, user_id, table_id, billiard_type,
    reservation_date, start_time, duration_hours, total_bill_cents,
    status, reject_reason, reject_comment, created_at, updated_at`

func scanReschedule(row interface{ Scan(...any) error }) (*model.RescheduleRequest, error) {
    var req model.RescheduleRequest
    var reason, comment sql.NullString
    err := row.Scan(
        &req.ID, &req.ReservationID, &req.UserID, &req.TableID, &req.BilliardType,
        &req.Date, &req.StartTime, &req.DurationHours, &req.TotalBillCents,
        &req.Status, &reason, &comment, &req.CreatedAt, &req.UpdatedAt,
    )
    if err != nil {
        return nil, err
    }
    if reason.Valid {
        v := reason.String
        req.RejectReason = &v
    }
    if comment.Valid {
        v := comment.String
        req.RejectComment = &v
    }
    return &req, nil
}

// CreateTx inserts a pending proposal within an existing transaction and
// populates the generated ID and timestamps.
func (r *RescheduleRepo) CreateTx(ctx context.Context, tx *sql.Tx, req *model.RescheduleRequest) error {
    const q = `INSERT INTO reschedule_requests
        (reservation_id, user_id, table_id, billiard_type,
         reservation_date, start_time, duration_hours, total_bill_cents, status)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
    result, err := tx.ExecContext(ctx, q,
        req.ReservationID, req.UserID, req.TableID, req.BilliardType,
        req.Date, req.StartTime, req.DurationHours, req.TotalBillCents, req.Status,
    )
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    req.ID = uint64(id)
    const sel = `SELECT created_at, updated_at FROM reschedule_requests WHERE id = ?`
    return tx.QueryRowContext(ctx, sel, req.ID).Scan(&req.CreatedAt, &req.UpdatedAt)
}

// GetForUpdateTx loads a proposal with a row lock so a decision reads its
// current status immediately before mutating it.
func (r *RescheduleRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.RescheduleRequest, error) {
    return scanReschedule(tx.QueryRowContext(ctx,
        `SELECT `+rescheduleColumns+` FROM reschedule_requests WHERE id = ? FOR UPDATE`, id))
}

// DeleteTx removes a proposal after its approval has been applied to the
// original reservation.
func (r *RescheduleRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
    _, err := tx.ExecContext(ctx, `DELETE FROM reschedule_requests WHERE id = ?`, id)
    return err
}

// RejectTx marks a proposal rejected with the catalog reason and optional
// comment.  The row is kept.
func (r *RescheduleRepo) RejectTx(ctx context.Context, tx *sql.Tx, id uint64, reason, comment string) error {
    const q = `UPDATE reschedule_requests
               SET status = ?, reject_reason = ?, reject_comment = ?
               WHERE id = ?`
    _, err := tx.ExecContext(ctx, q, model.RescheduleRejected, reason, nullable(comment), id)
    return err
}

// ListPending returns all proposals awaiting a decision, oldest first so
// staff work the queue in arrival order.
func (r *RescheduleRepo) ListPending(ctx context.Context) ([]*model.RescheduleRequest, error) {
    q := `SELECT ` + rescheduleColumns + ` FROM reschedule_requests WHERE status = ? ORDER BY created_at ASC`
    rows, err := r.db.QueryContext(ctx, q, model.ReschedulePending)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]*model.RescheduleRequest, 0)
    for rows.Next() {
        req, err := scanReschedule(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, req)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
