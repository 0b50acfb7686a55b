package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/iliyamo/billiard-table-reservation/internal/availability"
    "github.com/iliyamo/billiard-table-reservation/internal/model"
)

// ReservationRepo provides CRUD operations for reservations.  Lifecycle
// transitions run several dependent writes, so every mutating method has a
// Tx variant taking an existing transaction; the caller commits or rolls
// back.  All timestamp columns are stored in UTC; dates and slot times are
// stored as plain "2006-01-02" / "15:04" strings because the booking grid
// works in whole slots.
type ReservationRepo struct {
    db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = `id, reservation_no, user_id, table_id, billiard_type,
    reservation_date, start_time, end_time, duration_hours, total_bill_cents,
    payment_method, payment_type, payment_status, status,
    reference_no, reject_reason, reject_comment, rejected_by_role,
    created_at, updated_at`

// scanReservation reads one row selected with reservationColumns.
func scanReservation(row interface{ Scan(...any) error }) (*model.Reservation, error) {
    var res model.Reservation
    var status string
    var refNo, reason, comment, byRole sql.NullString
    err := row.Scan(
        &res.ID, &res.ReservationNo, &res.UserID, &res.TableID, &res.BilliardType,
        &res.Date, &res.StartTime, &res.EndTime, &res.DurationHours, &res.TotalBillCents,
        &res.PaymentMethod, &res.PaymentType, &res.PaymentStatus, &status,
        &refNo, &reason, &comment, &byRole,
        &res.CreatedAt, &res.UpdatedAt,
    )
    if err != nil {
        return nil, err
    }
    res.Status = model.Status(status)
    if refNo.Valid {
        v := refNo.String
        res.ReferenceNo = &v
    }
    if reason.Valid {
        v := reason.String
        res.RejectReason = &v
    }
    if comment.Valid {
        v := comment.String
        res.RejectComment = &v
    }
    if byRole.Valid {
        v := byRole.String
        res.RejectedByRole = &v
    }
    return &res, nil
}

// CreateTx inserts a new reservation within the scope of an existing
// transaction and populates the generated ID and timestamps on the record.
// The status, end time, bill and payment status must already be derived by
// the caller.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
    const q = `INSERT INTO reservations
        (reservation_no, user_id, table_id, billiard_type,
         reservation_date, start_time, end_time, duration_hours, total_bill_cents,
         payment_method, payment_type, payment_status, status, reference_no)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    var refNo any
    if res.ReferenceNo != nil {
        refNo = *res.ReferenceNo
    }
    result, err := tx.ExecContext(ctx, q,
        res.ReservationNo, res.UserID, res.TableID, res.BilliardType,
        res.Date, res.StartTime, res.EndTime, res.DurationHours, res.TotalBillCents,
        res.PaymentMethod, res.PaymentType, res.PaymentStatus, string(res.Status), refNo,
    )
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    res.ID = uint64(id)
    // Query back the row to populate timestamps and defaults
    const sel = `SELECT created_at, updated_at FROM reservations WHERE id = ?`
    return tx.QueryRowContext(ctx, sel, res.ID).Scan(&res.CreatedAt, &res.UpdatedAt)
}

// Get returns a reservation by id.  sql.ErrNoRows when it does not exist.
func (r *ReservationRepo) Get(ctx context.Context, id uint64) (*model.Reservation, error) {
    return scanReservation(r.db.QueryRowContext(ctx,
        `SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, id))
}

// GetForUpdateTx loads a reservation inside a transaction with a row lock so
// a transition reads the current status immediately before mutating it and
// concurrent transitions on the same reservation serialize.
func (r *ReservationRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Reservation, error) {
    return scanReservation(tx.QueryRowContext(ctx,
        `SELECT `+reservationColumns+` FROM reservations WHERE id = ? FOR UPDATE`, id))
}

// GetByNumberForUpdateTx is GetForUpdateTx keyed by the human-facing
// reservation number, used by the check-in flow where only the decoded
// booking reference is known.
func (r *ReservationRepo) GetByNumberForUpdateTx(ctx context.Context, tx *sql.Tx, reservationNo string) (*model.Reservation, error) {
    return scanReservation(tx.QueryRowContext(ctx,
        `SELECT `+reservationColumns+` FROM reservations WHERE reservation_no = ? FOR UPDATE`, reservationNo))
}

// activeStatusPlaceholders builds the IN (...) fragment and args for the
// statuses that occupy a table.
func activeStatusPlaceholders() (string, []any) {
    ph := make([]string, 0, len(model.ActiveStatuses))
    args := make([]any, 0, len(model.ActiveStatuses))
    for _, s := range model.ActiveStatuses {
        ph = append(ph, "?")
        args = append(args, string(s))
    }
    return strings.Join(ph, ","), args
}

// ActiveIntervalsTx returns the booked [start,end) intervals for a table and
// date, considering only statuses that occupy the slot.  excludeID skips one
// reservation (used when re-validating a reschedule against the proposal's
// own original).  The scan runs FOR UPDATE so that, with an index on
// (table_id, reservation_date), InnoDB next-key locks serialize concurrent
// writers probing the same table and day — this closes the check-then-write
// window described in the concurrency model.
func (r *ReservationRepo) ActiveIntervalsTx(ctx context.Context, tx *sql.Tx, tableID uint64, date string, excludeID uint64) ([]availability.Interval, error) {
    ph, args := activeStatusPlaceholders()
    q := `SELECT start_time, end_time FROM reservations
          WHERE table_id = ? AND reservation_date = ? AND status IN (` + ph + `) AND id <> ?
          FOR UPDATE`
    all := append([]any{tableID, date}, args...)
    all = append(all, excludeID)
    rows, err := tx.QueryContext(ctx, q, all...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    return scanIntervals(rows)
}

// ActiveIntervals is the lock-free variant used by the read-only slot
// listing endpoint.
func (r *ReservationRepo) ActiveIntervals(ctx context.Context, tableID uint64, date string) ([]availability.Interval, error) {
    ph, args := activeStatusPlaceholders()
    q := `SELECT start_time, end_time FROM reservations
          WHERE table_id = ? AND reservation_date = ? AND status IN (` + ph + `)`
    rows, err := r.db.QueryContext(ctx, q, append([]any{tableID, date}, args...)...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    return scanIntervals(rows)
}

func scanIntervals(rows *sql.Rows) ([]availability.Interval, error) {
    intervals := make([]availability.Interval, 0)
    for rows.Next() {
        var start, end string
        if err := rows.Scan(&start, &end); err != nil {
            return nil, err
        }
        s, err := availability.ParseClock(start)
        if err != nil {
            return nil, err
        }
        e, err := availability.ParseClock(end)
        if err != nil {
            return nil, err
        }
        intervals = append(intervals, availability.Interval{Start: s, End: e})
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return intervals, nil
}

// ApproveTx applies the approval effects: status, payment status and the
// confirmed or synthesized reference number.
func (r *ReservationRepo) ApproveTx(ctx context.Context, tx *sql.Tx, id uint64, paymentStatus, referenceNo string) error {
    const q = `UPDATE reservations
               SET status = ?, payment_status = ?, reference_no = ?
               WHERE id = ?`
    _, err := tx.ExecContext(ctx, q, string(model.StatusApproved), paymentStatus, referenceNo, id)
    return err
}

// RejectTx marks a reservation rejected with the catalog reason, optional
// comment and the acting role.
func (r *ReservationRepo) RejectTx(ctx context.Context, tx *sql.Tx, id uint64, reason, comment string, byRole model.Role) error {
    const q = `UPDATE reservations
               SET status = ?, reject_reason = ?, reject_comment = ?, rejected_by_role = ?
               WHERE id = ?`
    _, err := tx.ExecContext(ctx, q, string(model.StatusRejected), reason, nullable(comment), string(byRole), id)
    return err
}

// UpdateStatusTx changes only the status column (cancel, complete).
func (r *ReservationRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status model.Status) error {
    _, err := tx.ExecContext(ctx, `UPDATE reservations SET status = ? WHERE id = ?`, string(status), id)
    return err
}

// ForcePendingTx pushes a reservation back to pending after a rejected
// reschedule, annotating it with the decision's reason, comment and acting
// role regardless of the reservation's prior status.
func (r *ReservationRepo) ForcePendingTx(ctx context.Context, tx *sql.Tx, id uint64, reason, comment string, byRole model.Role) error {
    const q = `UPDATE reservations
               SET status = ?, reject_reason = ?, reject_comment = ?, rejected_by_role = ?
               WHERE id = ?`
    _, err := tx.ExecContext(ctx, q, string(model.StatusPending), reason, nullable(comment), string(byRole), id)
    return err
}

// OverwriteScheduleTx replaces a reservation's table, schedule and bill with
// an approved reschedule proposal's values and sets the status to approved.
func (r *ReservationRepo) OverwriteScheduleTx(ctx context.Context, tx *sql.Tx, id, tableID uint64, billiardType, date, start, end string, durationHours int, totalBillCents uint32) error {
    const q = `UPDATE reservations
               SET table_id = ?, billiard_type = ?, reservation_date = ?,
                   start_time = ?, end_time = ?, duration_hours = ?, total_bill_cents = ?,
                   status = ?
               WHERE id = ?`
    _, err := tx.ExecContext(ctx, q, tableID, billiardType, date, start, end,
        durationHours, totalBillCents, string(model.StatusApproved), id)
    return err
}

// ListByUser returns all reservations owned by the given user, newest
// first.  When none exist an empty slice is returned.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]*model.Reservation, error) {
    q := `SELECT ` + reservationColumns + ` FROM reservations WHERE user_id = ? ORDER BY created_at DESC`
    rows, err := r.db.QueryContext(ctx, q, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    return collectReservations(rows)
}

// ListFilter narrows the staff feed.  Empty fields are ignored; From/To
// bound the reservation date inclusively.  This query also backs the
// read-only report/export consumer.
type ListFilter struct {
    Status string
    From   string
    To     string
}

// ListByFilter returns reservations matching the filter, newest first.
func (r *ReservationRepo) ListByFilter(ctx context.Context, f ListFilter) ([]*model.Reservation, error) {
    q := `SELECT ` + reservationColumns + ` FROM reservations WHERE 1=1`
    args := make([]any, 0, 3)
    if f.Status != "" {
        q += ` AND status = ?`
        args = append(args, f.Status)
    }
    if f.From != "" {
        q += ` AND reservation_date >= ?`
        args = append(args, f.From)
    }
    if f.To != "" {
        q += ` AND reservation_date <= ?`
        args = append(args, f.To)
    }
    q += ` ORDER BY created_at DESC`
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    return collectReservations(rows)
}

func collectReservations(rows *sql.Rows) ([]*model.Reservation, error) {
    out := make([]*model.Reservation, 0)
    for rows.Next() {
        res, err := scanReservation(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, res)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// nullable maps an empty string to SQL NULL.
func nullable(s string) any {
    if s == "" {
        return nil
    }
    return s
}
