package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/iliyamo/billiard-table-reservation/internal/model"
)

// NotificationRepo persists and retrieves notifications.  Retrieval is
// role-filtered, not merely account-filtered: the scope produced by
// roleScope is the only way rows are selected, counted or bulk-updated, so
// the list query, the unread count and mark-all-read can never diverge.
type NotificationRepo struct {
    db *sql.DB
}

// NewNotificationRepo returns a new NotificationRepo bound to the given database.
func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{db: db} }

// CreateTx inserts a notification within the transaction of the transition
// that produced it, so a status change and its message commit atomically.
func (r *NotificationRepo) CreateTx(ctx context.Context, tx *sql.Tx, n *model.Notification) error {
    const q = `INSERT INTO notifications (user_id, reservation_no, message) VALUES (?, ?, ?)`
    result, err := tx.ExecContext(ctx, q, n.UserID, n.ReservationNo, n.Message)
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    n.ID = uint64(id)
    return nil
}

// roleScope builds the WHERE fragment and arguments implementing the role
// filter for the given viewer.  The patterns come from the shared lists in
// the model package — the same lists VisibleToRole applies in memory — so
// there is exactly one definition of what each role may see.
func roleScope(viewer model.Actor) (string, []any) {
    var conds []string
    var args []any
    likeAny := func(patterns []string) string {
        parts := make([]string, 0, len(patterns))
        for _, p := range patterns {
            parts = append(parts, "LOWER(message) LIKE ?")
            args = append(args, "%"+strings.ToLower(p)+"%")
        }
        return "(" + strings.Join(parts, " OR ") + ")"
    }
    switch viewer.Role {
    case model.RoleCustomer:
        conds = append(conds, "user_id = ?")
        args = append(args, viewer.ID)
        conds = append(conds, likeAny(model.CustomerIncludePatterns))
        for _, p := range model.CustomerExcludePatterns {
            conds = append(conds, "LOWER(message) NOT LIKE ?")
            args = append(args, "%"+strings.ToLower(p)+"%")
        }
    case model.RoleManager, model.RoleFrontdesk:
        conds = append(conds, likeAny(model.StaffIncludePatterns))
        for _, p := range model.StaffExcludePatterns {
            conds = append(conds, "LOWER(message) NOT LIKE ?")
            args = append(args, "%"+strings.ToLower(p)+"%")
        }
    case model.RoleAdmin, model.RoleSuperadmin:
        conds = append(conds, "1=1")
    default:
        // unknown role sees nothing
        conds = append(conds, "1=0")
    }
    return strings.Join(conds, " AND "), args
}

// RoleScopeSQL exposes the scope for tests that assert the same predicate
// backs every notification query.
func RoleScopeSQL(viewer model.Actor) (string, []any) { return roleScope(viewer) }

// ListForViewer returns the notifications visible to the viewer under their
// role filter, newest first.
func (r *NotificationRepo) ListForViewer(ctx context.Context, viewer model.Actor) ([]*model.Notification, error) {
    scope, args := roleScope(viewer)
    q := `SELECT id, user_id, reservation_no, message, is_read, created_at
          FROM notifications WHERE ` + scope + ` ORDER BY created_at DESC`
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]*model.Notification, 0)
    for rows.Next() {
        var n model.Notification
        if err := rows.Scan(&n.ID, &n.UserID, &n.ReservationNo, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, &n)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// CountUnreadForViewer counts unread rows under the same scope the list
// query uses.
func (r *NotificationRepo) CountUnreadForViewer(ctx context.Context, viewer model.Actor) (int, error) {
    scope, args := roleScope(viewer)
    q := `SELECT COUNT(*) FROM notifications WHERE is_read = 0 AND ` + scope
    var n int
    if err := r.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
        return 0, err
    }
    return n, nil
}

// MarkAllReadForViewer flips is_read on exactly the rows visible under the
// viewer's role filter; rows outside the scope are untouched.  It returns
// the number of rows updated.
func (r *NotificationRepo) MarkAllReadForViewer(ctx context.Context, viewer model.Actor) (int64, error) {
    scope, args := roleScope(viewer)
    q := `UPDATE notifications SET is_read = 1 WHERE is_read = 0 AND ` + scope
    res, err := r.db.ExecContext(ctx, q, args...)
    if err != nil {
        return 0, err
    }
    return res.RowsAffected()
}
