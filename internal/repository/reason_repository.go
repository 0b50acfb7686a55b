package repository

import (
    "context"
    "database/sql"
)

// Reason catalog kinds.  Two externally configured lists drive the
// rejection flows: one for reservations, one for reschedule proposals.
const (
    ReasonKindReservation = "reservation"
    ReasonKindReschedule  = "reschedule"
)

// Hard-coded fallbacks used when the catalog table is empty or unreadable,
// so staff can always reject with a meaningful reason.
var (
    fallbackReservationReasons = []string{
        "Table Not Available",
        "Invalid Payment Reference",
        "Duplicate Booking",
        "Facility Closed",
    }
    fallbackRescheduleReasons = []string{
        "Table Not Available",
        "Requested Slot Conflicts",
        "Outside Business Hours",
    }
)

// ReasonRepo reads the configurable rejection-reason catalogs.
type ReasonRepo struct {
    db *sql.DB
}

// NewReasonRepo returns a new ReasonRepo bound to the given database.
func NewReasonRepo(db *sql.DB) *ReasonRepo { return &ReasonRepo{db: db} }

// ListByKind returns the catalog for a kind.  When the table is empty or
// the query fails, the hard-coded fallback list for that kind is returned
// instead; rejections must never be blocked by a missing catalog.
func (r *ReasonRepo) ListByKind(ctx context.Context, kind string) []string {
    rows, err := r.db.QueryContext(ctx,
        `SELECT label FROM reject_reasons WHERE kind = ? ORDER BY id`, kind)
    if err != nil {
        return fallback(kind)
    }
    defer rows.Close()
    var out []string
    for rows.Next() {
        var label string
        if err := rows.Scan(&label); err != nil {
            return fallback(kind)
        }
        out = append(out, label)
    }
    if err := rows.Err(); err != nil || len(out) == 0 {
        return fallback(kind)
    }
    return out
}

func fallback(kind string) []string {
    if kind == ReasonKindReschedule {
        return fallbackRescheduleReasons
    }
    return fallbackReservationReasons
}
