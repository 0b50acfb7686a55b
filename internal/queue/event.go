// Package queue defines message payloads exchanged over the message broker.
package queue

// Actions carried by ReservationEvent.  One event is published per decided
// transition; creation and cancellation stay internal.
const (
    ActionApproved           = "approved"
    ActionRejected           = "rejected"
    ActionCheckedIn          = "checked_in"
    ActionCompleted          = "completed"
    ActionRescheduleApproved = "reschedule_approved"
    ActionRescheduleRejected = "reschedule_rejected"
)

// ReservationEvent is published after a reservation or reschedule decision
// commits.  It contains enough information for downstream consumers to log,
// notify, or trigger analytics without querying the primary database.
type ReservationEvent struct {
    ReservationNo string `json:"reservation_no"`
    UserID        uint64 `json:"user_id"`
    TableID       uint64 `json:"table_id"`
    Action        string `json:"action"`
    ReferenceNo   string `json:"reference_no,omitempty"`
    Reason        string `json:"reason,omitempty"`
    ActingRole    string `json:"acting_role,omitempty"`
    OccurredAt    string `json:"occurred_at"`
}
