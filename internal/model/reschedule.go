package model

import "time"

// Reschedule request states.  A request is reviewed independently of the
// reservation it targets: approval overwrites the reservation in place and
// deletes the request row, rejection keeps the row for the audit trail and
// forces the reservation back to pending.
const (
    ReschedulePending  = "pending"
    RescheduleApproved = "approved"
    RescheduleRejected = "rejected"
)

// RescheduleRequest is a customer's proposal to move an existing
// reservation to another table, date or time.  Creating one never mutates
// the original reservation; only a staff decision does.
//
// Fields:
//  ID                – primary key identifier.
//  ReservationID     – reservation the proposal targets.
//  UserID            – requesting customer account.
//  TableID           – proposed table.
//  BilliardType      – billiard type of the proposed table.
//  Date              – proposed date, "2006-01-02".
//  StartTime         – proposed slot start, "15:04".
//  DurationHours     – proposed whole hours.
//  TotalBillCents    – proposed table's rate × duration, in cents.
//  Status            – pending/approved/rejected.
//  RejectReason      – catalog reason recorded on rejection (nullable).
//  RejectComment     – optional free-text detail (nullable).
//  CreatedAt         – creation timestamp.
//  UpdatedAt         – last update timestamp.
type RescheduleRequest struct {
    ID             uint64    // reschedule_requests.id
    ReservationID  uint64    // reschedule_requests.reservation_id
    UserID         uint64    // reschedule_requests.user_id
    TableID        uint64    // reschedule_requests.table_id
    BilliardType   string    // reschedule_requests.billiard_type
    Date           string    // reschedule_requests.reservation_date
    StartTime      string    // reschedule_requests.start_time
    DurationHours  int       // reschedule_requests.duration_hours
    TotalBillCents uint32    // reschedule_requests.total_bill_cents
    Status         string    // reschedule_requests.status
    RejectReason   *string   // reschedule_requests.reject_reason (nullable)
    RejectComment  *string   // reschedule_requests.reject_comment (nullable)
    CreatedAt      time.Time // reschedule_requests.created_at
    UpdatedAt      time.Time // reschedule_requests.updated_at
}
