package model

import "time"

// Reservation is the canonical record of one table booking, tracked end to
// end through the status lifecycle.  Dates and times are stored as plain
// strings ("2006-01-02" and "15:04") because the booking grid works in
// whole local slots, not instants; EndTime is always derived as
// StartTime + DurationHours and TotalBillCents as rate × duration.
//
// Fields:
//  ID             – primary key identifier.
//  ReservationNo  – human-facing unique booking reference (RSV-XXXXXXXX).
//  UserID         – owning customer account.
//  TableID        – booked table.
//  BilliardType   – billiard type copied from the table at booking time.
//  Date           – reservation date, "2006-01-02".
//  StartTime      – slot start, "15:04".
//  EndTime        – slot end, "15:04"; equals start + duration.
//  DurationHours  – whole hours booked.
//  TotalBillCents – hourly rate × duration, in cents.
//  PaymentMethod  – "cash" or "e-wallet".
//  PaymentType    – "full payment" or "half payment".
//  PaymentStatus  – paid/outstanding at creation, completed after a full
//                   payment is approved.
//  Status         – lifecycle state (see status.go).
//  ReferenceNo    – payment reference; attached by the customer for e-wallet,
//                   synthesized as a 9-digit numeral on cash approval.
//  RejectReason   – catalog reason recorded on rejection (nullable).
//  RejectComment  – optional free-text detail for the rejection (nullable).
//  RejectedByRole – acting role that rejected (nullable).
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Reservation struct {
    ID             uint64    // reservations.id
    ReservationNo  string    // reservations.reservation_no
    UserID         uint64    // reservations.user_id
    TableID        uint64    // reservations.table_id
    BilliardType   string    // reservations.billiard_type
    Date           string    // reservations.reservation_date
    StartTime      string    // reservations.start_time
    EndTime        string    // reservations.end_time
    DurationHours  int       // reservations.duration_hours
    TotalBillCents uint32    // reservations.total_bill_cents
    PaymentMethod  string    // reservations.payment_method
    PaymentType    string    // reservations.payment_type
    PaymentStatus  string    // reservations.payment_status
    Status         Status    // reservations.status
    ReferenceNo    *string   // reservations.reference_no (nullable)
    RejectReason   *string   // reservations.reject_reason (nullable)
    RejectComment  *string   // reservations.reject_comment (nullable)
    RejectedByRole *string   // reservations.rejected_by_role (nullable)
    CreatedAt      time.Time // reservations.created_at
    UpdatedAt      time.Time // reservations.updated_at
}
