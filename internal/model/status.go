package model

// Status enumerates the lifecycle states of a reservation.  The flow is
// pending -> approved -> completed, with rejected and cancelled as the
// terminal side exits.  "ongoing" marks a checked-in reservation whose
// playing time has not elapsed; for conflict purposes it blocks the table
// exactly like an approved one.
type Status string

const (
    StatusPending   Status = "pending"
    StatusApproved  Status = "approved"
    StatusOngoing   Status = "ongoing"
    StatusCompleted Status = "completed"
    StatusRejected  Status = "rejected"
    StatusCancelled Status = "cancelled"
)

// transitions is the closed table of allowed status moves.  It is built
// once; every lifecycle operation consults it with CanTransition instead of
// re-deriving the rules inline.
var transitions = map[Status]map[Status]bool{
    StatusPending: {
        StatusApproved:  true,
        StatusRejected:  true,
        StatusCancelled: true,
    },
    StatusApproved: {
        StatusOngoing:   true,
        StatusCompleted: true,
    },
    StatusOngoing: {
        StatusCompleted: true,
    },
}

// CanTransition reports whether a reservation in `from` may move to `to`.
// Terminal states (rejected, cancelled, completed) have no outgoing edges.
func CanTransition(from, to Status) bool {
    return transitions[from][to]
}

// ActiveStatuses are the states that occupy a table for conflict checking.
// Rejected and cancelled reservations never block a slot.
var ActiveStatuses = []Status{StatusPending, StatusApproved, StatusOngoing, StatusCompleted}

// Payment method, type and status values.  The status wording is uneven on
// purpose: creation derives paid/outstanding from the payment type, and an
// approval upgrades a full payment to completed while a half payment keeps
// its outstanding balance until settled at the counter.
const (
    PaymentMethodCash    = "cash"
    PaymentMethodEWallet = "e-wallet"

    PaymentTypeFull = "full payment"
    PaymentTypeHalf = "half payment"

    PaymentStatusPaid        = "paid"
    PaymentStatusOutstanding = "outstanding"
    PaymentStatusCompleted   = "completed"
)

// DerivePaymentStatus returns the payment status recorded at creation time
// for the given payment type.
func DerivePaymentStatus(paymentType string) string {
    if paymentType == PaymentTypeFull {
        return PaymentStatusPaid
    }
    return PaymentStatusOutstanding
}
