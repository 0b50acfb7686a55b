package booking

import "errors"

// Sentinel errors forming the failure taxonomy of the reservation
// lifecycle.  Handlers compare with errors.Is and map each to an HTTP
// status; the service wraps them with a message naming what failed, so no
// transition fails silently.
var (
    // ErrValidation marks missing or invalid input: no reason selected,
    // missing reference number for an e-wallet approval, malformed dates.
    // Raised before any write.
    ErrValidation = errors.New("invalid input")

    // ErrConflict marks an unbookable slot: overlap with an active
    // reservation, closed day, outside business hours, past start time, or
    // a table out of service.  Raised before any write.
    ErrConflict = errors.New("slot conflict")

    // ErrState marks a transition attempted from a disallowed source
    // state, e.g. approving a reservation that is not pending.
    ErrState = errors.New("invalid state transition")

    // ErrNotFound marks an unresolvable reservation, proposal or table id.
    ErrNotFound = errors.New("not found")
)
