// Package booking implements the reservation lifecycle engine: the status
// state machine, the slot conflict checks run immediately before every
// write, the reschedule-proposal workflow and the notification fan-out.
// Every transition takes the acting user explicitly and executes inside a
// single transaction, so a status change and its side effects commit
// together or not at all.
package booking

import (
    "context"
    "database/sql"
    "errors"
    "fmt"
    "log"
    "time"

    "github.com/iliyamo/billiard-table-reservation/internal/availability"
    "github.com/iliyamo/billiard-table-reservation/internal/model"
    "github.com/iliyamo/billiard-table-reservation/internal/queue"
    "github.com/iliyamo/billiard-table-reservation/internal/repository"
)

// ReservationStore is the persistence surface the service needs for
// reservations.  *repository.ReservationRepo satisfies it; tests substitute
// function-field mocks.
type ReservationStore interface {
    CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error
    GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Reservation, error)
    GetByNumberForUpdateTx(ctx context.Context, tx *sql.Tx, reservationNo string) (*model.Reservation, error)
    ActiveIntervalsTx(ctx context.Context, tx *sql.Tx, tableID uint64, date string, excludeID uint64) ([]availability.Interval, error)
    ApproveTx(ctx context.Context, tx *sql.Tx, id uint64, paymentStatus, referenceNo string) error
    RejectTx(ctx context.Context, tx *sql.Tx, id uint64, reason, comment string, byRole model.Role) error
    UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status model.Status) error
    ForcePendingTx(ctx context.Context, tx *sql.Tx, id uint64, reason, comment string, byRole model.Role) error
    OverwriteScheduleTx(ctx context.Context, tx *sql.Tx, id, tableID uint64, billiardType, date, start, end string, durationHours int, totalBillCents uint32) error
}

// RescheduleStore is the persistence surface for reschedule proposals.
type RescheduleStore interface {
    CreateTx(ctx context.Context, tx *sql.Tx, req *model.RescheduleRequest) error
    GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.RescheduleRequest, error)
    DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error
    RejectTx(ctx context.Context, tx *sql.Tx, id uint64, reason, comment string) error
}

// NotificationStore inserts notifications inside the transition transaction.
type NotificationStore interface {
    CreateTx(ctx context.Context, tx *sql.Tx, n *model.Notification) error
}

// TableStore reads the static table inventory.
type TableStore interface {
    GetTx(ctx context.Context, tx *sql.Tx, id uint64) (*repository.TableRecord, error)
}

// ReasonCatalog lists the configured rejection reasons for a kind.
type ReasonCatalog interface {
    ListByKind(ctx context.Context, kind string) []string
}

// EventPublisher pushes a lifecycle event to the broker.  Publishing is
// best-effort and happens after commit; a failure is logged, never
// surfaced, so a user-visible status change is never lost because a
// secondary side effect failed.
type EventPublisher func(ctx context.Context, ev queue.ReservationEvent) error

// Service wires the lifecycle engine together.  All fields are required
// except Publish, which may be nil when no broker is configured.
type Service struct {
    Tx            TxRunner
    Reservations  ReservationStore
    Reschedules   RescheduleStore
    Notifications NotificationStore
    Tables        TableStore
    Reasons       ReasonCatalog
    Checker       *availability.Checker
    Publish       EventPublisher

    // RevalidateOnReschedule re-runs the availability check against the
    // proposed slot before a reschedule approval commits.  The historical
    // behavior skipped the re-check; it remains available as a
    // configuration choice.
    RevalidateOnReschedule bool

    // NewReservationNo and NewReferenceNo are injectable for tests and
    // default to the generators in numbers.go.
    NewReservationNo func() string
    NewReferenceNo   func() (string, error)
}

// New returns a Service with the default number generators.
func New(tx TxRunner, res ReservationStore, rs RescheduleStore, n NotificationStore,
    t TableStore, reasons ReasonCatalog, checker *availability.Checker,
    publish EventPublisher, revalidate bool) *Service {
    return &Service{
        Tx:                     tx,
        Reservations:           res,
        Reschedules:            rs,
        Notifications:          n,
        Tables:                 t,
        Reasons:                reasons,
        Checker:                checker,
        Publish:                publish,
        RevalidateOnReschedule: revalidate,
        NewReservationNo:       NewReservationNo,
        NewReferenceNo:         NewReferenceNo,
    }
}

// CreateInput carries a booking request.  ReferenceNo is the customer's
// e-wallet payment reference; it may be attached at creation and must be
// present before an e-wallet reservation can be approved.
type CreateInput struct {
    TableID       uint64
    Date          string // "2006-01-02"
    StartTime     string // "15:04"
    DurationHours int
    PaymentMethod string
    PaymentType   string
    ReferenceNo   string
}

// validate rejects malformed booking fields before any database work.
func (in CreateInput) validate() error {
    if in.TableID == 0 {
        return fmt.Errorf("%w: table id is required", ErrValidation)
    }
    if _, err := time.Parse("2006-01-02", in.Date); err != nil {
        return fmt.Errorf("%w: invalid date %q", ErrValidation, in.Date)
    }
    if _, err := availability.ParseClock(in.StartTime); err != nil {
        return fmt.Errorf("%w: invalid start time %q", ErrValidation, in.StartTime)
    }
    if in.DurationHours < 1 {
        return fmt.Errorf("%w: duration must be at least one hour", ErrValidation)
    }
    if in.PaymentMethod != model.PaymentMethodCash && in.PaymentMethod != model.PaymentMethodEWallet {
        return fmt.Errorf("%w: unknown payment method %q", ErrValidation, in.PaymentMethod)
    }
    if in.PaymentType != model.PaymentTypeFull && in.PaymentType != model.PaymentTypeHalf {
        return fmt.Errorf("%w: unknown payment type %q", ErrValidation, in.PaymentType)
    }
    return nil
}

// Create validates the requested slot and persists a pending reservation.
// The availability probe and the insert run in one transaction, with the
// interval scan locking the (table, date) range, so two concurrent bookings
// of the same slot cannot both pass the check.  No notification is emitted
// on creation.
func (s *Service) Create(ctx context.Context, actor model.Actor, in CreateInput) (*model.Reservation, error) {
    if err := in.validate(); err != nil {
        return nil, err
    }
    startMin, _ := availability.ParseClock(in.StartTime)
    var res *model.Reservation
    err := s.Tx.WithinTx(ctx, func(tx *sql.Tx) error {
        table, err := s.Tables.GetTx(ctx, tx, in.TableID)
        if err != nil {
            if errors.Is(err, sql.ErrNoRows) {
                return fmt.Errorf("%w: table %d", ErrNotFound, in.TableID)
            }
            return err
        }
        if table.Status != model.TableAvailable {
            return fmt.Errorf("%w: table %d is %s", ErrConflict, table.ID, table.Status)
        }
        intervals, err := s.Reservations.ActiveIntervalsTx(ctx, tx, in.TableID, in.Date, 0)
        if err != nil {
            return err
        }
        if err := s.Checker.Check(in.Date, startMin, in.DurationHours, intervals); err != nil {
            return fmt.Errorf("%w: %v", ErrConflict, err)
        }
        res = &model.Reservation{
            ReservationNo:  s.NewReservationNo(),
            UserID:         actor.ID,
            TableID:        table.ID,
            BilliardType:   table.BilliardType,
            Date:           in.Date,
            StartTime:      in.StartTime,
            EndTime:        availability.FormatClock(startMin + in.DurationHours*60),
            DurationHours:  in.DurationHours,
            TotalBillCents: table.HourlyRateCents * uint32(in.DurationHours),
            PaymentMethod:  in.PaymentMethod,
            PaymentType:    in.PaymentType,
            PaymentStatus:  model.DerivePaymentStatus(in.PaymentType),
            Status:         model.StatusPending,
        }
        if in.ReferenceNo != "" {
            ref := in.ReferenceNo
            res.ReferenceNo = &ref
        }
        return s.Reservations.CreateTx(ctx, tx, res)
    })
    if err != nil {
        return nil, err
    }
    return res, nil
}

// canDecide reports whether the actor's role may approve or reject.
func canDecide(role model.Role) bool {
    return role.IsStaff()
}

// Approve moves a pending reservation to approved.  For e-wallet payments
// the stored reference number must exist and, when the approver supplies
// one, match it; for cash a 9-digit reference is synthesized when absent.
// Full payments become completed; half payments keep their outstanding
// balance.  Exactly one notification is written, in the same transaction.
func (s *Service) Approve(ctx context.Context, actor model.Actor, reservationID uint64, confirmReferenceNo string) (*model.Reservation, error) {
    if !canDecide(actor.Role) {
        return nil, repository.ErrForbidden
    }
    var res *model.Reservation
    err := s.Tx.WithinTx(ctx, func(tx *sql.Tx) error {
        var err error
        res, err = s.Reservations.GetForUpdateTx(ctx, tx, reservationID)
        if err != nil {
            if errors.Is(err, sql.ErrNoRows) {
                return fmt.Errorf("%w: reservation %d", ErrNotFound, reservationID)
            }
            return err
        }
        return s.approveLocked(ctx, tx, res, confirmReferenceNo)
    })
    if err != nil {
        return nil, err
    }
    s.emit(ctx, eventFor(res, queue.ActionApproved, actor, ""))
    return res, nil
}

// CheckIn applies exactly the approve effects to the reservation identified
// by a decoded booking reference (the QR collaborator hands us only the
// reservation number).
func (s *Service) CheckIn(ctx context.Context, actor model.Actor, reservationNo string) (*model.Reservation, error) {
    if !canDecide(actor.Role) {
        return nil, repository.ErrForbidden
    }
    if reservationNo == "" {
        return nil, fmt.Errorf("%w: reservation number is required", ErrValidation)
    }
    var res *model.Reservation
    err := s.Tx.WithinTx(ctx, func(tx *sql.Tx) error {
        var err error
        res, err = s.Reservations.GetByNumberForUpdateTx(ctx, tx, reservationNo)
        if err != nil {
            if errors.Is(err, sql.ErrNoRows) {
                return fmt.Errorf("%w: reservation %s", ErrNotFound, reservationNo)
            }
            return err
        }
        return s.approveLocked(ctx, tx, res, "")
    })
    if err != nil {
        return nil, err
    }
    s.emit(ctx, eventFor(res, queue.ActionCheckedIn, actor, ""))
    return res, nil
}

// approveLocked applies the approval effects to an already-locked pending
// reservation and mutates res to reflect them.
func (s *Service) approveLocked(ctx context.Context, tx *sql.Tx, res *model.Reservation, confirmReferenceNo string) error {
    if !model.CanTransition(res.Status, model.StatusApproved) {
        return fmt.Errorf("%w: cannot approve a %s reservation", ErrState, res.Status)
    }
    var ref string
    switch res.PaymentMethod {
    case model.PaymentMethodEWallet:
        if res.ReferenceNo == nil || *res.ReferenceNo == "" {
            return fmt.Errorf("%w: e-wallet approval requires an attached reference number", ErrValidation)
        }
        if confirmReferenceNo != "" && confirmReferenceNo != *res.ReferenceNo {
            return fmt.Errorf("%w: reference number does not match the attached one", ErrValidation)
        }
        ref = *res.ReferenceNo
    default: // cash
        if res.ReferenceNo != nil && *res.ReferenceNo != "" {
            ref = *res.ReferenceNo
        } else {
            generated, err := s.NewReferenceNo()
            if err != nil {
                return err
            }
            ref = generated
        }
    }
    paymentStatus := res.PaymentStatus
    if res.PaymentType == model.PaymentTypeFull {
        paymentStatus = model.PaymentStatusCompleted
    }
    if err := s.Reservations.ApproveTx(ctx, tx, res.ID, paymentStatus, ref); err != nil {
        return err
    }
    res.Status = model.StatusApproved
    res.PaymentStatus = paymentStatus
    res.ReferenceNo = &ref
    return s.Notifications.CreateTx(ctx, tx, &model.Notification{
        UserID:        res.UserID,
        ReservationNo: res.ReservationNo,
        Message:       fmt.Sprintf("Reservation %s approved. Reference number: %s.", res.ReservationNo, ref),
    })
}

// Reject moves a pending reservation to rejected.  The reason must come
// from the configured catalog; the acting role is recorded as the rejecting
// party.  Validation happens before any write.
func (s *Service) Reject(ctx context.Context, actor model.Actor, reservationID uint64, reason, comment string) (*model.Reservation, error) {
    if !canDecide(actor.Role) {
        return nil, repository.ErrForbidden
    }
    if err := s.requireReason(ctx, repository.ReasonKindReservation, reason); err != nil {
        return nil, err
    }
    var res *model.Reservation
    err := s.Tx.WithinTx(ctx, func(tx *sql.Tx) error {
        var err error
        res, err = s.Reservations.GetForUpdateTx(ctx, tx, reservationID)
        if err != nil {
            if errors.Is(err, sql.ErrNoRows) {
                return fmt.Errorf("%w: reservation %d", ErrNotFound, reservationID)
            }
            return err
        }
        if !model.CanTransition(res.Status, model.StatusRejected) {
            return fmt.Errorf("%w: cannot reject a %s reservation", ErrState, res.Status)
        }
        if err := s.Reservations.RejectTx(ctx, tx, res.ID, reason, comment, actor.Role); err != nil {
            return err
        }
        res.Status = model.StatusRejected
        msg := fmt.Sprintf("Reservation %s rejected by %s: %s.", res.ReservationNo, actor.Role, reason)
        if comment != "" {
            msg = fmt.Sprintf("Reservation %s rejected by %s: %s (%s).", res.ReservationNo, actor.Role, reason, comment)
        }
        return s.Notifications.CreateTx(ctx, tx, &model.Notification{
            UserID:        res.UserID,
            ReservationNo: res.ReservationNo,
            Message:       msg,
        })
    })
    if err != nil {
        return nil, err
    }
    s.emit(ctx, eventFor(res, queue.ActionRejected, actor, reason))
    return res, nil
}

// Cancel lets a customer withdraw their own reservation while it is still
// pending.  No notification is emitted.
func (s *Service) Cancel(ctx context.Context, actor model.Actor, reservationID uint64) error {
    return s.Tx.WithinTx(ctx, func(tx *sql.Tx) error {
        res, err := s.Reservations.GetForUpdateTx(ctx, tx, reservationID)
        if err != nil {
            if errors.Is(err, sql.ErrNoRows) {
                return fmt.Errorf("%w: reservation %d", ErrNotFound, reservationID)
            }
            return err
        }
        if res.UserID != actor.ID {
            return repository.ErrForbidden
        }
        if !model.CanTransition(res.Status, model.StatusCancelled) {
            return fmt.Errorf("%w: cannot cancel a %s reservation", ErrState, res.Status)
        }
        return s.Reservations.UpdateStatusTx(ctx, tx, res.ID, model.StatusCancelled)
    })
}

// Complete marks an approved or checked-in reservation as finished once the
// playing time has elapsed.
func (s *Service) Complete(ctx context.Context, actor model.Actor, reservationID uint64) (*model.Reservation, error) {
    if !canDecide(actor.Role) {
        return nil, repository.ErrForbidden
    }
    var res *model.Reservation
    err := s.Tx.WithinTx(ctx, func(tx *sql.Tx) error {
        var err error
        res, err = s.Reservations.GetForUpdateTx(ctx, tx, reservationID)
        if err != nil {
            if errors.Is(err, sql.ErrNoRows) {
                return fmt.Errorf("%w: reservation %d", ErrNotFound, reservationID)
            }
            return err
        }
        if !model.CanTransition(res.Status, model.StatusCompleted) {
            return fmt.Errorf("%w: cannot complete a %s reservation", ErrState, res.Status)
        }
        if err := s.Reservations.UpdateStatusTx(ctx, tx, res.ID, model.StatusCompleted); err != nil {
            return err
        }
        res.Status = model.StatusCompleted
        return nil
    })
    if err != nil {
        return nil, err
    }
    s.emit(ctx, eventFor(res, queue.ActionCompleted, actor, ""))
    return res, nil
}

// ProposalInput carries a reschedule proposal.
type ProposalInput struct {
    TableID       uint64
    Date          string
    StartTime     string
    DurationHours int
}

func (in ProposalInput) validate() error {
    if in.TableID == 0 {
        return fmt.Errorf("%w: table id is required", ErrValidation)
    }
    if _, err := time.Parse("2006-01-02", in.Date); err != nil {
        return fmt.Errorf("%w: invalid date %q", ErrValidation, in.Date)
    }
    if _, err := availability.ParseClock(in.StartTime); err != nil {
        return fmt.Errorf("%w: invalid start time %q", ErrValidation, in.StartTime)
    }
    if in.DurationHours < 1 {
        return fmt.Errorf("%w: duration must be at least one hour", ErrValidation)
    }
    return nil
}

// RequestReschedule stores a proposal against a not-yet-completed
// reservation owned by the actor.  The original reservation is not touched;
// the owner gets the "reschedule pending" notification that surfaces the
// request in the staff feed.
func (s *Service) RequestReschedule(ctx context.Context, actor model.Actor, reservationID uint64, in ProposalInput) (*model.RescheduleRequest, error) {
    if err := in.validate(); err != nil {
        return nil, err
    }
    var req *model.RescheduleRequest
    err := s.Tx.WithinTx(ctx, func(tx *sql.Tx) error {
        res, err := s.Reservations.GetForUpdateTx(ctx, tx, reservationID)
        if err != nil {
            if errors.Is(err, sql.ErrNoRows) {
                return fmt.Errorf("%w: reservation %d", ErrNotFound, reservationID)
            }
            return err
        }
        if res.UserID != actor.ID {
            return repository.ErrForbidden
        }
        if res.Status == model.StatusCompleted {
            return fmt.Errorf("%w: completed reservations cannot be rescheduled", ErrState)
        }
        table, err := s.Tables.GetTx(ctx, tx, in.TableID)
        if err != nil {
            if errors.Is(err, sql.ErrNoRows) {
                return fmt.Errorf("%w: table %d", ErrNotFound, in.TableID)
            }
            return err
        }
        if table.Status != model.TableAvailable {
            return fmt.Errorf("%w: table %d is %s", ErrConflict, table.ID, table.Status)
        }
        req = &model.RescheduleRequest{
            ReservationID:  res.ID,
            UserID:         actor.ID,
            TableID:        table.ID,
            BilliardType:   table.BilliardType,
            Date:           in.Date,
            StartTime:      in.StartTime,
            DurationHours:  in.DurationHours,
            TotalBillCents: table.HourlyRateCents * uint32(in.DurationHours),
            Status:         model.ReschedulePending,
        }
        if err := s.Reschedules.CreateTx(ctx, tx, req); err != nil {
            return err
        }
        return s.Notifications.CreateTx(ctx, tx, &model.Notification{
            UserID:        res.UserID,
            ReservationNo: res.ReservationNo,
            Message:       fmt.Sprintf("Reschedule pending approval for reservation %s.", res.ReservationNo),
        })
    })
    if err != nil {
        return nil, err
    }
    return req, nil
}

// ApproveReschedule overwrites the original reservation with the proposal's
// table, schedule and bill, sets it approved, notifies the requester and
// deletes the proposal row — all in one transaction.  When re-validation is
// enabled the proposed slot is checked against the table's other bookings
// first (the original reservation's own interval is excluded).
func (s *Service) ApproveReschedule(ctx context.Context, actor model.Actor, requestID uint64) (*model.Reservation, error) {
    if !canDecide(actor.Role) {
        return nil, repository.ErrForbidden
    }
    var res *model.Reservation
    err := s.Tx.WithinTx(ctx, func(tx *sql.Tx) error {
        req, err := s.Reschedules.GetForUpdateTx(ctx, tx, requestID)
        if err != nil {
            if errors.Is(err, sql.ErrNoRows) {
                return fmt.Errorf("%w: reschedule request %d", ErrNotFound, requestID)
            }
            return err
        }
        if req.Status != model.ReschedulePending {
            return fmt.Errorf("%w: reschedule request is %s", ErrState, req.Status)
        }
        res, err = s.Reservations.GetForUpdateTx(ctx, tx, req.ReservationID)
        if err != nil {
            if errors.Is(err, sql.ErrNoRows) {
                return fmt.Errorf("%w: reservation %d", ErrNotFound, req.ReservationID)
            }
            return err
        }
        startMin, err := availability.ParseClock(req.StartTime)
        if err != nil {
            return err
        }
        if s.RevalidateOnReschedule {
            intervals, err := s.Reservations.ActiveIntervalsTx(ctx, tx, req.TableID, req.Date, res.ID)
            if err != nil {
                return err
            }
            if err := s.Checker.Check(req.Date, startMin, req.DurationHours, intervals); err != nil {
                return fmt.Errorf("%w: proposed slot: %v", ErrConflict, err)
            }
        }
        end := availability.FormatClock(startMin + req.DurationHours*60)
        if err := s.Reservations.OverwriteScheduleTx(ctx, tx, res.ID, req.TableID, req.BilliardType,
            req.Date, req.StartTime, end, req.DurationHours, req.TotalBillCents); err != nil {
            return err
        }
        res.TableID = req.TableID
        res.BilliardType = req.BilliardType
        res.Date = req.Date
        res.StartTime = req.StartTime
        res.EndTime = end
        res.DurationHours = req.DurationHours
        res.TotalBillCents = req.TotalBillCents
        res.Status = model.StatusApproved
        if err := s.Notifications.CreateTx(ctx, tx, &model.Notification{
            UserID:        res.UserID,
            ReservationNo: res.ReservationNo,
            Message: fmt.Sprintf("Reservation %s reschedule approved. New schedule: %s %s-%s.",
                res.ReservationNo, res.Date, res.StartTime, res.EndTime),
        }); err != nil {
            return err
        }
        // The proposal is not retained as "approved"; the reservation now
        // carries its values.
        return s.Reschedules.DeleteTx(ctx, tx, req.ID)
    })
    if err != nil {
        return nil, err
    }
    s.emit(ctx, eventFor(res, queue.ActionRescheduleApproved, actor, ""))
    return res, nil
}

// RejectReschedule keeps the proposal as rejected with its reason and
// forces the original reservation back to pending regardless of its prior
// status, annotated with the same reason, comment and acting role.
func (s *Service) RejectReschedule(ctx context.Context, actor model.Actor, requestID uint64, reason, comment string) (*model.RescheduleRequest, error) {
    if !canDecide(actor.Role) {
        return nil, repository.ErrForbidden
    }
    if err := s.requireReason(ctx, repository.ReasonKindReschedule, reason); err != nil {
        return nil, err
    }
    var req *model.RescheduleRequest
    var res *model.Reservation
    err := s.Tx.WithinTx(ctx, func(tx *sql.Tx) error {
        var err error
        req, err = s.Reschedules.GetForUpdateTx(ctx, tx, requestID)
        if err != nil {
            if errors.Is(err, sql.ErrNoRows) {
                return fmt.Errorf("%w: reschedule request %d", ErrNotFound, requestID)
            }
            return err
        }
        if req.Status != model.ReschedulePending {
            return fmt.Errorf("%w: reschedule request is %s", ErrState, req.Status)
        }
        res, err = s.Reservations.GetForUpdateTx(ctx, tx, req.ReservationID)
        if err != nil {
            if errors.Is(err, sql.ErrNoRows) {
                return fmt.Errorf("%w: reservation %d", ErrNotFound, req.ReservationID)
            }
            return err
        }
        if err := s.Reschedules.RejectTx(ctx, tx, req.ID, reason, comment); err != nil {
            return err
        }
        req.Status = model.RescheduleRejected
        req.RejectReason = &reason
        if err := s.Reservations.ForcePendingTx(ctx, tx, res.ID, reason, comment, actor.Role); err != nil {
            return err
        }
        res.Status = model.StatusPending
        return s.Notifications.CreateTx(ctx, tx, &model.Notification{
            UserID:        res.UserID,
            ReservationNo: res.ReservationNo,
            Message: fmt.Sprintf("Reservation %s reschedule rejected by %s: %s. The booking is back to its original schedule.",
                res.ReservationNo, actor.Role, reason),
        })
    })
    if err != nil {
        return nil, err
    }
    s.emit(ctx, eventFor(res, queue.ActionRescheduleRejected, actor, reason))
    return req, nil
}

// requireReason validates a rejection reason against the configured catalog
// before any write happens.
func (s *Service) requireReason(ctx context.Context, kind, reason string) error {
    if reason == "" {
        return fmt.Errorf("%w: a rejection reason is required", ErrValidation)
    }
    for _, r := range s.Reasons.ListByKind(ctx, kind) {
        if r == reason {
            return nil
        }
    }
    return fmt.Errorf("%w: unknown rejection reason %q", ErrValidation, reason)
}

func eventFor(res *model.Reservation, action string, actor model.Actor, reason string) queue.ReservationEvent {
    ev := queue.ReservationEvent{
        ReservationNo: res.ReservationNo,
        UserID:        res.UserID,
        TableID:       res.TableID,
        Action:        action,
        Reason:        reason,
        ActingRole:    string(actor.Role),
        OccurredAt:    time.Now().UTC().Format(time.RFC3339),
    }
    if res.ReferenceNo != nil {
        ev.ReferenceNo = *res.ReferenceNo
    }
    return ev
}

// emit publishes after commit; failures are logged and swallowed.
func (s *Service) emit(ctx context.Context, ev queue.ReservationEvent) {
    if s.Publish == nil {
        return
    }
    if err := s.Publish(ctx, ev); err != nil {
        log.Printf("booking: publish %s event for %s failed: %v", ev.Action, ev.ReservationNo, err)
    }
}
