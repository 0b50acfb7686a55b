package booking

import (
    "context"
    "database/sql"
    "errors"
    "strings"
    "testing"
    "time"

    "github.com/stretchr/testify/require"

    "github.com/iliyamo/billiard-table-reservation/internal/availability"
    "github.com/iliyamo/billiard-table-reservation/internal/model"
    "github.com/iliyamo/billiard-table-reservation/internal/queue"
    "github.com/iliyamo/billiard-table-reservation/internal/repository"
)

// fakeTx satisfies TxRunner without a database: the callback runs with a nil
// *sql.Tx, which the function-field stores below never dereference.
type fakeTx struct{ calls int }

func (f *fakeTx) WithinTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
    f.calls++
    return fn(nil)
}

type mockReservations struct {
    createTx        func(res *model.Reservation) error
    getForUpdate    func(id uint64) (*model.Reservation, error)
    getByNumber     func(no string) (*model.Reservation, error)
    activeIntervals func(tableID uint64, date string, excludeID uint64) ([]availability.Interval, error)
    approveTx       func(id uint64, paymentStatus, referenceNo string) error
    rejectTx        func(id uint64, reason, comment string, byRole model.Role) error
    updateStatusTx  func(id uint64, status model.Status) error
    forcePendingTx  func(id uint64, reason, comment string, byRole model.Role) error
    overwriteTx     func(id, tableID uint64, billiardType, date, start, end string, durationHours int, totalBillCents uint32) error
}

func (m *mockReservations) CreateTx(_ context.Context, _ *sql.Tx, res *model.Reservation) error {
    return m.createTx(res)
}
func (m *mockReservations) GetForUpdateTx(_ context.Context, _ *sql.Tx, id uint64) (*model.Reservation, error) {
    return m.getForUpdate(id)
}
func (m *mockReservations) GetByNumberForUpdateTx(_ context.Context, _ *sql.Tx, no string) (*model.Reservation, error) {
    return m.getByNumber(no)
}
func (m *mockReservations) ActiveIntervalsTx(_ context.Context, _ *sql.Tx, tableID uint64, date string, excludeID uint64) ([]availability.Interval, error) {
    return m.activeIntervals(tableID, date, excludeID)
}
func (m *mockReservations) ApproveTx(_ context.Context, _ *sql.Tx, id uint64, paymentStatus, referenceNo string) error {
    return m.approveTx(id, paymentStatus, referenceNo)
}
func (m *mockReservations) RejectTx(_ context.Context, _ *sql.Tx, id uint64, reason, comment string, byRole model.Role) error {
    return m.rejectTx(id, reason, comment, byRole)
}
func (m *mockReservations) UpdateStatusTx(_ context.Context, _ *sql.Tx, id uint64, status model.Status) error {
    return m.updateStatusTx(id, status)
}
func (m *mockReservations) ForcePendingTx(_ context.Context, _ *sql.Tx, id uint64, reason, comment string, byRole model.Role) error {
    return m.forcePendingTx(id, reason, comment, byRole)
}
func (m *mockReservations) OverwriteScheduleTx(_ context.Context, _ *sql.Tx, id, tableID uint64, billiardType, date, start, end string, durationHours int, totalBillCents uint32) error {
    return m.overwriteTx(id, tableID, billiardType, date, start, end, durationHours, totalBillCents)
}

type mockReschedules struct {
    createTx     func(req *model.RescheduleRequest) error
    getForUpdate func(id uint64) (*model.RescheduleRequest, error)
    deleteTx     func(id uint64) error
    rejectTx     func(id uint64, reason, comment string) error
}

func (m *mockReschedules) CreateTx(_ context.Context, _ *sql.Tx, req *model.RescheduleRequest) error {
    return m.createTx(req)
}
func (m *mockReschedules) GetForUpdateTx(_ context.Context, _ *sql.Tx, id uint64) (*model.RescheduleRequest, error) {
    return m.getForUpdate(id)
}
func (m *mockReschedules) DeleteTx(_ context.Context, _ *sql.Tx, id uint64) error {
    return m.deleteTx(id)
}
func (m *mockReschedules) RejectTx(_ context.Context, _ *sql.Tx, id uint64, reason, comment string) error {
    return m.rejectTx(id, reason, comment)
}

// notifRecorder collects the notifications written during a transition.
type notifRecorder struct{ created []model.Notification }

func (n *notifRecorder) CreateTx(_ context.Context, _ *sql.Tx, msg *model.Notification) error {
    n.created = append(n.created, *msg)
    return nil
}

type mockTables struct {
    getTx func(id uint64) (*repository.TableRecord, error)
}

func (m *mockTables) GetTx(_ context.Context, _ *sql.Tx, id uint64) (*repository.TableRecord, error) {
    return m.getTx(id)
}

type staticReasons struct{ reasons map[string][]string }

func (s staticReasons) ListByKind(_ context.Context, kind string) []string {
    return s.reasons[kind]
}

type env struct {
    svc    *Service
    tx     *fakeTx
    res    *mockReservations
    rs     *mockReschedules
    notifs *notifRecorder
    tables *mockTables
    events []queue.ReservationEvent
}

// newEnv builds a service over function-field stores with the clock pinned
// to 2026-09-01 09:00 UTC so "2026-09-02" is always a bookable tomorrow.
func newEnv(t *testing.T) *env {
    t.Helper()
    e := &env{
        tx:     &fakeTx{},
        res:    &mockReservations{},
        rs:     &mockReschedules{},
        notifs: &notifRecorder{},
        tables: &mockTables{},
    }
    checker := &availability.Checker{
        Schedule: availability.DefaultSchedule(),
        Now:      func() time.Time { return time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC) },
    }
    reasons := staticReasons{reasons: map[string][]string{
        repository.ReasonKindReservation: {"Table Not Available", "Duplicate Booking"},
        repository.ReasonKindReschedule:  {"Table Not Available", "Requested Slot Conflicts"},
    }}
    e.svc = New(e.tx, e.res, e.rs, e.notifs, e.tables, reasons, checker,
        func(_ context.Context, ev queue.ReservationEvent) error {
            e.events = append(e.events, ev)
            return nil
        },
        true,
    )
    e.svc.NewReservationNo = func() string { return "RSV-TEST0001" }
    e.svc.NewReferenceNo = func() (string, error) { return "123456789", nil }
    return e
}

var (
    customer = model.Actor{ID: 7, Role: model.RoleCustomer, FullName: "Dana Customer"}
    manager  = model.Actor{ID: 2, Role: model.RoleManager, FullName: "Morgan Manager"}
)

func availableTable() *repository.TableRecord {
    return &repository.TableRecord{ID: 3, BilliardType: "nine-ball", HourlyRateCents: 1500, Status: model.TableAvailable}
}

func validCreateInput() CreateInput {
    return CreateInput{
        TableID:       3,
        Date:          "2026-09-02",
        StartTime:     "10:00",
        DurationHours: 2,
        PaymentMethod: model.PaymentMethodEWallet,
        PaymentType:   model.PaymentTypeFull,
        ReferenceNo:   "987654321",
    }
}

func TestCreateReservation(t *testing.T) {
    e := newEnv(t)
    e.tables.getTx = func(id uint64) (*repository.TableRecord, error) { return availableTable(), nil }
    e.res.activeIntervals = func(tableID uint64, date string, excludeID uint64) ([]availability.Interval, error) {
        require.EqualValues(t, 3, tableID)
        require.Equal(t, "2026-09-02", date)
        require.Zero(t, excludeID)
        return nil, nil
    }
    var inserted *model.Reservation
    e.res.createTx = func(res *model.Reservation) error { inserted = res; res.ID = 42; return nil }

    res, err := e.svc.Create(context.Background(), customer, validCreateInput())
    require.NoError(t, err)
    require.Same(t, inserted, res)

    require.Equal(t, "RSV-TEST0001", res.ReservationNo)
    require.EqualValues(t, 7, res.UserID)
    require.Equal(t, model.StatusPending, res.Status)
    require.Equal(t, "12:00", res.EndTime)
    require.EqualValues(t, 3000, res.TotalBillCents)
    require.Equal(t, model.PaymentStatusPaid, res.PaymentStatus)
    require.NotNil(t, res.ReferenceNo)
    require.Equal(t, "987654321", *res.ReferenceNo)

    // Creation is silent: no notification, no event.
    require.Empty(t, e.notifs.created)
    require.Empty(t, e.events)
}

func TestCreateRejectsOverlap(t *testing.T) {
    e := newEnv(t)
    e.tables.getTx = func(id uint64) (*repository.TableRecord, error) { return availableTable(), nil }
    e.res.activeIntervals = func(uint64, string, uint64) ([]availability.Interval, error) {
        return []availability.Interval{{Start: 11 * 60, End: 13 * 60}}, nil
    }
    e.res.createTx = func(*model.Reservation) error { t.Fatal("must not insert"); return nil }

    _, err := e.svc.Create(context.Background(), customer, validCreateInput())
    require.ErrorIs(t, err, ErrConflict)
}

func TestCreateRejectsUnavailableTable(t *testing.T) {
    e := newEnv(t)
    e.tables.getTx = func(id uint64) (*repository.TableRecord, error) {
        tb := availableTable()
        tb.Status = model.TableMaintenance
        return tb, nil
    }
    _, err := e.svc.Create(context.Background(), customer, validCreateInput())
    require.ErrorIs(t, err, ErrConflict)
}

func TestCreateRejectsMissingTable(t *testing.T) {
    e := newEnv(t)
    e.tables.getTx = func(id uint64) (*repository.TableRecord, error) { return nil, sql.ErrNoRows }
    _, err := e.svc.Create(context.Background(), customer, validCreateInput())
    require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateValidatesInput(t *testing.T) {
    e := newEnv(t)
    bad := validCreateInput()
    bad.DurationHours = 0
    _, err := e.svc.Create(context.Background(), customer, bad)
    require.ErrorIs(t, err, ErrValidation)

    bad = validCreateInput()
    bad.PaymentMethod = "crypto"
    _, err = e.svc.Create(context.Background(), customer, bad)
    require.ErrorIs(t, err, ErrValidation)

    // Validation failures never open a transaction.
    require.Zero(t, e.tx.calls)
}

func pendingReservation() *model.Reservation {
    return &model.Reservation{
        ID:            42,
        ReservationNo: "RSV-TEST0001",
        UserID:        7,
        TableID:       3,
        BilliardType:  "nine-ball",
        Date:          "2026-09-02",
        StartTime:     "10:00",
        EndTime:       "12:00",
        DurationHours: 2,
        PaymentMethod: model.PaymentMethodCash,
        PaymentType:   model.PaymentTypeFull,
        PaymentStatus: model.PaymentStatusPaid,
        Status:        model.StatusPending,
    }
}

func TestApproveCashSynthesizesReference(t *testing.T) {
    e := newEnv(t)
    e.res.getForUpdate = func(id uint64) (*model.Reservation, error) { return pendingReservation(), nil }
    var gotStatus, gotRef string
    e.res.approveTx = func(id uint64, paymentStatus, referenceNo string) error {
        gotStatus, gotRef = paymentStatus, referenceNo
        return nil
    }

    res, err := e.svc.Approve(context.Background(), manager, 42, "")
    require.NoError(t, err)
    require.Equal(t, model.StatusApproved, res.Status)
    require.Equal(t, model.PaymentStatusCompleted, gotStatus)
    require.Equal(t, "123456789", gotRef)

    require.Len(t, e.notifs.created, 1)
    require.EqualValues(t, 7, e.notifs.created[0].UserID)
    require.Contains(t, e.notifs.created[0].Message, "approved")
    require.Contains(t, e.notifs.created[0].Message, "123456789")

    require.Len(t, e.events, 1)
    require.Equal(t, queue.ActionApproved, e.events[0].Action)
    require.Equal(t, "manager", e.events[0].ActingRole)
}

func TestApproveEWalletRequiresReference(t *testing.T) {
    e := newEnv(t)
    res := pendingReservation()
    res.PaymentMethod = model.PaymentMethodEWallet
    res.ReferenceNo = nil
    e.res.getForUpdate = func(uint64) (*model.Reservation, error) { return res, nil }

    _, err := e.svc.Approve(context.Background(), manager, 42, "")
    require.ErrorIs(t, err, ErrValidation)
    require.Empty(t, e.notifs.created)
    require.Empty(t, e.events)
}

func TestApproveEWalletReferenceMismatch(t *testing.T) {
    e := newEnv(t)
    res := pendingReservation()
    res.PaymentMethod = model.PaymentMethodEWallet
    ref := "987654321"
    res.ReferenceNo = &ref
    e.res.getForUpdate = func(uint64) (*model.Reservation, error) { return res, nil }

    _, err := e.svc.Approve(context.Background(), manager, 42, "111111111")
    require.ErrorIs(t, err, ErrValidation)

    // A matching confirmation goes through.
    var gotRef string
    e.res.approveTx = func(_ uint64, _, referenceNo string) error { gotRef = referenceNo; return nil }
    _, err = e.svc.Approve(context.Background(), manager, 42, "987654321")
    require.NoError(t, err)
    require.Equal(t, "987654321", gotRef)
}

func TestApproveHalfPaymentKeepsOutstanding(t *testing.T) {
    e := newEnv(t)
    res := pendingReservation()
    res.PaymentType = model.PaymentTypeHalf
    res.PaymentStatus = model.PaymentStatusOutstanding
    e.res.getForUpdate = func(uint64) (*model.Reservation, error) { return res, nil }
    var gotStatus string
    e.res.approveTx = func(_ uint64, paymentStatus, _ string) error { gotStatus = paymentStatus; return nil }

    _, err := e.svc.Approve(context.Background(), manager, 42, "")
    require.NoError(t, err)
    require.Equal(t, model.PaymentStatusOutstanding, gotStatus)
}

func TestApproveRequiresPendingStatus(t *testing.T) {
    e := newEnv(t)
    res := pendingReservation()
    res.Status = model.StatusCancelled
    e.res.getForUpdate = func(uint64) (*model.Reservation, error) { return res, nil }

    _, err := e.svc.Approve(context.Background(), manager, 42, "")
    require.ErrorIs(t, err, ErrState)
}

func TestApproveForbiddenForCustomers(t *testing.T) {
    e := newEnv(t)
    _, err := e.svc.Approve(context.Background(), customer, 42, "")
    require.ErrorIs(t, err, repository.ErrForbidden)
    require.Zero(t, e.tx.calls)
}

func TestCheckInByReservationNumber(t *testing.T) {
    e := newEnv(t)
    e.res.getByNumber = func(no string) (*model.Reservation, error) {
        require.Equal(t, "RSV-TEST0001", no)
        return pendingReservation(), nil
    }
    e.res.approveTx = func(uint64, string, string) error { return nil }

    res, err := e.svc.CheckIn(context.Background(), manager, "RSV-TEST0001")
    require.NoError(t, err)
    require.Equal(t, model.StatusApproved, res.Status)
    require.Len(t, e.notifs.created, 1)
    require.Len(t, e.events, 1)
    require.Equal(t, queue.ActionCheckedIn, e.events[0].Action)
}

func TestRejectRequiresCatalogReason(t *testing.T) {
    e := newEnv(t)
    _, err := e.svc.Reject(context.Background(), manager, 42, "", "")
    require.ErrorIs(t, err, ErrValidation)

    _, err = e.svc.Reject(context.Background(), manager, 42, "Because", "")
    require.ErrorIs(t, err, ErrValidation)
    require.Zero(t, e.tx.calls)
}

func TestReject(t *testing.T) {
    e := newEnv(t)
    e.res.getForUpdate = func(uint64) (*model.Reservation, error) { return pendingReservation(), nil }
    var gotReason, gotComment string
    var gotRole model.Role
    e.res.rejectTx = func(_ uint64, reason, comment string, byRole model.Role) error {
        gotReason, gotComment, gotRole = reason, comment, byRole
        return nil
    }

    res, err := e.svc.Reject(context.Background(), manager, 42, "Duplicate Booking", "booked twice")
    require.NoError(t, err)
    require.Equal(t, model.StatusRejected, res.Status)
    require.Equal(t, "Duplicate Booking", gotReason)
    require.Equal(t, "booked twice", gotComment)
    require.Equal(t, model.RoleManager, gotRole)

    require.Len(t, e.notifs.created, 1)
    require.Contains(t, e.notifs.created[0].Message, "rejected by manager")
    require.Contains(t, e.notifs.created[0].Message, "Duplicate Booking")

    require.Len(t, e.events, 1)
    require.Equal(t, queue.ActionRejected, e.events[0].Action)
    require.Equal(t, "Duplicate Booking", e.events[0].Reason)
}

func TestCancelOwnPendingReservation(t *testing.T) {
    e := newEnv(t)
    e.res.getForUpdate = func(uint64) (*model.Reservation, error) { return pendingReservation(), nil }
    var gotStatus model.Status
    e.res.updateStatusTx = func(_ uint64, status model.Status) error { gotStatus = status; return nil }

    require.NoError(t, e.svc.Cancel(context.Background(), customer, 42))
    require.Equal(t, model.StatusCancelled, gotStatus)
    require.Empty(t, e.notifs.created)
}

func TestCancelForeignReservationForbidden(t *testing.T) {
    e := newEnv(t)
    e.res.getForUpdate = func(uint64) (*model.Reservation, error) { return pendingReservation(), nil }
    stranger := model.Actor{ID: 99, Role: model.RoleCustomer}
    require.ErrorIs(t, e.svc.Cancel(context.Background(), stranger, 42), repository.ErrForbidden)
}

func TestCancelApprovedReservationRejected(t *testing.T) {
    e := newEnv(t)
    res := pendingReservation()
    res.Status = model.StatusApproved
    e.res.getForUpdate = func(uint64) (*model.Reservation, error) { return res, nil }
    require.ErrorIs(t, e.svc.Cancel(context.Background(), customer, 42), ErrState)
}

func TestComplete(t *testing.T) {
    e := newEnv(t)
    res := pendingReservation()
    res.Status = model.StatusApproved
    e.res.getForUpdate = func(uint64) (*model.Reservation, error) { return res, nil }
    e.res.updateStatusTx = func(_ uint64, status model.Status) error {
        require.Equal(t, model.StatusCompleted, status)
        return nil
    }

    out, err := e.svc.Complete(context.Background(), manager, 42)
    require.NoError(t, err)
    require.Equal(t, model.StatusCompleted, out.Status)
    require.Len(t, e.events, 1)
    require.Equal(t, queue.ActionCompleted, e.events[0].Action)

    // Completing a pending reservation is a state error.
    e.res.getForUpdate = func(uint64) (*model.Reservation, error) { return pendingReservation(), nil }
    _, err = e.svc.Complete(context.Background(), manager, 42)
    require.ErrorIs(t, err, ErrState)
}

func validProposal() ProposalInput {
    return ProposalInput{TableID: 5, Date: "2026-09-03", StartTime: "14:00", DurationHours: 3}
}

func TestRequestReschedule(t *testing.T) {
    e := newEnv(t)
    res := pendingReservation()
    res.Status = model.StatusApproved
    e.res.getForUpdate = func(uint64) (*model.Reservation, error) { return res, nil }
    e.tables.getTx = func(id uint64) (*repository.TableRecord, error) {
        require.EqualValues(t, 5, id)
        return &repository.TableRecord{ID: 5, BilliardType: "snooker", HourlyRateCents: 2000, Status: model.TableAvailable}, nil
    }
    var created *model.RescheduleRequest
    e.rs.createTx = func(req *model.RescheduleRequest) error { created = req; req.ID = 11; return nil }

    req, err := e.svc.RequestReschedule(context.Background(), customer, 42, validProposal())
    require.NoError(t, err)
    require.Same(t, created, req)
    require.Equal(t, model.ReschedulePending, req.Status)
    require.EqualValues(t, 42, req.ReservationID)
    require.EqualValues(t, 6000, req.TotalBillCents) // 3h at the proposed table's rate
    require.Equal(t, "snooker", req.BilliardType)

    // The owner is notified so the request surfaces in the staff feed.
    require.Len(t, e.notifs.created, 1)
    require.Contains(t, e.notifs.created[0].Message, "Reschedule pending approval")
}

func TestRequestRescheduleCompletedRejected(t *testing.T) {
    e := newEnv(t)
    res := pendingReservation()
    res.Status = model.StatusCompleted
    e.res.getForUpdate = func(uint64) (*model.Reservation, error) { return res, nil }
    _, err := e.svc.RequestReschedule(context.Background(), customer, 42, validProposal())
    require.ErrorIs(t, err, ErrState)
}

func TestRequestRescheduleForeignForbidden(t *testing.T) {
    e := newEnv(t)
    e.res.getForUpdate = func(uint64) (*model.Reservation, error) { return pendingReservation(), nil }
    stranger := model.Actor{ID: 99, Role: model.RoleCustomer}
    _, err := e.svc.RequestReschedule(context.Background(), stranger, 42, validProposal())
    require.ErrorIs(t, err, repository.ErrForbidden)
}

func pendingProposal() *model.RescheduleRequest {
    return &model.RescheduleRequest{
        ID:             11,
        ReservationID:  42,
        UserID:         7,
        TableID:        5,
        BilliardType:   "snooker",
        Date:           "2026-09-03",
        StartTime:      "14:00",
        DurationHours:  3,
        TotalBillCents: 6000,
        Status:         model.ReschedulePending,
    }
}

func TestApproveReschedule(t *testing.T) {
    e := newEnv(t)
    e.rs.getForUpdate = func(id uint64) (*model.RescheduleRequest, error) { return pendingProposal(), nil }
    res := pendingReservation()
    res.Status = model.StatusApproved
    e.res.getForUpdate = func(uint64) (*model.Reservation, error) { return res, nil }
    e.res.activeIntervals = func(tableID uint64, date string, excludeID uint64) ([]availability.Interval, error) {
        require.EqualValues(t, 5, tableID)
        require.Equal(t, "2026-09-03", date)
        require.EqualValues(t, 42, excludeID) // the original's own slot never conflicts with itself
        return nil, nil
    }
    overwritten := false
    e.res.overwriteTx = func(id, tableID uint64, billiardType, date, start, end string, durationHours int, totalBillCents uint32) error {
        overwritten = true
        require.EqualValues(t, 42, id)
        require.EqualValues(t, 5, tableID)
        require.Equal(t, "snooker", billiardType)
        require.Equal(t, "2026-09-03", date)
        require.Equal(t, "14:00", start)
        require.Equal(t, "17:00", end)
        require.Equal(t, 3, durationHours)
        require.EqualValues(t, 6000, totalBillCents)
        return nil
    }
    deleted := false
    e.rs.deleteTx = func(id uint64) error { deleted = true; require.EqualValues(t, 11, id); return nil }

    out, err := e.svc.ApproveReschedule(context.Background(), manager, 11)
    require.NoError(t, err)
    require.True(t, overwritten)
    require.True(t, deleted)
    require.Equal(t, model.StatusApproved, out.Status)
    require.Equal(t, "2026-09-03", out.Date)
    require.Equal(t, "17:00", out.EndTime)

    require.Len(t, e.notifs.created, 1)
    require.Contains(t, strings.ToLower(e.notifs.created[0].Message), "reschedule approved")

    require.Len(t, e.events, 1)
    require.Equal(t, queue.ActionRescheduleApproved, e.events[0].Action)
}

func TestApproveRescheduleConflictBlocks(t *testing.T) {
    e := newEnv(t)
    e.rs.getForUpdate = func(uint64) (*model.RescheduleRequest, error) { return pendingProposal(), nil }
    e.res.getForUpdate = func(uint64) (*model.Reservation, error) { return pendingReservation(), nil }
    e.res.activeIntervals = func(uint64, string, uint64) ([]availability.Interval, error) {
        return []availability.Interval{{Start: 15 * 60, End: 16 * 60}}, nil
    }
    e.res.overwriteTx = func(uint64, uint64, string, string, string, string, int, uint32) error {
        t.Fatal("must not overwrite on conflict")
        return nil
    }

    _, err := e.svc.ApproveReschedule(context.Background(), manager, 11)
    require.ErrorIs(t, err, ErrConflict)
    require.Empty(t, e.notifs.created)
    require.Empty(t, e.events)
}

func TestApproveRescheduleWithoutRevalidation(t *testing.T) {
    e := newEnv(t)
    e.svc.RevalidateOnReschedule = false
    e.rs.getForUpdate = func(uint64) (*model.RescheduleRequest, error) { return pendingProposal(), nil }
    e.res.getForUpdate = func(uint64) (*model.Reservation, error) { return pendingReservation(), nil }
    e.res.activeIntervals = func(uint64, string, uint64) ([]availability.Interval, error) {
        t.Fatal("revalidation disabled; must not scan intervals")
        return nil, nil
    }
    e.res.overwriteTx = func(uint64, uint64, string, string, string, string, int, uint32) error { return nil }
    e.rs.deleteTx = func(uint64) error { return nil }

    _, err := e.svc.ApproveReschedule(context.Background(), manager, 11)
    require.NoError(t, err)
}

func TestApproveRescheduleDecidedTwice(t *testing.T) {
    e := newEnv(t)
    req := pendingProposal()
    req.Status = model.RescheduleRejected
    e.rs.getForUpdate = func(uint64) (*model.RescheduleRequest, error) { return req, nil }

    _, err := e.svc.ApproveReschedule(context.Background(), manager, 11)
    require.ErrorIs(t, err, ErrState)
}

func TestRejectReschedule(t *testing.T) {
    e := newEnv(t)
    e.rs.getForUpdate = func(uint64) (*model.RescheduleRequest, error) { return pendingProposal(), nil }
    res := pendingReservation()
    res.Status = model.StatusApproved
    e.res.getForUpdate = func(uint64) (*model.Reservation, error) { return res, nil }
    rejected := false
    e.rs.rejectTx = func(id uint64, reason, comment string) error {
        rejected = true
        require.Equal(t, "Table Not Available", reason)
        return nil
    }
    forced := false
    e.res.forcePendingTx = func(id uint64, reason, comment string, byRole model.Role) error {
        forced = true
        require.EqualValues(t, 42, id)
        require.Equal(t, model.RoleManager, byRole)
        return nil
    }

    out, err := e.svc.RejectReschedule(context.Background(), manager, 11, "Table Not Available", "")
    require.NoError(t, err)
    require.True(t, rejected)
    require.True(t, forced)
    require.Equal(t, model.RescheduleRejected, out.Status)
    require.Equal(t, model.StatusPending, res.Status)

    // The outcome message must not trip the customer's "reschedule pending"
    // exclusion.
    require.Len(t, e.notifs.created, 1)
    msg := e.notifs.created[0].Message
    require.NotContains(t, strings.ToLower(msg), "reschedule pending")
    require.True(t, model.VisibleToRole(model.RoleCustomer, 7, 7, msg))

    require.Len(t, e.events, 1)
    require.Equal(t, queue.ActionRescheduleRejected, e.events[0].Action)
}

func TestRejectRescheduleUnknownReason(t *testing.T) {
    e := newEnv(t)
    _, err := e.svc.RejectReschedule(context.Background(), manager, 11, "Not In Catalog", "")
    require.ErrorIs(t, err, ErrValidation)
    require.Zero(t, e.tx.calls)
}

func TestPublishFailureDoesNotFailTransition(t *testing.T) {
    e := newEnv(t)
    e.svc.Publish = func(context.Context, queue.ReservationEvent) error {
        return errors.New("broker down")
    }
    e.res.getForUpdate = func(uint64) (*model.Reservation, error) { return pendingReservation(), nil }
    e.res.approveTx = func(uint64, string, string) error { return nil }

    _, err := e.svc.Approve(context.Background(), manager, 42, "")
    require.NoError(t, err)
}

func TestTransitionFailureRollsBackNotification(t *testing.T) {
    e := newEnv(t)
    e.res.getForUpdate = func(uint64) (*model.Reservation, error) { return pendingReservation(), nil }
    e.res.approveTx = func(uint64, string, string) error { return errors.New("write failed") }

    _, err := e.svc.Approve(context.Background(), manager, 42, "")
    require.Error(t, err)
    // The status write failed before the notification insert, and no event
    // may escape a failed transaction.
    require.Empty(t, e.notifs.created)
    require.Empty(t, e.events)
}
