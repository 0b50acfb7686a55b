package handler

import (
    "context"
    "encoding/csv"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/billiard-table-reservation/internal/booking"
    "github.com/iliyamo/billiard-table-reservation/internal/repository"
)

// StaffReservationHandler serves the staff decision endpoints: the
// system-wide feed, approve, reject, check-in, complete and the CSV export.
type StaffReservationHandler struct {
    Booking      *booking.Service
    Reservations *repository.ReservationRepo
    Reasons      *repository.ReasonRepo
}

func NewStaffReservationHandler(b *booking.Service, r *repository.ReservationRepo, rs *repository.ReasonRepo) *StaffReservationHandler {
    return &StaffReservationHandler{Booking: b, Reservations: r, Reasons: rs}
}

// List returns the system-wide reservation feed, optionally filtered by
// ?status=, ?from= and ?to= (inclusive date bounds).
func (h *StaffReservationHandler) List(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    out, err := h.Reservations.ListByFilter(ctx, repository.ListFilter{
        Status: c.QueryParam("status"),
        From:   c.QueryParam("from"),
        To:     c.QueryParam("to"),
    })
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"reservations": out})
}

type approveReq struct {
    ReferenceNo string `json:"reference_no"`
}

// Approve confirms a pending reservation. For e-wallet bookings the body
// may carry the reference number the approver verified against the payment.
func (h *StaffReservationHandler) Approve(c echo.Context) error {
    actor, err := requireActor(c)
    if err != nil {
        return err
    }
    id := paramID(c, "id")
    if id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    var req approveReq
    _ = c.Bind(&req)

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    res, err := h.Booking.Approve(ctx, actor, id, req.ReferenceNo)
    if err != nil {
        return writeBookingError(c, err)
    }
    return c.JSON(http.StatusOK, res)
}

type rejectReq struct {
    Reason  string `json:"reason" validate:"required"`
    Comment string `json:"comment"`
}

// Reject declines a pending reservation with a catalog reason.
func (h *StaffReservationHandler) Reject(c echo.Context) error {
    actor, err := requireActor(c)
    if err != nil {
        return err
    }
    id := paramID(c, "id")
    if id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    var req rejectReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if err := validate.Struct(req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    res, err := h.Booking.Reject(ctx, actor, id, req.Reason, req.Comment)
    if err != nil {
        return writeBookingError(c, err)
    }
    return c.JSON(http.StatusOK, res)
}

type checkinReq struct {
    ReservationNo string `json:"reservation_no" validate:"required"`
}

// CheckIn applies the approval effects to the reservation named by a
// scanned booking reference.
func (h *StaffReservationHandler) CheckIn(c echo.Context) error {
    actor, err := requireActor(c)
    if err != nil {
        return err
    }
    var req checkinReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if err := validate.Struct(req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    res, err := h.Booking.CheckIn(ctx, actor, req.ReservationNo)
    if err != nil {
        return writeBookingError(c, err)
    }
    return c.JSON(http.StatusOK, res)
}

// Complete marks an approved reservation finished.
func (h *StaffReservationHandler) Complete(c echo.Context) error {
    actor, err := requireActor(c)
    if err != nil {
        return err
    }
    id := paramID(c, "id")
    if id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    res, err := h.Booking.Complete(ctx, actor, id)
    if err != nil {
        return writeBookingError(c, err)
    }
    return c.JSON(http.StatusOK, res)
}

// Reasons lists the selectable rejection reasons for ?kind=reservation or
// ?kind=reschedule (default reservation).
func (h *StaffReservationHandler) ReasonsList(c echo.Context) error {
    kind := c.QueryParam("kind")
    if kind == "" {
        kind = repository.ReasonKindReservation
    }
    if kind != repository.ReasonKindReservation && kind != repository.ReasonKindReschedule {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "kind must be reservation or reschedule"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()
    return c.JSON(http.StatusOK, echo.Map{"kind": kind, "reasons": h.Reasons.ListByKind(ctx, kind)})
}

// Export streams the filtered feed as CSV for offline reporting.
func (h *StaffReservationHandler) Export(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
    defer cancel()

    out, err := h.Reservations.ListByFilter(ctx, repository.ListFilter{
        Status: c.QueryParam("status"),
        From:   c.QueryParam("from"),
        To:     c.QueryParam("to"),
    })
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
    }

    c.Response().Header().Set(echo.HeaderContentType, "text/csv")
    c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="reservations.csv"`)
    c.Response().WriteHeader(http.StatusOK)

    w := csv.NewWriter(c.Response())
    _ = w.Write([]string{"reservation_no", "user_id", "table_id", "billiard_type",
        "date", "start_time", "end_time", "duration_hours", "total_bill_cents",
        "payment_method", "payment_type", "payment_status", "status"})
    for _, r := range out {
        _ = w.Write([]string{
            r.ReservationNo,
            strconv.FormatUint(r.UserID, 10),
            strconv.FormatUint(r.TableID, 10),
            r.BilliardType,
            r.Date,
            r.StartTime,
            r.EndTime,
            strconv.Itoa(r.DurationHours),
            strconv.FormatUint(uint64(r.TotalBillCents), 10),
            r.PaymentMethod,
            r.PaymentType,
            r.PaymentStatus,
            string(r.Status),
        })
    }
    w.Flush()
    return w.Error()
}
