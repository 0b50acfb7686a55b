package handler

import (
    "context"
    "database/sql"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/billiard-table-reservation/internal/booking"
    "github.com/iliyamo/billiard-table-reservation/internal/repository"
)

// CustomerReservationHandler serves the customer-facing reservation
// endpoints: book, list own, inspect, cancel and propose a reschedule.
type CustomerReservationHandler struct {
    Booking      *booking.Service
    Reservations *repository.ReservationRepo
}

func NewCustomerReservationHandler(b *booking.Service, r *repository.ReservationRepo) *CustomerReservationHandler {
    return &CustomerReservationHandler{Booking: b, Reservations: r}
}

type createReservationReq struct {
    TableID       uint64 `json:"table_id" validate:"required,gt=0"`
    Date          string `json:"date" validate:"required"`
    StartTime     string `json:"start_time" validate:"required"`
    DurationHours int    `json:"duration_hours" validate:"required,gte=1,lte=12"`
    PaymentMethod string `json:"payment_method" validate:"required,oneof=cash e-wallet"`
    PaymentType   string `json:"payment_type" validate:"required"`
    ReferenceNo   string `json:"reference_no"`
}

// Create books a slot. The slot check and the insert share one transaction,
// so a 409 here means the slot was genuinely unavailable at commit time.
func (h *CustomerReservationHandler) Create(c echo.Context) error {
    actor, err := requireActor(c)
    if err != nil {
        return err
    }
    var req createReservationReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if err := validate.Struct(req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    res, err := h.Booking.Create(ctx, actor, booking.CreateInput{
        TableID:       req.TableID,
        Date:          req.Date,
        StartTime:     req.StartTime,
        DurationHours: req.DurationHours,
        PaymentMethod: req.PaymentMethod,
        PaymentType:   req.PaymentType,
        ReferenceNo:   req.ReferenceNo,
    })
    if err != nil {
        return writeBookingError(c, err)
    }
    return c.JSON(http.StatusCreated, res)
}

// List returns the caller's reservations, newest first.
func (h *CustomerReservationHandler) List(c echo.Context) error {
    actor, err := requireActor(c)
    if err != nil {
        return err
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    out, err := h.Reservations.ListByUser(ctx, actor.ID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"reservations": out})
}

// Get returns one of the caller's reservations.
func (h *CustomerReservationHandler) Get(c echo.Context) error {
    actor, err := requireActor(c)
    if err != nil {
        return err
    }
    id := paramID(c, "id")
    if id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    res, err := h.Reservations.Get(ctx, id)
    if err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
    }
    if res.UserID != actor.ID && !actor.Role.IsStaff() {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    }
    return c.JSON(http.StatusOK, res)
}

// Cancel withdraws the caller's own pending reservation.
func (h *CustomerReservationHandler) Cancel(c echo.Context) error {
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

    if err := h.Booking.Cancel(ctx, actor, id); err != nil {
        return writeBookingError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}

type rescheduleReq struct {
    TableID       uint64 `json:"table_id" validate:"required,gt=0"`
    Date          string `json:"date" validate:"required"`
    StartTime     string `json:"start_time" validate:"required"`
    DurationHours int    `json:"duration_hours" validate:"required,gte=1,lte=12"`
}

// RequestReschedule files a reschedule proposal against the caller's own
// reservation. The original booking keeps its schedule until staff decide.
func (h *CustomerReservationHandler) RequestReschedule(c echo.Context) error {
    actor, err := requireActor(c)
    if err != nil {
        return err
    }
    id := paramID(c, "id")
    if id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    var req rescheduleReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if err := validate.Struct(req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    out, err := h.Booking.RequestReschedule(ctx, actor, id, booking.ProposalInput{
        TableID:       req.TableID,
        Date:          req.Date,
        StartTime:     req.StartTime,
        DurationHours: req.DurationHours,
    })
    if err != nil {
        return writeBookingError(c, err)
    }
    return c.JSON(http.StatusCreated, out)
}
