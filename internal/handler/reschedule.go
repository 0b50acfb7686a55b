package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/billiard-table-reservation/internal/booking"
    "github.com/iliyamo/billiard-table-reservation/internal/repository"
)

// RescheduleHandler serves the staff side of the reschedule workflow.
type RescheduleHandler struct {
    Booking     *booking.Service
    Reschedules *repository.RescheduleRepo
}

func NewRescheduleHandler(b *booking.Service, r *repository.RescheduleRepo) *RescheduleHandler {
    return &RescheduleHandler{Booking: b, Reschedules: r}
}

// ListPending returns the proposal queue in arrival order.
func (h *RescheduleHandler) ListPending(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    out, err := h.Reschedules.ListPending(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reschedules failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"reschedule_requests": out})
}

// Approve applies a proposal to its reservation. Returns the updated
// reservation; the proposal row is gone afterwards.
func (h *RescheduleHandler) Approve(c echo.Context) error {
    actor, err := requireActor(c)
    if err != nil {
        return err
    }
    id := paramID(c, "id")
    if id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reschedule id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    res, err := h.Booking.ApproveReschedule(ctx, actor, id)
    if err != nil {
        return writeBookingError(c, err)
    }
    return c.JSON(http.StatusOK, res)
}

// Reject declines a proposal with a catalog reason and pushes the original
// reservation back to pending.
func (h *RescheduleHandler) Reject(c echo.Context) error {
    actor, err := requireActor(c)
    if err != nil {
        return err
    }
    id := paramID(c, "id")
    if id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reschedule id"})
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

    out, err := h.Booking.RejectReschedule(ctx, actor, id, req.Reason, req.Comment)
    if err != nil {
        return writeBookingError(c, err)
    }
    return c.JSON(http.StatusOK, out)
}
