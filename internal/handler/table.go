package handler

import (
    "context"
    "database/sql"
    "net/http"
    "time"

    "github.com/go-playground/validator/v10"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/billiard-table-reservation/internal/availability"
    "github.com/iliyamo/billiard-table-reservation/internal/model"
    "github.com/iliyamo/billiard-table-reservation/internal/repository"
)

var validate = validator.New()

// TableHandler serves the public table inventory plus the admin-only
// inventory writes.
type TableHandler struct {
    Tables       *repository.TableRepo
    Reservations *repository.ReservationRepo
    Checker      *availability.Checker
}

func NewTableHandler(t *repository.TableRepo, r *repository.ReservationRepo, ch *availability.Checker) *TableHandler {
    return &TableHandler{Tables: t, Reservations: r, Checker: ch}
}

// List returns the full table inventory. Public, cached.
func (h *TableHandler) List(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()
    tables, err := h.Tables.List(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list tables failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"tables": tables})
}

// Slots enumerates a table's one-hour availability grid for a date given as
// ?date=2006-01-02. Public, cached briefly.
func (h *TableHandler) Slots(c echo.Context) error {
    id := paramID(c, "id")
    if id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
    }
    date := c.QueryParam("date")
    if _, err := time.Parse("2006-01-02", date); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    table, err := h.Tables.Get(ctx, id)
    if err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load table failed"})
    }

    intervals, err := h.Reservations.ActiveIntervals(ctx, table.ID, date)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load bookings failed"})
    }
    slots, err := h.Checker.DaySlots(date, intervals)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    // A table out of service has no bookable slots regardless of the grid.
    if table.Status != model.TableAvailable {
        for i := range slots {
            slots[i].Available = false
        }
    }
    return c.JSON(http.StatusOK, echo.Map{
        "table_id": table.ID,
        "date":     date,
        "status":   table.Status,
        "slots":    slots,
    })
}

type tableReq struct {
    BilliardType    string `json:"billiard_type" validate:"required,max=64"`
    HourlyRateCents uint32 `json:"hourly_rate_cents" validate:"required,gt=0"`
    Status          string `json:"status" validate:"required,oneof=available maintenance occupied"`
}

// Create adds a table to the inventory. Admin only.
func (h *TableHandler) Create(c echo.Context) error {
    var req tableReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if err := validate.Struct(req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    id, err := h.Tables.Create(ctx, req.BilliardType, req.HourlyRateCents, req.Status)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create table failed"})
    }
    return c.JSON(http.StatusCreated, repository.TableRecord{
        ID: id, BilliardType: req.BilliardType, HourlyRateCents: req.HourlyRateCents, Status: req.Status,
    })
}

// Update overwrites a table's type, rate and operational status. Admin only.
func (h *TableHandler) Update(c echo.Context) error {
    id := paramID(c, "id")
    if id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
    }
    var req tableReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if err := validate.Struct(req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Tables.Update(ctx, id, req.BilliardType, req.HourlyRateCents, req.Status); err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update table failed"})
    }
    return c.JSON(http.StatusOK, repository.TableRecord{
        ID: id, BilliardType: req.BilliardType, HourlyRateCents: req.HourlyRateCents, Status: req.Status,
    })
}
