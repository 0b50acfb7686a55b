package handler

import (
    "database/sql"
    "errors"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/billiard-table-reservation/internal/booking"
    "github.com/iliyamo/billiard-table-reservation/internal/middleware"
    "github.com/iliyamo/billiard-table-reservation/internal/model"
    "github.com/iliyamo/billiard-table-reservation/internal/repository"
)

// paramID parses a numeric path parameter. Returns 0 when missing or not a
// positive integer; callers treat 0 as a bad request.
func paramID(c echo.Context, name string) uint64 {
    v, err := strconv.ParseUint(c.Param(name), 10, 64)
    if err != nil {
        return 0
    }
    return v
}

// requireActor pulls the authenticated actor out of the context. The JWT
// middleware guarantees it on protected routes; the fallback guards against
// route wiring mistakes.
func requireActor(c echo.Context) (model.Actor, error) {
    actor, ok := middleware.CurrentActor(c)
    if !ok {
        return model.Actor{}, c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    return actor, nil
}

// writeBookingError maps the lifecycle failure taxonomy onto HTTP statuses:
// validation 400, forbidden 403, missing 404, conflicts and bad transitions
// 409. Anything unrecognized is a 500 with a generic body.
func writeBookingError(c echo.Context, err error) error {
    switch {
    case errors.Is(err, booking.ErrValidation):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    case errors.Is(err, repository.ErrForbidden):
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    case errors.Is(err, booking.ErrNotFound), errors.Is(err, sql.ErrNoRows):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
    case errors.Is(err, booking.ErrConflict), errors.Is(err, booking.ErrState), errors.Is(err, repository.ErrConflict):
        return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
    default:
        c.Logger().Errorf("booking: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
    }
}
