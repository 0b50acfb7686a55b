package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/billiard-table-reservation/internal/repository"
)

// NotificationHandler serves the role-filtered notification feed. All three
// endpoints resolve visibility through the same repository scope, so what a
// user can list is exactly what counts as unread and exactly what
// mark-all-read touches.
type NotificationHandler struct {
    Notifications *repository.NotificationRepo
}

func NewNotificationHandler(n *repository.NotificationRepo) *NotificationHandler {
    return &NotificationHandler{Notifications: n}
}

// List returns the notifications visible to the caller, newest first.
func (h *NotificationHandler) List(c echo.Context) error {
    actor, err := requireActor(c)
    if err != nil {
        return err
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    out, err := h.Notifications.ListForViewer(ctx, actor)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list notifications failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"notifications": out})
}

// UnreadCount returns the unread badge number under the caller's scope.
func (h *NotificationHandler) UnreadCount(c echo.Context) error {
    actor, err := requireActor(c)
    if err != nil {
        return err
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    n, err := h.Notifications.CountUnreadForViewer(ctx, actor)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "count failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"unread": n})
}

// ReadAll marks every notification in the caller's scope as read.
func (h *NotificationHandler) ReadAll(c echo.Context) error {
    actor, err := requireActor(c)
    if err != nil {
        return err
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    n, err := h.Notifications.MarkAllReadForViewer(ctx, actor)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "mark read failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"updated": n})
}
