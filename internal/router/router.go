package router // route registration for the reservation API

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/billiard-table-reservation/internal/handler"
    "github.com/iliyamo/billiard-table-reservation/internal/middleware"
    "github.com/iliyamo/billiard-table-reservation/internal/model"
)

// RegisterRoutes registers routes that require no authentication.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterAuth wires the session endpoints.  Register, login and refresh
// are open; logout and /me require a bearer token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
    g := e.Group("/v1/auth")
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
    g.POST("/refresh", a.Refresh)
    // Logout accepts a refresh token in the body without authentication so a
    // session can always be terminated.
    g.POST("/logout", a.Logout)

    auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
    auth.GET("/me", a.Me)
    auth.POST("/logout", a.Logout)
}

// RegisterPublic wires the unauthenticated catalog: the table inventory and
// the per-table availability grid.  The cache middleware, when enabled, is
// applied only here.
func RegisterPublic(e *echo.Echo, t *handler.TableHandler, cache echo.MiddlewareFunc) {
    g := e.Group("/v1")
    if cache != nil {
        g.Use(cache)
    }
    g.GET("/tables", t.List)
    g.GET("/tables/:id/slots", t.Slots)
}

// RegisterCustomer wires the customer-scoped reservation endpoints under
// /v1.  All routes require a valid JWT with the customer role.
func RegisterCustomer(e *echo.Echo, h *handler.CustomerReservationHandler, jwtSecret string) {
    g := e.Group(
        "/v1",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(model.RoleCustomer),
    )
    g.POST("/reservations", h.Create)
    g.GET("/reservations", h.List)
    g.GET("/reservations/:id", h.Get)
    g.DELETE("/reservations/:id", h.Cancel)
    g.POST("/reservations/:id/reschedule", h.RequestReschedule)
}

// RegisterStaff wires the decision endpoints under /v1/staff.  Any staff
// role may call them; the booking service enforces the finer rules.
func RegisterStaff(e *echo.Echo, s *handler.StaffReservationHandler, r *handler.RescheduleHandler, jwtSecret string) {
    g := e.Group(
        "/v1/staff",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireStaff(),
    )
    g.GET("/reservations", s.List)
    g.GET("/reservations/export", s.Export)
    g.POST("/reservations/:id/approve", s.Approve)
    g.POST("/reservations/:id/reject", s.Reject)
    g.POST("/reservations/:id/complete", s.Complete)
    g.POST("/checkin", s.CheckIn)
    g.GET("/reject-reasons", s.ReasonsList)

    g.GET("/reschedules", r.ListPending)
    g.POST("/reschedules/:id/approve", r.Approve)
    g.POST("/reschedules/:id/reject", r.Reject)
}

// RegisterNotifications wires the role-filtered feed for every
// authenticated role.
func RegisterNotifications(e *echo.Echo, n *handler.NotificationHandler, jwtSecret string) {
    g := e.Group("/v1/notifications", middleware.JWTAuth(jwtSecret))
    g.GET("", n.List)
    g.GET("/unread-count", n.UnreadCount)
    g.POST("/read-all", n.ReadAll)
}

// RegisterAdmin wires the inventory writes for admins.
func RegisterAdmin(e *echo.Echo, t *handler.TableHandler, jwtSecret string) {
    g := e.Group(
        "/v1/admin",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(model.RoleAdmin, model.RoleSuperadmin),
    )
    g.POST("/tables", t.Create)
    g.PUT("/tables/:id", t.Update)
}
