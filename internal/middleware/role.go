package middleware

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/billiard-table-reservation/internal/model"
)

// RequireRole aborts with 403 unless the authenticated user's role is one
// of the allowed set. It assumes JWTAuth already ran and stored the role in
// the context.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
    allowed := make(map[model.Role]bool, len(roles))
    for _, r := range roles {
        allowed[r] = true
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            role, ok := c.Get("role").(model.Role)
            if !ok || !allowed[role] {
                return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
            }
            return next(c)
        }
    }
}

// RequireStaff admits any staff role. Superadmin passes everywhere.
func RequireStaff() echo.MiddlewareFunc {
    return RequireRole(model.RoleFrontdesk, model.RoleManager, model.RoleAdmin, model.RoleSuperadmin)
}
