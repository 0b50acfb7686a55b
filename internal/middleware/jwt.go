package middleware // reusable HTTP middleware for the reservation API

import (
    "net/http"
    "strings"

    "github.com/golang-jwt/jwt/v5"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/billiard-table-reservation/internal/model"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the authenticated identity into the request context under
// "user_id" (uint64), "role" (model.Role) and "full_name" (string).
// Handlers read these back through CurrentActor.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
                if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
                    return nil, echo.ErrUnauthorized
                }
                return []byte(secret), nil
            })
            if err != nil || !tok.Valid {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }

            claims, ok := tok.Claims.(jwt.MapClaims)
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
            }

            // Numeric claims decode as float64.
            sub, ok := claims["sub"].(float64)
            if !ok || sub <= 0 {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid subject"})
            }
            roleStr, _ := claims["role"].(string)
            role := model.ParseRole(roleStr)
            if role == "" {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unknown role"})
            }
            fullName, _ := claims["full_name"].(string)

            c.Set("user_id", uint64(sub))
            c.Set("role", role)
            c.Set("full_name", fullName)
            return next(c)
        }
    }
}

// CurrentActor rebuilds the authenticated actor from the context values set
// by JWTAuth. The boolean is false on unauthenticated requests.
func CurrentActor(c echo.Context) (model.Actor, bool) {
    id, ok := c.Get("user_id").(uint64)
    if !ok || id == 0 {
        return model.Actor{}, false
    }
    role, ok := c.Get("role").(model.Role)
    if !ok {
        return model.Actor{}, false
    }
    name, _ := c.Get("full_name").(string)
    return model.Actor{ID: id, Role: role, FullName: name}, true
}
