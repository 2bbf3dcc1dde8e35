package middleware

import (
	"net/http"

	"bozor/internal/entity"

	"github.com/labstack/echo/v4"
)

func RequireRole(roles ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			currentRole, ok := RoleFromContext(c)
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			for _, role := range roles {
				if currentRole == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "forbidden")
		}
	}
}

// RequireActive rejects accounts that have not completed OTP
// activation. Signin itself does not gate on activation; this is
// where inactive accounts are stopped.
func RequireActive(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !IsActiveFromContext(c) {
			return echo.NewHTTPError(http.StatusForbidden, "account is not activated")
		}
		return next(c)
	}
}
