package middleware

import (
	"bozor/internal/entity"

	"github.com/labstack/echo/v4"
)

const (
	contextUserIDKey = "auth_user_id"
	contextRoleKey   = "auth_role"
	contextActiveKey = "auth_is_active"
)

func SetAuthContext(c echo.Context, userID int64, role entity.Role, isActive bool) {
	c.Set(contextUserIDKey, userID)
	c.Set(contextRoleKey, role)
	c.Set(contextActiveKey, isActive)
}

func UserIDFromContext(c echo.Context) (int64, bool) {
	value := c.Get(contextUserIDKey)
	userID, ok := value.(int64)
	return userID, ok
}

func RoleFromContext(c echo.Context) (entity.Role, bool) {
	value := c.Get(contextRoleKey)
	role, ok := value.(entity.Role)
	return role, ok
}

func IsActiveFromContext(c echo.Context) bool {
	value := c.Get(contextActiveKey)
	isActive, ok := value.(bool)
	return ok && isActive
}
