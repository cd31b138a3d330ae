package middleware

import (
	"station-api/internal/database"
	"station-api/internal/response"

	"github.com/gofiber/fiber/v2"
)

// DeniedMessage is deliberately fixed: a denial never reveals which
// permission was missing.
const DeniedMessage = "User does not have the right permissions."

// PermissionProtected allows the request through when the authenticated
// user holds at least one of the given permissions (logical OR).
func PermissionProtected(perms ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("user_id").(uint)
		if !ok {
			return response.Unauthorized(c, "Unauthenticated.")
		}

		if HasAnyPermissionTo(userID, perms...) {
			return c.Next()
		}

		return response.Forbidden(c, DeniedMessage)
	}
}

// HasPermissionTo resolves a single permission through the user's roles.
func HasPermissionTo(userID uint, name string) bool {
	var count int64
	database.DB.Table("permissions").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Joins("JOIN user_roles ON user_roles.role_id = role_permissions.role_id").
		Where("user_roles.user_id = ? AND permissions.name = ?", userID, name).
		Count(&count)
	return count > 0
}

func HasAnyPermissionTo(userID uint, names ...string) bool {
	var count int64
	database.DB.Table("permissions").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Joins("JOIN user_roles ON user_roles.role_id = role_permissions.role_id").
		Where("user_roles.user_id = ? AND permissions.name IN ?", userID, names).
		Count(&count)
	return count > 0
}
