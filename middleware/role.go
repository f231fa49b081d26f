package middleware

import (
	"etutor/database"
	"etutor/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RequireRole returns a middleware that checks the user's role against the
// allowed set. The role is re-read from the database rather than trusted
// from the token so demotions take effect immediately.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		var user models.User
		err := database.Database.Db.
			Where("id = ? AND is_deleted = ? AND role IN ?", userID, false, roles).
			First(&user).Error

		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
			}
			return JsonResponse(c, fiber.StatusInternalServerError, false, "Server error while checking permissions!", nil)
		}

		c.Locals("userRole", user.Role)
		return c.Next()
	}
}
