package adminRoutes

import (
	controllers "etutor/controllers/admin"
	"etutor/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up admin dashboard routes
func SetupAdminRoutes(app *fiber.App) {
	dashGroup := app.Group("/admin/dashboard")
	dashGroup.Get("/stats", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), controllers.DashboardStats)
}
