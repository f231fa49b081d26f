package authRoutes

import (
	controllers "etutor/controllers/auth"
	validators "etutor/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up signup/login/verification routes
func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", validators.Signup(), controllers.Signup)
	authGroup.Post("/login", validators.Login(), controllers.Login)
	authGroup.Post("/verify-otp", validators.VerifyOTP(), controllers.VerifyOTP)
}
