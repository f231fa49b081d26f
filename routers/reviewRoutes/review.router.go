package reviewRoutes

import (
	controllers "etutor/controllers/review"
	"etutor/middleware"
	validators "etutor/validators/review"

	"github.com/gofiber/fiber/v2"
)

// SetupReviewRoutes sets up review and quick-rating routes
func SetupReviewRoutes(app *fiber.App) {
	reviewGroup := app.Group("/reviews")

	reviewGroup.Post("/tutorial/:id", middleware.JWTMiddleware, validators.CreateReview(), controllers.CreateReview)
	reviewGroup.Post("/tutorial/:id/quick", middleware.JWTMiddleware, validators.QuickRate(), controllers.QuickRate)
	reviewGroup.Get("/tutorial/:id", validators.TutorialID(), controllers.GetTutorialReviews)

	reviewGroup.Put("/:id", middleware.JWTMiddleware, validators.ReviewID(), controllers.UpdateReview)
	reviewGroup.Delete("/:id", middleware.JWTMiddleware, validators.ReviewID(), controllers.DeleteReview)
}
