package tutorialRoutes

import (
	controllers "etutor/controllers/tutorial"
	"etutor/middleware"
	validators "etutor/validators/tutorial"

	"github.com/gofiber/fiber/v2"
)

// SetupTutorialRoutes sets up tutorial, category and progress routes
func SetupTutorialRoutes(app *fiber.App) {
	tutorialGroup := app.Group("/tutorials")

	// Browsing
	tutorialGroup.Get("/list", middleware.JWTMiddleware, controllers.GetAllTutorials)
	tutorialGroup.Get("/:id", middleware.JWTMiddleware, validators.TutorialID(), controllers.GetTutorialDetails)

	// Tutorial management (teacher/admin)
	tutorialGroup.Post("/create", middleware.JWTMiddleware, middleware.RequireRole("TEACHER", "ADMIN"), validators.CreateTutorial(), controllers.CreateTutorial)
	tutorialGroup.Put("/:id", middleware.JWTMiddleware, middleware.RequireRole("TEACHER", "ADMIN"), validators.TutorialID(), controllers.UpdateTutorial)
	tutorialGroup.Delete("/:id", middleware.JWTMiddleware, middleware.RequireRole("TEACHER", "ADMIN"), validators.TutorialID(), controllers.DeleteTutorial)
	tutorialGroup.Post("/:id/publish", middleware.JWTMiddleware, middleware.RequireRole("TEACHER", "ADMIN"), validators.TutorialID(), controllers.PublishTutorial)
	tutorialGroup.Post("/:id/thumbnail", middleware.JWTMiddleware, middleware.RequireRole("TEACHER", "ADMIN"), validators.TutorialID(), controllers.UploadThumbnail)

	// Progress tracking
	tutorialGroup.Post("/:id/progress", middleware.JWTMiddleware, validators.UpdateProgress(), controllers.UpdateProgress)
	tutorialGroup.Get("/:id/progress", middleware.JWTMiddleware, validators.TutorialID(), controllers.GetProgress)
	app.Get("/user/progress", middleware.JWTMiddleware, controllers.GetMyProgressList)

	// Categories
	categoryGroup := app.Group("/categories")
	categoryGroup.Get("/list", controllers.GetAllCategories)
	categoryGroup.Post("/create", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), validators.CreateCategory(), controllers.CreateCategory)
	categoryGroup.Put("/:id", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), validators.CategoryID(), controllers.UpdateCategory)
	categoryGroup.Delete("/:id", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"), validators.CategoryID(), controllers.DeleteCategory)
}
