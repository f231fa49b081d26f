package quizRoutes

import (
	controllers "etutor/controllers/quiz"
	"etutor/middleware"
	validators "etutor/validators/quiz"

	"github.com/gofiber/fiber/v2"
)

// SetupQuizRoutes sets up quiz management and attempt lifecycle routes
func SetupQuizRoutes(app *fiber.App) {
	quizGroup := app.Group("/quizzes")

	// Quiz management (teacher/admin)
	quizGroup.Post("/create", middleware.JWTMiddleware, middleware.RequireRole("TEACHER", "ADMIN"), validators.CreateQuiz(), controllers.CreateQuiz)
	quizGroup.Put("/:id", middleware.JWTMiddleware, middleware.RequireRole("TEACHER", "ADMIN"), validators.UpdateQuiz(), controllers.UpdateQuiz)
	quizGroup.Delete("/:id", middleware.JWTMiddleware, middleware.RequireRole("TEACHER", "ADMIN"), validators.QuizID(), controllers.DeleteQuiz)
	quizGroup.Post("/:id/publish", middleware.JWTMiddleware, middleware.RequireRole("TEACHER", "ADMIN"), validators.QuizID(), controllers.PublishQuiz)

	// Question management (teacher/admin)
	quizGroup.Post("/:id/questions", middleware.JWTMiddleware, middleware.RequireRole("TEACHER", "ADMIN"), validators.AddQuestion(), controllers.AddQuestion)
	quizGroup.Get("/:id/questions", middleware.JWTMiddleware, middleware.RequireRole("TEACHER", "ADMIN"), validators.QuizID(), controllers.GetQuizQuestions)

	questionGroup := app.Group("/questions")
	questionGroup.Put("/:id", middleware.JWTMiddleware, middleware.RequireRole("TEACHER", "ADMIN"), validators.QuestionID(), controllers.UpdateQuestion)
	questionGroup.Delete("/:id", middleware.JWTMiddleware, middleware.RequireRole("TEACHER", "ADMIN"), validators.QuestionID(), controllers.DeleteQuestion)

	// Attempt lifecycle (students)
	quizGroup.Post("/:id/start", middleware.JWTMiddleware, validators.QuizID(), controllers.StartQuiz)
	quizGroup.Post("/attempt/:id/submit", middleware.JWTMiddleware, validators.SubmitQuiz(), controllers.SubmitQuiz)
	quizGroup.Get("/attempt/:id", middleware.JWTMiddleware, validators.AttemptID(), controllers.GetAttempt)
	quizGroup.Get("/:id/attempts", middleware.JWTMiddleware, validators.QuizID(), controllers.GetMyAttempts)

	// Published quizzes of a tutorial
	app.Get("/tutorials/:id/quizzes", middleware.JWTMiddleware, validators.TutorialID(), controllers.GetTutorialQuizzes)
}
