package adminController

import (
	"etutor/database"
	"etutor/middleware"
	"etutor/models"
	quizModels "etutor/models/quiz"

	"github.com/gofiber/fiber/v2"
)

// DashboardStats returns platform-wide totals for the admin dashboard
func DashboardStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalStudents, totalTeachers int64
	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", "STUDENT", false).Count(&totalStudents)
	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", "TEACHER", false).Count(&totalTeachers)

	var totalTutorials, totalQuizzes, totalAttempts, totalReviews int64
	db.Model(&models.Tutorial{}).Where("is_deleted = ?", false).Count(&totalTutorials)
	db.Model(&quizModels.Quiz{}).Where("is_deleted = ?", false).Count(&totalQuizzes)
	db.Model(&quizModels.QuizAttempt{}).Where("status = ?", quizModels.AttemptCompleted).Count(&totalAttempts)
	db.Model(&models.Review{}).Count(&totalReviews)

	var avgScore float64
	db.Model(&quizModels.QuizAttempt{}).
		Where("status = ?", quizModels.AttemptCompleted).
		Select("COALESCE(AVG(score), 0)").Scan(&avgScore)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"total_students":     totalStudents,
		"total_teachers":     totalTeachers,
		"total_tutorials":    totalTutorials,
		"total_quizzes":      totalQuizzes,
		"completed_attempts": totalAttempts,
		"total_reviews":      totalReviews,
		"average_score":      avgScore,
	})
}
