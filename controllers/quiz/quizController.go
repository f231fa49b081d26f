package quizController

import (
	"etutor/database"
	"etutor/middleware"
	"etutor/models"
	quizModels "etutor/models/quiz"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// fetchOwnedQuiz loads a quiz and verifies the caller may mutate it
// (quiz author or admin).
func fetchOwnedQuiz(c *fiber.Ctx, quizID int, userID uint) (*quizModels.Quiz, error) {
	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var q quizModels.Quiz
	if err := db.Where("id = ? AND is_deleted = ?", quizID, false).First(&q).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	if q.TeacherID != userID && user.Role != "ADMIN" {
		return nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only manage your own quizzes!", nil)
	}

	return &q, nil
}

// CreateQuiz creates a quiz for a tutorial (teacher/admin only)
func CreateQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		TutorialID   uint   `json:"tutorial_id"`
		Title        string `json:"title"`
		Description  string `json:"description"`
		TimeLimit    int    `json:"time_limit"`
		PassingScore *int   `json:"passing_score"`
		MaxAttempts  int    `json:"max_attempts"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var tutorial models.Tutorial
	if err := db.Where("id = ? AND is_deleted = ?", reqData.TutorialID, false).First(&tutorial).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Tutorial not found!", nil)
	}

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}
	if tutorial.TeacherID != userID && user.Role != "ADMIN" {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only add quizzes to your own tutorials!", nil)
	}

	passingScore := 70
	if reqData.PassingScore != nil {
		passingScore = *reqData.PassingScore
	}

	q := quizModels.Quiz{
		TutorialID:   reqData.TutorialID,
		TeacherID:    tutorial.TeacherID,
		Title:        reqData.Title,
		Description:  reqData.Description,
		TimeLimit:    reqData.TimeLimit,
		PassingScore: passingScore,
		MaxAttempts:  reqData.MaxAttempts,
	}

	if err := db.Create(&q).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz created successfully!", q)
}

// UpdateQuiz updates quiz settings (owner/admin only)
func UpdateQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	quizID := c.Locals("quizID").(int)

	q, err := fetchOwnedQuiz(c, quizID, userID)
	if err != nil {
		return err
	}

	reqData := new(struct {
		Title        *string `json:"title"`
		Description  *string `json:"description"`
		TimeLimit    *int    `json:"time_limit"`
		PassingScore *int    `json:"passing_score"`
		MaxAttempts  *int    `json:"max_attempts"`
		IsActive     *bool   `json:"is_active"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Title != nil {
		q.Title = *reqData.Title
	}
	if reqData.Description != nil {
		q.Description = *reqData.Description
	}
	if reqData.TimeLimit != nil {
		q.TimeLimit = *reqData.TimeLimit
	}
	if reqData.PassingScore != nil {
		q.PassingScore = *reqData.PassingScore
	}
	if reqData.MaxAttempts != nil {
		q.MaxAttempts = *reqData.MaxAttempts
	}
	if reqData.IsActive != nil {
		q.IsActive = *reqData.IsActive
	}

	if err := database.Database.Db.Save(q).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz updated successfully!", q)
}

// PublishQuiz publishes a quiz so students can start attempts
func PublishQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	quizID := c.Locals("quizID").(int)

	q, err := fetchOwnedQuiz(c, quizID, userID)
	if err != nil {
		return err
	}

	if q.TotalQuestions == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cannot publish a quiz with no questions!", nil)
	}

	q.IsPublished = true
	if err := database.Database.Db.Save(q).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz published successfully!", q)
}

// DeleteQuiz soft-deletes a quiz and cascades to its questions and attempts
func DeleteQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	quizID := c.Locals("quizID").(int)

	q, err := fetchOwnedQuiz(c, quizID, userID)
	if err != nil {
		return err
	}

	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&quizModels.Quiz{}).Where("id = ?", q.ID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
		if err := tx.Model(&quizModels.Question{}).Where("quiz_id = ?", q.ID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
		return tx.Where("quiz_id = ?", q.ID).Delete(&quizModels.QuizAttempt{}).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz deleted successfully!", nil)
}

// GetTutorialQuizzes lists published quizzes of a tutorial
func GetTutorialQuizzes(c *fiber.Ctx) error {
	tutorialID := c.Locals("tutorialID").(int)

	db := database.Database.Db

	var tutorial models.Tutorial
	if err := db.Where("id = ? AND is_deleted = ?", tutorialID, false).First(&tutorial).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Tutorial not found!", nil)
	}

	var quizzes []quizModels.Quiz
	if err := db.Where("tutorial_id = ? AND is_deleted = ? AND is_published = ?", tutorialID, false, true).
		Order("created_at asc").Find(&quizzes).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch quizzes!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quizzes fetched successfully!", quizzes)
}
