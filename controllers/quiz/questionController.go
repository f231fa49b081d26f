package quizController

import (
	"encoding/json"
	"etutor/database"
	"etutor/middleware"
	quizModels "etutor/models/quiz"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AddQuestion adds a question to a quiz (owner/admin only)
func AddQuestion(c *fiber.Ctx) error {
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
		QuestionText  string   `json:"question_text"`
		QuestionType  string   `json:"question_type"`
		Options       []string `json:"options"`
		CorrectAnswer string   `json:"correct_answer"`
		Points        *int     `json:"points"`
		Order         int      `json:"order"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	points := 1
	if reqData.Points != nil {
		points = *reqData.Points
	}

	optionsJSON, _ := json.Marshal(reqData.Options)

	question := quizModels.Question{
		QuizID:        q.ID,
		QuestionText:  reqData.QuestionText,
		QuestionType:  reqData.QuestionType,
		Options:       optionsJSON,
		CorrectAnswer: reqData.CorrectAnswer,
		Points:        points,
		OrderIndex:    reqData.Order,
	}

	db := database.Database.Db
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&question).Error; err != nil {
			return err
		}
		// Keep the denormalized count in sync server-side
		return tx.Model(&quizModels.Quiz{}).Where("id = ?", q.ID).
			Update("total_questions", gorm.Expr("total_questions + 1")).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question added successfully!", question)
}

// UpdateQuestion updates a question (owner/admin only)
func UpdateQuestion(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	questionID := c.Locals("questionID").(int)

	db := database.Database.Db

	var question quizModels.Question
	if err := db.Where("id = ? AND is_deleted = ?", questionID, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	if _, err := fetchOwnedQuiz(c, int(question.QuizID), userID); err != nil {
		return err
	}

	reqData := new(struct {
		QuestionText  *string   `json:"question_text"`
		QuestionType  *string   `json:"question_type"`
		Options       *[]string `json:"options"`
		CorrectAnswer *string   `json:"correct_answer"`
		Points        *int      `json:"points"`
		Order         *int      `json:"order"`
		IsActive      *bool     `json:"is_active"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.QuestionText != nil {
		question.QuestionText = *reqData.QuestionText
	}
	if reqData.QuestionType != nil {
		question.QuestionType = *reqData.QuestionType
	}
	if reqData.Options != nil {
		optionsJSON, _ := json.Marshal(*reqData.Options)
		question.Options = optionsJSON
	}
	if reqData.CorrectAnswer != nil {
		question.CorrectAnswer = *reqData.CorrectAnswer
	}
	if reqData.Points != nil {
		question.Points = *reqData.Points
	}
	if reqData.Order != nil {
		question.OrderIndex = *reqData.Order
	}
	if reqData.IsActive != nil {
		question.IsActive = *reqData.IsActive
	}

	if err := db.Save(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question updated successfully!", question)
}

// DeleteQuestion soft-deletes a question and decrements the quiz count
func DeleteQuestion(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	questionID := c.Locals("questionID").(int)

	db := database.Database.Db

	var question quizModels.Question
	if err := db.Where("id = ? AND is_deleted = ?", questionID, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	if _, err := fetchOwnedQuiz(c, int(question.QuizID), userID); err != nil {
		return err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&quizModels.Question{}).Where("id = ?", question.ID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
		return tx.Model(&quizModels.Quiz{}).Where("id = ? AND total_questions > 0", question.QuizID).
			Update("total_questions", gorm.Expr("total_questions - 1")).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question deleted successfully!", nil)
}

// GetQuizQuestions lists a quiz's questions with answers (owner/admin only)
func GetQuizQuestions(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	quizID := c.Locals("quizID").(int)

	q, err := fetchOwnedQuiz(c, quizID, userID)
	if err != nil {
		return err
	}

	var questions []quizModels.Question
	if err := database.Database.Db.
		Where("quiz_id = ? AND is_deleted = ?", q.ID, false).
		Order("order_index asc").Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Questions fetched successfully!", questions)
}
