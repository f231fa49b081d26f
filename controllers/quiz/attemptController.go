package quizController

import (
	"encoding/json"
	"etutor/database"
	"etutor/middleware"
	"etutor/models"
	quizModels "etutor/models/quiz"
	"etutor/utils"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// defaultAttemptWindowMinutes is the expiry window for quizzes without a
// time limit of their own.
const defaultAttemptWindowMinutes = 30

// attemptWindow returns the effective expiry window for a quiz in minutes
func attemptWindow(q *quizModels.Quiz) int {
	if q.TimeLimit > 0 {
		return q.TimeLimit
	}
	return defaultAttemptWindowMinutes
}

// StartQuiz creates a new in_progress attempt and returns the question set
// with correct answers stripped.
func StartQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	quizID := c.Locals("quizID").(int)

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var q quizModels.Quiz
	if err := db.Where("id = ? AND is_deleted = ?", quizID, false).First(&q).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	if !q.IsPublished || !q.IsActive {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Quiz is not available!", nil)
	}

	// Abandoned attempts do not count against the limit
	var attemptCount int64
	db.Model(&quizModels.QuizAttempt{}).
		Where("user_id = ? AND quiz_id = ? AND status <> ?", userID, q.ID, quizModels.AttemptAbandoned).
		Count(&attemptCount)

	if q.MaxAttempts > 0 && attemptCount >= int64(q.MaxAttempts) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Maximum attempts reached for this quiz!", nil)
	}

	var questions []quizModels.Question
	if err := db.Where("quiz_id = ? AND is_active = ? AND is_deleted = ?", q.ID, true, false).
		Order("order_index asc").Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	attempt := quizModels.QuizAttempt{
		UserID:         userID,
		QuizID:         q.ID,
		TotalQuestions: len(questions),
		AttemptNumber:  int(attemptCount) + 1,
		Status:         quizModels.AttemptInProgress,
		StartedAt:      time.Now(),
	}

	if err := db.Create(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to start quiz!", nil)
	}

	// Never expose answers while an attempt is open
	for i := range questions {
		questions[i].CorrectAnswer = ""
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz started successfully!", fiber.Map{
		"attempt":   attempt,
		"questions": questions,
		"timeLimit": attemptWindow(&q),
	})
}

// SubmitQuiz grades an in_progress attempt and finalizes it
func SubmitQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	attemptID := c.Locals("attemptID").(int)

	db := database.Database.Db

	var attempt quizModels.QuizAttempt
	if err := db.Where("id = ?", attemptID).First(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Attempt not found!", nil)
	}

	if attempt.UserID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This attempt does not belong to you!", nil)
	}

	if attempt.Status != quizModels.AttemptInProgress {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Attempt is already finalized!", nil)
	}

	var q quizModels.Quiz
	if err := db.Where("id = ?", attempt.QuizID).First(&q).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	now := time.Now()

	// Expiry window: quiz's own time limit, 30 minutes when unset
	if now.Sub(attempt.StartedAt) > time.Duration(attemptWindow(&q))*time.Minute {
		attempt.Status = quizModels.AttemptTimeout
		attempt.CompletedAt = &now
		if err := db.Save(&attempt).Error; err != nil {
			log.Printf("Error marking attempt %d as timed out: %v", attempt.ID, err)
		}
		return middleware.JsonResponse(c, fiber.StatusGone, false, "Time limit exceeded. Attempt marked as timed out.", fiber.Map{
			"attempt": attempt,
		})
	}

	reqData := new(struct {
		Answers   map[string]interface{} `json:"answers"`
		TimeSpent int                    `json:"timeSpent"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if reqData.Answers == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Answers are required!", nil)
	}

	// Grade against a fresh read of the active question set
	var questions []quizModels.Question
	if err := db.Where("quiz_id = ? AND is_active = ? AND is_deleted = ?", q.ID, true, false).
		Order("order_index asc").Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	result := gradeAnswers(questions, reqData.Answers)

	attempt.Answers = datatypes.JSONMap(reqData.Answers)
	attempt.TimeTaken = reqData.TimeSpent
	attempt.CorrectAnswers = result.CorrectAnswers
	attempt.Score = result.Score
	attempt.IsPassed = result.Score >= q.PassingScore
	attempt.Status = quizModels.AttemptCompleted
	attempt.CompletedAt = &now

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&attempt).Error; err != nil {
			return err
		}
		// Single UPDATE so both aggregates derive from the same old row
		return tx.Model(&quizModels.Quiz{}).Where("id = ?", q.ID).
			Updates(map[string]interface{}{
				"average_score":  gorm.Expr("(average_score * total_attempts + ?) / (total_attempts + 1)", attempt.Score),
				"total_attempts": gorm.Expr("total_attempts + 1"),
			}).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit quiz!", nil)
	}

	// Append to the tutorial progress history when a record exists. The
	// attempt stays completed even if this write fails.
	if err := appendAttemptToProgress(db, &q, &attempt); err != nil {
		log.Printf("Error appending attempt %d to progress: %v", attempt.ID, err)
	}

	if attempt.IsPassed {
		var recipient models.User
		if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&recipient).Error; err != nil {
			log.Printf("Error loading user %d for quiz passed email: %v", userID, err)
		} else {
			go func(user models.User, quizTitle string, score int) {
				if err := utils.SendQuizPassedEmail(user.Email, user.Name, quizTitle, score); err != nil {
					log.Printf("Error sending quiz passed email: %v", err)
				}
			}(recipient, q.Title, attempt.Score)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted successfully!", fiber.Map{
		"attempt":  attempt,
		"score":    attempt.Score,
		"isPassed": attempt.IsPassed,
	})
}

// appendAttemptToProgress appends an attempt summary to an existing
// (user, tutorial) progress record. It never creates one and never
// advances the percentage.
func appendAttemptToProgress(db *gorm.DB, q *quizModels.Quiz, attempt *quizModels.QuizAttempt) error {
	var progress models.Progress
	if err := db.Where("user_id = ? AND tutorial_id = ?", attempt.UserID, q.TutorialID).
		First(&progress).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}

	var history []models.QuizAttemptSummary
	if len(progress.QuizAttempts) > 0 {
		if err := json.Unmarshal(progress.QuizAttempts, &history); err != nil {
			return err
		}
	}

	history = append(history, models.QuizAttemptSummary{
		QuizID:      q.ID,
		AttemptID:   attempt.ID,
		Score:       attempt.Score,
		IsPassed:    attempt.IsPassed,
		CompletedAt: *attempt.CompletedAt,
	})

	raw, err := json.Marshal(history)
	if err != nil {
		return err
	}

	return db.Model(&models.Progress{}).Where("id = ?", progress.ID).
		Update("quiz_attempts", datatypes.JSON(raw)).Error
}

// GetMyAttempts lists the caller's attempts for a quiz
func GetMyAttempts(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	quizID := c.Locals("quizID").(int)

	var attempts []quizModels.QuizAttempt
	if err := database.Database.Db.
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("created_at desc").Find(&attempts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched successfully!", attempts)
}

// GetAttempt returns one attempt (owner only)
func GetAttempt(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	attemptID := c.Locals("attemptID").(int)

	var attempt quizModels.QuizAttempt
	if err := database.Database.Db.
		Where("id = ? AND user_id = ?", attemptID, userID).
		First(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Attempt not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt fetched successfully!", attempt)
}
