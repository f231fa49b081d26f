package quizController

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"etutor/config"
	"etutor/database"
	"etutor/models"
	quizModels "etutor/models/quiz"
	validators "etutor/validators/quiz"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func attemptTestAuth(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Get("X-Test-User"))
	c.Locals("userId", uint(id))
	return c.Next()
}

func setupAttemptApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	config.LoadConfig()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Post("/quizzes/:id/start", attemptTestAuth, validators.QuizID(), StartQuiz)
	app.Post("/quizzes/attempt/:id/submit", attemptTestAuth, validators.SubmitQuiz(), SubmitQuiz)
	app.Get("/quizzes/attempt/:id", attemptTestAuth, validators.AttemptID(), GetAttempt)
	app.Get("/quizzes/:id/attempts", attemptTestAuth, validators.QuizID(), GetMyAttempts)

	return app, db
}

func attemptDoJSON(t *testing.T, app *fiber.App, method, path string, userID uint, body interface{}) (int, testEnvelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-User", fmt.Sprintf("%d", userID))

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env testEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

type quizFixture struct {
	student   models.User
	tutorial  models.Tutorial
	quiz      quizModels.Quiz
	questions []quizModels.Question
}

// answerKey maps a seeded question to the key used in the answers payload
func answerKey(q quizModels.Question) string {
	return strconv.FormatUint(uint64(q.ID), 10)
}

func seedQuizFixture(t *testing.T, db *gorm.DB, mutate func(*quizModels.Quiz)) quizFixture {
	t.Helper()

	teacher := models.User{Name: "Abebe", Email: "abebe@etutor.et", Role: "TEACHER", Password: "x"}
	student := models.User{Name: "Alemu", Email: "alemu@etutor.et", Password: "x"}
	require.NoError(t, db.Create(&teacher).Error)
	require.NoError(t, db.Create(&student).Error)

	tutorial := models.Tutorial{
		Title:       "Ethiopian History Basics",
		Description: "From Axum to today",
		CategoryID:  1,
		TeacherID:   teacher.ID,
		IsPublished: true,
	}
	require.NoError(t, db.Create(&tutorial).Error)

	q := quizModels.Quiz{
		TutorialID:   tutorial.ID,
		TeacherID:    teacher.ID,
		Title:        "History Checkpoint",
		PassingScore: 70,
		IsPublished:  true,
		IsActive:     true,
	}
	if mutate != nil {
		mutate(&q)
	}
	require.NoError(t, db.Create(&q).Error)

	questions := []quizModels.Question{
		{QuizID: q.ID, QuestionText: "Capital of Ethiopia?", QuestionType: quizModels.TypeMultipleChoice, CorrectAnswer: "B", Points: 10, OrderIndex: 1, IsActive: true},
		{QuizID: q.ID, QuestionText: "How many UNESCO sites in Lalibela?", QuestionType: quizModels.TypeShortAnswer, CorrectAnswer: "2", Points: 10, OrderIndex: 2, IsActive: true},
	}
	for i := range questions {
		require.NoError(t, db.Create(&questions[i]).Error)
	}
	require.NoError(t, db.Model(&quizModels.Quiz{}).Where("id = ?", q.ID).
		Update("total_questions", len(questions)).Error)

	return quizFixture{student: student, tutorial: tutorial, quiz: q, questions: questions}
}

func startAttempt(t *testing.T, app *fiber.App, fx quizFixture) uint {
	t.Helper()

	code, env := attemptDoJSON(t, app, "POST", fmt.Sprintf("/quizzes/%d/start", fx.quiz.ID), fx.student.ID, nil)
	require.Equal(t, fiber.StatusCreated, code)

	var data struct {
		Attempt quizModels.QuizAttempt `json:"attempt"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotZero(t, data.Attempt.ID)
	return data.Attempt.ID
}

func TestStartQuizStripsAnswers(t *testing.T) {
	app, db := setupAttemptApp(t)
	fx := seedQuizFixture(t, db, nil)

	code, env := attemptDoJSON(t, app, "POST", fmt.Sprintf("/quizzes/%d/start", fx.quiz.ID), fx.student.ID, nil)
	require.Equal(t, fiber.StatusCreated, code)

	var data struct {
		Attempt   quizModels.QuizAttempt `json:"attempt"`
		Questions []quizModels.Question  `json:"questions"`
		TimeLimit int                    `json:"timeLimit"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))

	assert.Equal(t, quizModels.AttemptInProgress, data.Attempt.Status)
	assert.Equal(t, 2, data.Attempt.TotalQuestions)
	assert.Equal(t, 1, data.Attempt.AttemptNumber)
	assert.Equal(t, 30, data.TimeLimit) // no per-quiz limit, default window

	require.Len(t, data.Questions, 2)
	for _, q := range data.Questions {
		assert.Empty(t, q.CorrectAnswer)
	}
	// order_index ascending
	assert.Equal(t, fx.questions[0].ID, data.Questions[0].ID)
	assert.Equal(t, fx.questions[1].ID, data.Questions[1].ID)
}

func TestSubmitQuizFullScore(t *testing.T) {
	app, db := setupAttemptApp(t)
	fx := seedQuizFixture(t, db, nil)
	attemptID := startAttempt(t, app, fx)

	answers := map[string]interface{}{
		answerKey(fx.questions[0]): "B",
		answerKey(fx.questions[1]): 2,
	}
	code, env := attemptDoJSON(t, app, "POST", fmt.Sprintf("/quizzes/attempt/%d/submit", attemptID), fx.student.ID,
		fiber.Map{"answers": answers, "timeSpent": 12})
	require.Equal(t, fiber.StatusOK, code)

	var data struct {
		Attempt  quizModels.QuizAttempt `json:"attempt"`
		Score    int                    `json:"score"`
		IsPassed bool                   `json:"isPassed"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))

	assert.Equal(t, 100, data.Score)
	assert.True(t, data.IsPassed)
	assert.Equal(t, quizModels.AttemptCompleted, data.Attempt.Status)
	assert.Equal(t, 2, data.Attempt.CorrectAnswers)
	assert.Equal(t, 12, data.Attempt.TimeTaken)
	assert.NotNil(t, data.Attempt.CompletedAt)

	// Quiz aggregates folded in
	var q quizModels.Quiz
	require.NoError(t, db.First(&q, fx.quiz.ID).Error)
	assert.Equal(t, 1, q.TotalAttempts)
	assert.Equal(t, 100.0, q.AverageScore)
}

func TestSubmitQuizPartialScore(t *testing.T) {
	app, db := setupAttemptApp(t)
	fx := seedQuizFixture(t, db, nil)
	attemptID := startAttempt(t, app, fx)

	answers := map[string]interface{}{
		answerKey(fx.questions[0]): "A", // wrong
		answerKey(fx.questions[1]): "2",
	}
	code, env := attemptDoJSON(t, app, "POST", fmt.Sprintf("/quizzes/attempt/%d/submit", attemptID), fx.student.ID,
		fiber.Map{"answers": answers})
	require.Equal(t, fiber.StatusOK, code)

	var data struct {
		Score    int  `json:"score"`
		IsPassed bool `json:"isPassed"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 50, data.Score)
	assert.False(t, data.IsPassed) // passing score is 70
}

func TestSubmitQuizTimeout(t *testing.T) {
	app, db := setupAttemptApp(t)
	fx := seedQuizFixture(t, db, nil)
	attemptID := startAttempt(t, app, fx)

	// Push the start time past the 30 minute default window
	stale := time.Now().Add(-31 * time.Minute)
	require.NoError(t, db.Model(&quizModels.QuizAttempt{}).Where("id = ?", attemptID).
		Update("started_at", stale).Error)

	answers := map[string]interface{}{answerKey(fx.questions[0]): "B"}
	code, env := attemptDoJSON(t, app, "POST", fmt.Sprintf("/quizzes/attempt/%d/submit", attemptID), fx.student.ID,
		fiber.Map{"answers": answers})
	assert.Equal(t, fiber.StatusGone, code)
	assert.False(t, env.Success)

	var attempt quizModels.QuizAttempt
	require.NoError(t, db.First(&attempt, attemptID).Error)
	assert.Equal(t, quizModels.AttemptTimeout, attempt.Status)
	assert.Equal(t, 0, attempt.Score)
	assert.NotNil(t, attempt.CompletedAt)

	// Timed-out attempts never touch the quiz aggregates
	var q quizModels.Quiz
	require.NoError(t, db.First(&q, fx.quiz.ID).Error)
	assert.Equal(t, 0, q.TotalAttempts)
}

func TestSubmitQuizPerQuizTimeLimit(t *testing.T) {
	app, db := setupAttemptApp(t)
	fx := seedQuizFixture(t, db, func(q *quizModels.Quiz) {
		q.TimeLimit = 10
	})
	attemptID := startAttempt(t, app, fx)

	// 15 minutes in: past the quiz's own limit, inside the default window
	stale := time.Now().Add(-15 * time.Minute)
	require.NoError(t, db.Model(&quizModels.QuizAttempt{}).Where("id = ?", attemptID).
		Update("started_at", stale).Error)

	answers := map[string]interface{}{answerKey(fx.questions[0]): "B"}
	code, _ := attemptDoJSON(t, app, "POST", fmt.Sprintf("/quizzes/attempt/%d/submit", attemptID), fx.student.ID,
		fiber.Map{"answers": answers})
	assert.Equal(t, fiber.StatusGone, code)
}

func TestDoubleSubmitRejected(t *testing.T) {
	app, db := setupAttemptApp(t)
	fx := seedQuizFixture(t, db, nil)
	attemptID := startAttempt(t, app, fx)

	answers := map[string]interface{}{
		answerKey(fx.questions[0]): "B",
		answerKey(fx.questions[1]): "2",
	}
	body := fiber.Map{"answers": answers}

	code, _ := attemptDoJSON(t, app, "POST", fmt.Sprintf("/quizzes/attempt/%d/submit", attemptID), fx.student.ID, body)
	require.Equal(t, fiber.StatusOK, code)

	code, env := attemptDoJSON(t, app, "POST", fmt.Sprintf("/quizzes/attempt/%d/submit", attemptID), fx.student.ID, body)
	assert.Equal(t, fiber.StatusConflict, code)
	assert.False(t, env.Success)

	// Aggregates counted the attempt exactly once
	var q quizModels.Quiz
	require.NoError(t, db.First(&q, fx.quiz.ID).Error)
	assert.Equal(t, 1, q.TotalAttempts)
}

func TestSubmitForeignAttemptForbidden(t *testing.T) {
	app, db := setupAttemptApp(t)
	fx := seedQuizFixture(t, db, nil)
	attemptID := startAttempt(t, app, fx)

	other := models.User{Name: "Birtukan", Email: "birtukan@etutor.et", Password: "x"}
	require.NoError(t, db.Create(&other).Error)

	answers := map[string]interface{}{answerKey(fx.questions[0]): "B"}
	code, _ := attemptDoJSON(t, app, "POST", fmt.Sprintf("/quizzes/attempt/%d/submit", attemptID), other.ID,
		fiber.Map{"answers": answers})
	assert.Equal(t, fiber.StatusForbidden, code)
}

func TestMaxAttemptsEnforced(t *testing.T) {
	app, db := setupAttemptApp(t)
	fx := seedQuizFixture(t, db, func(q *quizModels.Quiz) {
		q.MaxAttempts = 1
	})
	attemptID := startAttempt(t, app, fx)

	answers := map[string]interface{}{
		answerKey(fx.questions[0]): "B",
		answerKey(fx.questions[1]): "2",
	}
	code, _ := attemptDoJSON(t, app, "POST", fmt.Sprintf("/quizzes/attempt/%d/submit", attemptID), fx.student.ID,
		fiber.Map{"answers": answers})
	require.Equal(t, fiber.StatusOK, code)

	code, env := attemptDoJSON(t, app, "POST", fmt.Sprintf("/quizzes/%d/start", fx.quiz.ID), fx.student.ID, nil)
	assert.Equal(t, fiber.StatusForbidden, code)
	assert.False(t, env.Success)
}

func TestAbandonedAttemptsDoNotCountAgainstLimit(t *testing.T) {
	app, db := setupAttemptApp(t)
	fx := seedQuizFixture(t, db, func(q *quizModels.Quiz) {
		q.MaxAttempts = 1
	})
	attemptID := startAttempt(t, app, fx)

	require.NoError(t, db.Model(&quizModels.QuizAttempt{}).Where("id = ?", attemptID).
		Update("status", quizModels.AttemptAbandoned).Error)

	code, _ := attemptDoJSON(t, app, "POST", fmt.Sprintf("/quizzes/%d/start", fx.quiz.ID), fx.student.ID, nil)
	assert.Equal(t, fiber.StatusCreated, code)
}

func TestStartUnpublishedQuizForbidden(t *testing.T) {
	app, db := setupAttemptApp(t)
	fx := seedQuizFixture(t, db, func(q *quizModels.Quiz) {
		q.IsPublished = false
	})

	code, env := attemptDoJSON(t, app, "POST", fmt.Sprintf("/quizzes/%d/start", fx.quiz.ID), fx.student.ID, nil)
	assert.Equal(t, fiber.StatusForbidden, code)
	assert.False(t, env.Success)
}

func TestSubmitAppendsToProgressHistory(t *testing.T) {
	app, db := setupAttemptApp(t)
	fx := seedQuizFixture(t, db, nil)

	progress := models.Progress{
		UserID:     fx.student.ID,
		TutorialID: fx.tutorial.ID,
		Status:     models.ProgressInProgress,
	}
	require.NoError(t, db.Create(&progress).Error)

	attemptID := startAttempt(t, app, fx)
	answers := map[string]interface{}{
		answerKey(fx.questions[0]): "B",
		answerKey(fx.questions[1]): "2",
	}
	code, _ := attemptDoJSON(t, app, "POST", fmt.Sprintf("/quizzes/attempt/%d/submit", attemptID), fx.student.ID,
		fiber.Map{"answers": answers})
	require.Equal(t, fiber.StatusOK, code)

	require.NoError(t, db.First(&progress, progress.ID).Error)
	var history []models.QuizAttemptSummary
	require.NoError(t, json.Unmarshal(progress.QuizAttempts, &history))
	require.Len(t, history, 1)
	assert.Equal(t, fx.quiz.ID, history[0].QuizID)
	assert.Equal(t, attemptID, history[0].AttemptID)
	assert.Equal(t, 100, history[0].Score)
	assert.True(t, history[0].IsPassed)

	// The history never advances the percentage or status on its own
	assert.Equal(t, 0.0, progress.ProgressPercentage)
	assert.Equal(t, models.ProgressInProgress, progress.Status)
}

func TestSubmitCompletesWhenUserAccountRemoved(t *testing.T) {
	app, db := setupAttemptApp(t)
	fx := seedQuizFixture(t, db, nil)
	attemptID := startAttempt(t, app, fx)

	// Account disabled between start and submit: grading and aggregate
	// maintenance still complete, only the notification is skipped
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", fx.student.ID).
		Update("is_deleted", true).Error)

	answers := map[string]interface{}{
		answerKey(fx.questions[0]): "B",
		answerKey(fx.questions[1]): "2",
	}
	code, env := attemptDoJSON(t, app, "POST", fmt.Sprintf("/quizzes/attempt/%d/submit", attemptID), fx.student.ID,
		fiber.Map{"answers": answers})
	require.Equal(t, fiber.StatusOK, code)
	assert.True(t, env.Success)

	var attempt quizModels.QuizAttempt
	require.NoError(t, db.First(&attempt, attemptID).Error)
	assert.Equal(t, quizModels.AttemptCompleted, attempt.Status)
	assert.Equal(t, 100, attempt.Score)

	var q quizModels.Quiz
	require.NoError(t, db.First(&q, fx.quiz.ID).Error)
	assert.Equal(t, 1, q.TotalAttempts)
}

func TestSubmitWithoutProgressRecordCreatesNone(t *testing.T) {
	app, db := setupAttemptApp(t)
	fx := seedQuizFixture(t, db, nil)
	attemptID := startAttempt(t, app, fx)

	answers := map[string]interface{}{answerKey(fx.questions[0]): "B"}
	code, _ := attemptDoJSON(t, app, "POST", fmt.Sprintf("/quizzes/attempt/%d/submit", attemptID), fx.student.ID,
		fiber.Map{"answers": answers})
	require.Equal(t, fiber.StatusOK, code)

	var count int64
	db.Model(&models.Progress{}).Where("user_id = ?", fx.student.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}
