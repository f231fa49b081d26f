package tutorialController

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strconv"
	"testing"

	"etutor/config"
	"etutor/database"
	"etutor/models"
	validators "etutor/validators/tutorial"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type progressEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func progressTestAuth(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Get("X-Test-User"))
	c.Locals("userId", uint(id))
	return c.Next()
}

func setupProgressApp(t *testing.T) (*fiber.App, *gorm.DB) {
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
	app.Get("/tutorials/:id/progress", progressTestAuth, validators.TutorialID(), GetProgress)

	return app, db
}

func progressGet(t *testing.T, app *fiber.App, tutorialID, userID uint) (int, progressEnvelope) {
	t.Helper()

	req := httptest.NewRequest("GET", fmt.Sprintf("/tutorials/%d/progress", tutorialID), nil)
	req.Header.Set("X-Test-User", fmt.Sprintf("%d", userID))

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env progressEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestGetProgressSynthesizesZeroState(t *testing.T) {
	app, db := setupProgressApp(t)

	student := models.User{Name: "Alemu", Email: "alemu@etutor.et", Password: "x"}
	require.NoError(t, db.Create(&student).Error)

	code, env := progressGet(t, app, 42, student.ID)
	require.Equal(t, fiber.StatusOK, code)
	assert.True(t, env.Success)

	var data struct {
		Progress models.Progress `json:"progress"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, models.ProgressNotStarted, data.Progress.Status)
	assert.Equal(t, 0.0, data.Progress.ProgressPercentage)

	// The synthesized record is never persisted
	var count int64
	db.Model(&models.Progress{}).Where("user_id = ?", student.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestGetProgressSurfacesDatabaseError(t *testing.T) {
	app, db := setupProgressApp(t)

	// A broken connection must come back as a server error, not as a
	// synthesized not_started record
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	code, env := progressGet(t, app, 42, 1)
	assert.Equal(t, fiber.StatusInternalServerError, code)
	assert.False(t, env.Success)
}
