package tutorialController

import (
	"etutor/database"
	"etutor/middleware"
	"etutor/models"
	"etutor/utils"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// applyProgressUpdate applies one progress update to a record: clamps the
// percentage to [0,100], auto-promotes the status (in_progress when pct > 0,
// completed when pct >= 100), accumulates time spent and sets completed_at
// the first time the record completes. Status never regresses.
// Returns true when the record transitioned to completed in this update.
func applyProgressUpdate(p *models.Progress, percentage *float64, status string, position string, timeSpent int, now time.Time) bool {
	if percentage != nil {
		pct := *percentage
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		p.ProgressPercentage = pct
	}

	// An explicit status only applies when it is a promotion over the
	// current one, so a completed record never regresses
	if status == models.ProgressCompleted ||
		(status == models.ProgressInProgress && p.Status != models.ProgressCompleted) {
		p.Status = status
	}

	// Promotion rule applies even when the caller passes no status
	if p.ProgressPercentage >= 100 {
		p.Status = models.ProgressCompleted
	} else if p.ProgressPercentage > 0 && p.Status == models.ProgressNotStarted {
		p.Status = models.ProgressInProgress
	}

	if position != "" {
		p.LastPosition = position
	}
	if timeSpent > 0 {
		p.TimeSpent += timeSpent
	}

	if p.Status == models.ProgressCompleted && p.CompletedAt == nil {
		p.CompletedAt = &now
		return true
	}
	return false
}

// UpdateProgress records a user's progress on a tutorial, creating the
// (user, tutorial) record lazily.
func UpdateProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	tutorialID := c.Locals("tutorialID").(int)

	reqData := new(struct {
		Progress       *float64 `json:"progress"`
		Status         string   `json:"status"`
		CurrentSection string   `json:"currentSection"`
		TimeSpent      int      `json:"timeSpent"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var tutorial models.Tutorial
	if err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", tutorialID, false, true).
		First(&tutorial).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Tutorial not found!", nil)
	}

	var progress models.Progress
	err := db.Where("user_id = ? AND tutorial_id = ?", userID, tutorialID).First(&progress).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
		}
		progress = models.Progress{
			UserID:     userID,
			TutorialID: uint(tutorialID),
			Status:     models.ProgressNotStarted,
		}
	}

	justCompleted := applyProgressUpdate(&progress, reqData.Progress, reqData.Status, reqData.CurrentSection, reqData.TimeSpent, time.Now())

	if err := db.Save(&progress).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	if justCompleted {
		go func(userID uint, tutorialTitle string) {
			var user models.User
			if err := database.Database.Db.Where("id = ?", userID).First(&user).Error; err != nil {
				return
			}
			if err := utils.SendTutorialCompletedEmail(user.Email, user.Name, tutorialTitle); err != nil {
				log.Printf("Error sending completion email: %v", err)
			}
		}(userID, tutorial.Title)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", fiber.Map{
		"progress": progress,
	})
}

// GetProgress returns the caller's progress for a tutorial. When no record
// exists a zero-state record is synthesized, not persisted.
func GetProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	tutorialID := c.Locals("tutorialID").(int)

	var progress models.Progress
	err := database.Database.Db.
		Where("user_id = ? AND tutorial_id = ?", userID, tutorialID).
		First(&progress).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
		}
		progress = models.Progress{
			UserID:     userID,
			TutorialID: uint(tutorialID),
			Status:     models.ProgressNotStarted,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"progress": progress,
	})
}

// GetMyProgressList lists all of the caller's progress records
func GetMyProgressList(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var progressList []models.Progress
	if err := database.Database.Db.
		Where("user_id = ?", userID).
		Order("updated_at desc").Find(&progressList).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress list fetched successfully!", progressList)
}
