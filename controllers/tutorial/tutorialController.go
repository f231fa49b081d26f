package tutorialController

import (
	"etutor/config"
	"etutor/database"
	"etutor/middleware"
	"etutor/models"
	quizModels "etutor/models/quiz"
	"etutor/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateTutorial creates a tutorial (teacher/admin only)
func CreateTutorial(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		Title        string `json:"title"`
		TitleAmharic string `json:"title_amharic"`
		Description  string `json:"description"`
		Content      string `json:"content"`
		CategoryID   uint   `json:"category_id"`
		Level        string `json:"level"`
		Duration     int    `json:"duration"`
		VideoURL     string `json:"video_url"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var category models.Category
	if err := db.Where("id = ? AND is_deleted = ?", reqData.CategoryID, false).First(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	level := reqData.Level
	if level == "" {
		level = "BEGINNER"
	}

	tutorial := models.Tutorial{
		Title:        reqData.Title,
		TitleAmharic: reqData.TitleAmharic,
		Description:  reqData.Description,
		Content:      reqData.Content,
		CategoryID:   reqData.CategoryID,
		TeacherID:    userID,
		Level:        level,
		Duration:     reqData.Duration,
		VideoURL:     reqData.VideoURL,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&tutorial).Error; err != nil {
			return err
		}
		return tx.Model(&models.Category{}).Where("id = ?", category.ID).
			Update("tutorial_count", gorm.Expr("tutorial_count + 1")).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create tutorial!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Tutorial created successfully!", tutorial)
}

// fetchOwnedTutorial loads a tutorial and verifies the caller may mutate it
func fetchOwnedTutorial(c *fiber.Ctx, tutorialID int, userID uint) (*models.Tutorial, error) {
	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var tutorial models.Tutorial
	if err := db.Where("id = ? AND is_deleted = ?", tutorialID, false).First(&tutorial).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Tutorial not found!", nil)
	}

	if tutorial.TeacherID != userID && user.Role != "ADMIN" {
		return nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only manage your own tutorials!", nil)
	}

	return &tutorial, nil
}

// UpdateTutorial updates tutorial fields (owner/admin only)
func UpdateTutorial(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	tutorialID := c.Locals("tutorialID").(int)

	tutorial, err := fetchOwnedTutorial(c, tutorialID, userID)
	if err != nil {
		return err
	}

	reqData := new(struct {
		Title        *string `json:"title"`
		TitleAmharic *string `json:"title_amharic"`
		Description  *string `json:"description"`
		Content      *string `json:"content"`
		Level        *string `json:"level"`
		Duration     *int    `json:"duration"`
		VideoURL     *string `json:"video_url"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Title != nil {
		tutorial.Title = *reqData.Title
	}
	if reqData.TitleAmharic != nil {
		tutorial.TitleAmharic = *reqData.TitleAmharic
	}
	if reqData.Description != nil {
		tutorial.Description = *reqData.Description
	}
	if reqData.Content != nil {
		tutorial.Content = *reqData.Content
	}
	if reqData.Level != nil {
		tutorial.Level = *reqData.Level
	}
	if reqData.Duration != nil {
		tutorial.Duration = *reqData.Duration
	}
	if reqData.VideoURL != nil {
		tutorial.VideoURL = *reqData.VideoURL
	}

	if err := database.Database.Db.Save(tutorial).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update tutorial!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Tutorial updated successfully!", tutorial)
}

// PublishTutorial makes a tutorial visible to students
func PublishTutorial(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	tutorialID := c.Locals("tutorialID").(int)

	tutorial, err := fetchOwnedTutorial(c, tutorialID, userID)
	if err != nil {
		return err
	}

	tutorial.IsPublished = true
	if err := database.Database.Db.Save(tutorial).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish tutorial!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Tutorial published successfully!", tutorial)
}

// UploadThumbnail stores a thumbnail image for a tutorial
func UploadThumbnail(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	tutorialID := c.Locals("tutorialID").(int)

	tutorial, err := fetchOwnedTutorial(c, tutorialID, userID)
	if err != nil {
		return err
	}

	file, err := c.FormFile("thumbnail")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Thumbnail file is required!", nil)
	}

	filePath, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save thumbnail!", nil)
	}

	tutorial.ThumbnailURL = utils.GetFileURL(filePath)
	if err := database.Database.Db.Save(tutorial).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update tutorial!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Thumbnail uploaded successfully!", fiber.Map{
		"thumbnail_url": tutorial.ThumbnailURL,
	})
}

// DeleteTutorial soft-deletes a tutorial, cascades to its quizzes, questions,
// attempts and progress rows, and decrements the category count.
func DeleteTutorial(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	tutorialID := c.Locals("tutorialID").(int)

	tutorial, err := fetchOwnedTutorial(c, tutorialID, userID)
	if err != nil {
		return err
	}

	db := database.Database.Db
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Tutorial{}).Where("id = ?", tutorial.ID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}

		var quizIDs []uint
		if err := tx.Model(&quizModels.Quiz{}).Where("tutorial_id = ?", tutorial.ID).
			Pluck("id", &quizIDs).Error; err != nil {
			return err
		}

		if len(quizIDs) > 0 {
			if err := tx.Model(&quizModels.Quiz{}).Where("id IN ?", quizIDs).
				Update("is_deleted", true).Error; err != nil {
				return err
			}
			if err := tx.Model(&quizModels.Question{}).Where("quiz_id IN ?", quizIDs).
				Update("is_deleted", true).Error; err != nil {
				return err
			}
			if err := tx.Where("quiz_id IN ?", quizIDs).Delete(&quizModels.QuizAttempt{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Unscoped().Where("tutorial_id = ?", tutorial.ID).
			Delete(&models.Progress{}).Error; err != nil {
			return err
		}

		return tx.Model(&models.Category{}).Where("id = ? AND tutorial_count > 0", tutorial.CategoryID).
			Update("tutorial_count", gorm.Expr("tutorial_count - 1")).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete tutorial!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Tutorial deleted successfully!", nil)
}

// GetAllTutorials lists published tutorials with pagination and optional
// category/level filters.
func GetAllTutorials(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	categoryID := c.QueryInt("categoryId", 0)
	level := c.Query("level")

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db

	query := db.Model(&models.Tutorial{}).Where("is_deleted = ? AND is_published = ?", false, true)
	if categoryID > 0 {
		query = query.Where("category_id = ?", categoryID)
	}
	if level != "" {
		query = query.Where("level = ?", level)
	}

	var total int64
	query.Count(&total)

	var tutorials []models.Tutorial
	if err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&tutorials).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch tutorials!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Tutorials fetched successfully!", fiber.Map{
		"tutorials": tutorials,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetTutorialDetails returns one published tutorial and bumps its view count
func GetTutorialDetails(c *fiber.Ctx) error {
	tutorialID := c.Locals("tutorialID").(int)

	db := database.Database.Db

	var tutorial models.Tutorial
	if err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", tutorialID, false, true).
		First(&tutorial).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Tutorial not found!", nil)
	}

	// Counted server-side so concurrent views don't lose increments
	db.Model(&models.Tutorial{}).Where("id = ?", tutorial.ID).
		Update("view_count", gorm.Expr("view_count + 1"))
	tutorial.ViewCount++

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Tutorial fetched successfully!", tutorial)
}
