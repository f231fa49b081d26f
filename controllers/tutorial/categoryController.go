package tutorialController

import (
	"etutor/database"
	"etutor/middleware"
	"etutor/models"

	"github.com/gofiber/fiber/v2"
)

// CreateCategory creates a category (admin only)
func CreateCategory(c *fiber.Ctx) error {
	reqData := new(struct {
		Name        string `json:"name"`
		NameAmharic string `json:"name_amharic"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	if err := db.Where("name = ? AND is_deleted = ?", reqData.Name, false).First(&models.Category{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Category already exists!", nil)
	}

	category := models.Category{
		Name:        reqData.Name,
		NameAmharic: reqData.NameAmharic,
		Description: reqData.Description,
		Icon:        reqData.Icon,
	}

	if err := db.Create(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Category created successfully!", category)
}

// UpdateCategory updates a category (admin only)
func UpdateCategory(c *fiber.Ctx) error {
	categoryID := c.Locals("categoryID").(int)

	db := database.Database.Db

	var category models.Category
	if err := db.Where("id = ? AND is_deleted = ?", categoryID, false).First(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	reqData := new(struct {
		Name        *string `json:"name"`
		NameAmharic *string `json:"name_amharic"`
		Description *string `json:"description"`
		Icon        *string `json:"icon"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Name != nil {
		category.Name = *reqData.Name
	}
	if reqData.NameAmharic != nil {
		category.NameAmharic = *reqData.NameAmharic
	}
	if reqData.Description != nil {
		category.Description = *reqData.Description
	}
	if reqData.Icon != nil {
		category.Icon = *reqData.Icon
	}

	if err := db.Save(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category updated successfully!", category)
}

// DeleteCategory soft-deletes an empty category (admin only)
func DeleteCategory(c *fiber.Ctx) error {
	categoryID := c.Locals("categoryID").(int)

	db := database.Database.Db

	var category models.Category
	if err := db.Where("id = ? AND is_deleted = ?", categoryID, false).First(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	var tutorialCount int64
	db.Model(&models.Tutorial{}).Where("category_id = ? AND is_deleted = ?", categoryID, false).Count(&tutorialCount)
	if tutorialCount > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Cannot delete a category that still has tutorials!", nil)
	}

	if err := db.Model(&models.Category{}).Where("id = ?", category.ID).
		Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category deleted successfully!", nil)
}

// GetAllCategories lists categories (public)
func GetAllCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := database.Database.Db.
		Where("is_deleted = ?", false).
		Order("name asc").Find(&categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", categories)
}
