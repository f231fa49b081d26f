package reviewController

import (
	"errors"
	"etutor/database"
	"etutor/middleware"
	"etutor/models"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// createReview inserts a review and folds its rating into the tutorial's
// running average in one transaction. The average is recomputed inside the
// UPDATE statement itself so concurrent reviews cannot tear the
// (rating, rating_count) pair.
func createReview(c *fiber.Ctx, userID uint, tutorialID int, rating int, comment string) error {
	db := database.Database.Db

	var tutorial models.Tutorial
	if err := db.Where("id = ? AND is_deleted = ?", tutorialID, false).First(&tutorial).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Tutorial not found!", nil)
	}

	var existing models.Review
	if err := db.Where("tutorial_id = ? AND user_id = ?", tutorialID, userID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already reviewed this tutorial!", nil)
	}

	review := models.Review{
		TutorialID: uint(tutorialID),
		UserID:     userID,
		Rating:     rating,
		Comment:    comment,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		return tx.Model(&models.Tutorial{}).Where("id = ?", tutorialID).
			Updates(map[string]interface{}{
				"rating":       gorm.Expr("(rating * rating_count + ?) / (rating_count + 1)", rating),
				"rating_count": gorm.Expr("rating_count + 1"),
			}).Error
	})
	if err != nil {
		// The unique index on (tutorial_id, user_id) catches the race the
		// existence check above cannot
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already reviewed this tutorial!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit review!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Review submitted successfully!", fiber.Map{
		"review": review,
	})
}

// CreateReview submits a full review for a tutorial
func CreateReview(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	tutorialID := c.Locals("tutorialID").(int)

	reqData := new(struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	return createReview(c, userID, tutorialID, reqData.Rating, reqData.Comment)
}

// QuickRate submits a star-only rating with a synthesized comment.
// Functionally identical to a full review once persisted.
func QuickRate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	tutorialID := c.Locals("tutorialID").(int)

	reqData := new(struct {
		Rating int `json:"rating"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Rating < 1 || reqData.Rating > 5 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Rating must be between 1 and 5!", nil)
	}

	comment := fmt.Sprintf("Rated %d stars", reqData.Rating)
	return createReview(c, userID, tutorialID, reqData.Rating, comment)
}

// UpdateReview edits the caller's own review. Non-owners get 404 so the
// existence of another user's review is not confirmed.
func UpdateReview(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	reviewID := c.Locals("reviewID").(int)

	db := database.Database.Db

	var review models.Review
	if err := db.Where("id = ? AND user_id = ?", reviewID, userID).First(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Review not found!", nil)
	}

	reqData := new(struct {
		Rating  *int    `json:"rating"`
		Comment *string `json:"comment"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Rating != nil && (*reqData.Rating < 1 || *reqData.Rating > 5) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Rating must be between 1 and 5!", nil)
	}

	oldRating := review.Rating
	ratingChanged := reqData.Rating != nil && *reqData.Rating != oldRating

	if reqData.Rating != nil {
		review.Rating = *reqData.Rating
	}
	if reqData.Comment != nil {
		review.Comment = *reqData.Comment
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&review).Error; err != nil {
			return err
		}
		if !ratingChanged {
			return nil
		}
		// Count is unchanged, only the contribution moves
		return tx.Model(&models.Tutorial{}).Where("id = ? AND rating_count > 0", review.TutorialID).
			Update("rating", gorm.Expr("(rating * rating_count - ? + ?) / rating_count", oldRating, review.Rating)).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update review!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review updated successfully!", fiber.Map{
		"review": review,
	})
}

// DeleteReview removes the caller's own review and backs its rating out of
// the running average. Removing the last review resets the aggregate to
// zero so no stale average survives.
func DeleteReview(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	reviewID := c.Locals("reviewID").(int)

	db := database.Database.Db

	var review models.Review
	if err := db.Where("id = ? AND user_id = ?", reviewID, userID).First(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Review not found!", nil)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Delete(&review).Error; err != nil {
			return err
		}
		return tx.Model(&models.Tutorial{}).Where("id = ?", review.TutorialID).
			Updates(map[string]interface{}{
				"rating": gorm.Expr(
					"CASE WHEN rating_count <= 1 THEN 0 ELSE (rating * rating_count - ?) / (rating_count - 1) END",
					review.Rating),
				"rating_count": gorm.Expr("CASE WHEN rating_count <= 1 THEN 0 ELSE rating_count - 1 END"),
			}).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete review!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review deleted successfully!", nil)
}

// GetTutorialReviews lists reviews for a tutorial with pagination
func GetTutorialReviews(c *fiber.Ctx) error {
	tutorialID := c.Locals("tutorialID").(int)
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db

	var total int64
	db.Model(&models.Review{}).Where("tutorial_id = ?", tutorialID).Count(&total)

	var reviews []models.Review
	if err := db.Where("tutorial_id = ?", tutorialID).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, profile_image")
		}).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&reviews).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch reviews!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reviews fetched!", fiber.Map{
		"reviews": reviews,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
