package tutorialValidator

import (
	"etutor/middleware"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func paramID(c *fiber.Ctx, param, local string) (bool, error) {
	id, err := strconv.Atoi(c.Params(param))
	if err != nil || id < 1 {
		return false, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+param+" parameter!", nil)
	}
	c.Locals(local, id)
	return true, nil
}

func TutorialID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramID(c, "id", "tutorialID"); !ok {
			return err
		}
		return c.Next()
	}
}

func CategoryID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramID(c, "id", "categoryID"); !ok {
			return err
		}
		return c.Next()
	}
}

func CreateTutorial() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title" validate:"required,min=3,max=200"`
			Description string `json:"description" validate:"required,min=5"`
			CategoryID  uint   `json:"category_id" validate:"required"`
			Level       string `json:"level" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
			Duration    int    `json:"duration" validate:"omitempty,min=0"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := middleware.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, middleware.ValidatorMessages(err))
		}

		return c.Next()
	}
}

func CreateCategory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name        string `json:"name" validate:"required,min=2,max=100"`
			Description string `json:"description" validate:"max=1000"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := middleware.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, middleware.ValidatorMessages(err))
		}

		return c.Next()
	}
}

func UpdateProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramID(c, "id", "tutorialID"); !ok {
			return err
		}

		reqData := new(struct {
			Progress       *float64 `json:"progress"`
			Status         string   `json:"status" validate:"omitempty,oneof=not_started in_progress completed"`
			CurrentSection string   `json:"currentSection" validate:"max=500"`
			TimeSpent      int      `json:"timeSpent" validate:"omitempty,min=0"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := middleware.Validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, middleware.ValidatorMessages(err))
		}

		return c.Next()
	}
}
