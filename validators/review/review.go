package reviewValidator

import (
	"etutor/middleware"
	"strconv"
	"strings"
	"unicode/utf8"

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

func ReviewID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramID(c, "id", "reviewID"); !ok {
			return err
		}
		return c.Next()
	}
}

func TutorialID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramID(c, "id", "tutorialID"); !ok {
			return err
		}
		return c.Next()
	}
}

func CreateReview() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramID(c, "id", "tutorialID"); !ok {
			return err
		}

		reqData := new(struct {
			Rating  int    `json:"rating"`
			Comment string `json:"comment"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Rating < 1 || reqData.Rating > 5 {
			errors["rating"] = "Rating must be between 1 and 5!"
		}

		comment := strings.TrimSpace(reqData.Comment)
		if comment == "" {
			errors["comment"] = "Comment is required!"
		} else if utf8.RuneCountInString(comment) > 1000 {
			// Counted in characters, not bytes, so Amharic comments get the
			// full 1000
			errors["comment"] = "Comment must be at most 1000 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

func QuickRate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramID(c, "id", "tutorialID"); !ok {
			return err
		}

		reqData := new(struct {
			Rating int `json:"rating"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Rating < 1 || reqData.Rating > 5 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"rating": "Rating must be between 1 and 5!",
			})
		}

		return c.Next()
	}
}
