package authValidator

import (
	"etutor/middleware"

	"github.com/gofiber/fiber/v2"
)

func Signup() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name     string `json:"name" validate:"required,min=2,max=100"`
			Email    string `json:"email" validate:"required,email"`
			Mobile   string `json:"mobile" validate:"omitempty,min=9,max=15"`
			Password string `json:"password" validate:"required,min=6,max=72"`
			Role     string `json:"role" validate:"omitempty,oneof=STUDENT TEACHER"`
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

func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Email    string `json:"email" validate:"required,email"`
			Password string `json:"password" validate:"required"`
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

func VerifyOTP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Reference string `json:"reference" validate:"required,uuid4"`
			Code      string `json:"code" validate:"required,len=6,numeric"`
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
