package quizValidator

import (
	"etutor/middleware"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// paramID parses a positive integer route parameter into c.Locals
func paramID(c *fiber.Ctx, param, local string) (bool, error) {
	id, err := strconv.Atoi(c.Params(param))
	if err != nil || id < 1 {
		return false, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+param+" parameter!", nil)
	}
	c.Locals(local, id)
	return true, nil
}

func QuizID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramID(c, "id", "quizID"); !ok {
			return err
		}
		return c.Next()
	}
}

func QuestionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramID(c, "id", "questionID"); !ok {
			return err
		}
		return c.Next()
	}
}

func AttemptID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramID(c, "id", "attemptID"); !ok {
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

func CreateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			TutorialID   uint   `json:"tutorial_id" validate:"required"`
			Title        string `json:"title" validate:"required,min=3,max=200"`
			Description  string `json:"description" validate:"max=2000"`
			TimeLimit    int    `json:"time_limit" validate:"omitempty,min=1,max=180"`
			PassingScore *int   `json:"passing_score" validate:"omitempty,min=0,max=100"`
			MaxAttempts  int    `json:"max_attempts" validate:"omitempty,min=0,max=50"`
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

func UpdateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramID(c, "id", "quizID"); !ok {
			return err
		}

		reqData := new(struct {
			Title        *string `json:"title" validate:"omitempty,min=3,max=200"`
			TimeLimit    *int    `json:"time_limit" validate:"omitempty,min=0,max=180"`
			PassingScore *int    `json:"passing_score" validate:"omitempty,min=0,max=100"`
			MaxAttempts  *int    `json:"max_attempts" validate:"omitempty,min=0,max=50"`
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

func AddQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramID(c, "id", "quizID"); !ok {
			return err
		}

		reqData := new(struct {
			QuestionText  string   `json:"question_text" validate:"required,min=3"`
			QuestionType  string   `json:"question_type" validate:"required,oneof=multiple_choice true_false short_answer"`
			Options       []string `json:"options"`
			CorrectAnswer string   `json:"correct_answer" validate:"required"`
			Points        *int     `json:"points" validate:"omitempty,min=1,max=10"`
			Order         int      `json:"order" validate:"omitempty,min=0"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if err := middleware.Validate.Struct(reqData); err != nil {
			errors = middleware.ValidatorMessages(err)
		}

		// multiple_choice needs 2-6 options
		if reqData.QuestionType == "multiple_choice" && (len(reqData.Options) < 2 || len(reqData.Options) > 6) {
			errors["options"] = "Multiple choice questions need between 2 and 6 options!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramID(c, "id", "attemptID"); !ok {
			return err
		}

		reqData := new(struct {
			Answers   map[string]interface{} `json:"answers"`
			TimeSpent int                    `json:"timeSpent" validate:"omitempty,min=0"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Answers == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"answers": "Answers are required!",
			})
		}

		return c.Next()
	}
}
