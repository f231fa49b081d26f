package middleware

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate is the shared validator instance used by the validators packages
var Validate = validator.New()

// ValidatorMessages converts validator.ValidationErrors into the field error
// map used by ValidationErrorResponse.
func ValidatorMessages(err error) map[string]string {
	errors := make(map[string]string)

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errors["body"] = "Invalid request body!"
		return errors
	}

	for _, fe := range validationErrors {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			errors[field] = fmt.Sprintf("%s is required!", fe.Field())
		case "min":
			errors[field] = fmt.Sprintf("%s must be at least %s!", fe.Field(), fe.Param())
		case "max":
			errors[field] = fmt.Sprintf("%s must be at most %s!", fe.Field(), fe.Param())
		case "email":
			errors[field] = "Invalid email address!"
		case "oneof":
			errors[field] = fmt.Sprintf("%s must be one of: %s!", fe.Field(), fe.Param())
		default:
			errors[field] = fmt.Sprintf("%s is invalid!", fe.Field())
		}
	}

	return errors
}
