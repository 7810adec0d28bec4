package service

import (
	"errors"
	"fmt"

	"moodboard/internal/models"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("mood", func(fl validator.FieldLevel) bool {
		return models.Mood(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("reaction", func(fl validator.FieldLevel) bool {
		return models.ReactionType(fl.Field().String()).Valid()
	})
	return v
}

// validateInput checks struct tags and reports the first failure as a VALIDATION_ERROR.
func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return models.NewInternalError(err)
	}
	return models.NewValidationError(describe(verrs[0]))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "max":
		return fmt.Sprintf("%s too long (max %s characters)", fe.Field(), fe.Param())
	case "mood":
		return "Invalid mood"
	case "reaction":
		return "Invalid reaction type"
	default:
		return "Invalid " + fe.Field()
	}
}
