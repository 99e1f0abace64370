package api

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/blog-api/internal/domain"
)

// validationMessages translates request validation failures into the
// client-facing messages, in field order. ok is false when err is not a
// validator.ValidationErrors.
func validationMessages(err error) (messages []string, ok bool) {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil, false
	}

	for _, fe := range fieldErrs {
		messages = append(messages, fieldMessage(fe))
	}
	return messages, true
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.StructField() {
	case "Title":
		if fe.Tag() == "max" {
			return domain.MsgTitleTooLong
		}
		return domain.MsgTitleBlank
	case "Content":
		return domain.MsgContentBlank
	case "Username":
		return "Username should not be blank"
	case "Password":
		return "Password should not be blank"
	default:
		return fe.Field() + " is invalid"
	}
}
