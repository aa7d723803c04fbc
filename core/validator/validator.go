package validator

import (
	"fmt"
	"strings"

	"metra-api/core/errors"

	"github.com/go-playground/validator/v10"
)

// RequestValidator adapts go-playground/validator to echo's Validator interface.
type RequestValidator struct {
	validate *validator.Validate
}

func New() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

func (v *RequestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fieldMessage(fe))
			}
			return errors.NewAppError(errors.ErrInvalidRequestData, strings.Join(msgs, "; "), err)
		}
		return errors.NewAppError(errors.ErrInvalidRequestData, err.Error(), err)
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
