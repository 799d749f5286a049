// Package validation wraps go-playground/validator to produce the
// field-error lists the API returns on bad input.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"devlink/internal/models"

	"github.com/go-playground/validator/v10"
)

// Validator validates request DTOs against their struct tags.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator that reports field names from json tags so error
// payloads match the wire format rather than Go identifiers.
func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Struct validates i and returns a models.AppError carrying one FieldError
// per failed check, or nil when the value is valid.
func (v *Validator) Struct(i interface{}) *models.AppError {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return models.NewInternalError(err)
	}

	fields := make([]models.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, models.FieldError{
			Msg:   message(fe),
			Param: fe.Field(),
		})
	}

	return models.NewValidationError(fields...)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", capitalize(fe.Field()))
	case "email":
		return "Please include a valid email"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", capitalize(fe.Field()), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", capitalize(fe.Field()), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", capitalize(fe.Field()), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", capitalize(fe.Field()))
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
