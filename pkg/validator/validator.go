package validator

import (
	"fmt"
	"reflect"
	"strings"

	apperrors "ecommerce-admin/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/google/uuid"
)

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

var validate = validator.New()

func init() {
	// Report fields by their JSON name so details match the request body.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	validate.RegisterValidation("notblank", validators.NotBlank)

	validate.RegisterValidation("uuid_required", func(fl validator.FieldLevel) bool {
		if id, ok := fl.Field().Interface().(uuid.UUID); ok {
			return id != uuid.Nil
		}
		return false
	})
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return []*ErrorResponse{{FailedField: "body", Tag: "invalid"}}
		}
		for _, err := range verrs {
			errors = append(errors, &ErrorResponse{
				FailedField: err.Field(),
				Tag:         err.Tag(),
				Value:       err.Param(),
			})
		}
	}
	return errors
}

// Validate runs the struct tags on data and returns a *ValidationError listing every failed field.
func Validate(data interface{}) error {
	errs := ValidateStruct(data)
	if len(errs) == 0 {
		return nil
	}

	details := make([]apperrors.ValidationDetail, 0, len(errs))
	for _, e := range errs {
		details = append(details, apperrors.ValidationDetail{
			Field:   e.FailedField,
			Message: describe(e),
		})
	}

	first := details[0]
	return apperrors.NewValidationError(
		fmt.Sprintf("validation failed: field '%s' %s", first.Field, first.Message),
		details...,
	)
}

func describe(e *ErrorResponse) string {
	switch e.Tag {
	case "required", "uuid_required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "gt":
		return "must be greater than " + e.Value
	case "gte":
		return "must be greater than or equal to " + e.Value
	case "max":
		return "must be at most " + e.Value + " characters"
	case "oneof":
		return "must be one of [" + e.Value + "]"
	default:
		return "failed on '" + e.Tag + "'"
	}
}
