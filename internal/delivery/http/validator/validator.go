// Package validator adapts go-playground/validator to Echo's Validator
// interface so handlers can call c.Validate on bound request structs.
package validator

import (
	"strings"

	domainerrors "bistro/internal/domain/errors"

	playground "github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// RequestValidator validates request structs by their `validate` tags.
type RequestValidator struct {
	validate *playground.Validate
}

// New creates a validator instance shared by all requests.
func New() *RequestValidator {
	return &RequestValidator{
		validate: playground.New(playground.WithRequiredStructEnabled()),
	}
}

// Validate implements echo.Validator. Failures are collapsed into a single
// VALIDATION_FAILED error listing every offending field.
func (v *RequestValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrs playground.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return errors.Wrap(err, "validate request")
	}

	details := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		details = append(details, describe(fieldErr))
	}

	return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails(strings.Join(details, "; ")))
}

// describe renders one field failure as "field: reason".
func describe(fieldErr playground.FieldError) string {
	field := fieldErr.Field()

	switch fieldErr.Tag() {
	case "required":
		return field + ": is required"
	case "email":
		return field + ": must be a valid email address"
	case "min":
		return field + ": must be at least " + fieldErr.Param()
	case "max":
		return field + ": must be at most " + fieldErr.Param()
	case "oneof":
		return field + ": must be one of " + fieldErr.Param()
	default:
		return field + ": failed on the '" + fieldErr.Tag() + "' rule"
	}
}
