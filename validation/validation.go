// Package validation contains custom validation functions for the application to use for input validation.
package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldValidator is a validation function that checks if the field value is empty.
// It returns true if the field value is not empty after trimming spaces, and false otherwise.
func FieldValidator(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// New returns a validator with the custom validations of the application registered.
func New() *validator.Validate {
	validate := validator.New()
	// RegisterValidation only fails for an empty tag or a nil func.
	_ = validate.RegisterValidation("fieldValidator", FieldValidator)
	return validate
}
