// Package validate parses wire payloads into typed, validated request structs.
package validate

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/pulsecheck/pulsecheck/internal/apperror"
)

// phonePattern accepts E.164-style numbers with an optional leading plus.
var phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

var instance = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration cannot fail for a non-empty tag with a non-nil func.
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

// Struct validates a request struct and translates any failure into the
// client-facing missing-fields error.
func Struct(req any) *apperror.Error {
	if err := instance.Struct(req); err != nil {
		return apperror.FromValidation(err)
	}
	return nil
}
