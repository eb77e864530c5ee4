// Package validator adapts go-playground/validator to echo.
package validator

import (
	"reflect"
	"strings"

	domainerrors "fuelflow/internal/domain/errors"
	"fuelflow/internal/errors"

	"github.com/go-playground/validator/v10"
)

// Validator implements echo.Validator.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator that reports fields by their json names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(field.Tag.Get("query"), ",", 2)[0]
		}
		if name == "" {
			return field.Name
		}

		return name
	})

	return &Validator{validate: v}
}

// Validate checks i and returns ErrValidationFailed naming every bad field.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	fieldErrs, ok := errors.AsType[validator.ValidationErrors](err)
	if !ok {
		return errors.WithStack(err)
	}

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field()+" ("+fe.Tag()+")")
	}

	return domainerrors.ErrValidationFailed.WithDetails(strings.Join(fields, ", "))
}
