// Package validation provides custom validation rules for the application.
package validation

import (
	"fmt"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/onetime/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// MaxBytes validates that a string is at most max bytes long.
//
// validation.Length counts runes; payload limits are about storage, so this counts bytes.
func MaxBytes(max int) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, ok := value.(string)
		if !ok {
			return validation.NewError("validation_max_bytes_type", "must be a string")
		}
		if len(s) > max {
			return validation.NewError(
				"validation_max_bytes",
				fmt.Sprintf("must be at most %d bytes", max),
			)
		}
		return nil
	})
}
