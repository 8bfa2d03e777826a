// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/onetime/internal/validation"
)

// CreateSecretRequest contains the parameters for creating a one-time secret.
type CreateSecretRequest struct {
	SecretContent string `json:"secret_content"`
	Password      string `json:"password"`
}

// Validate checks if the create secret request is valid. maxBytes caps secret_content.
func (r *CreateSecretRequest) Validate(maxBytes int) error {
	return validation.ValidateStruct(r,
		validation.Field(&r.SecretContent,
			validation.Required,
			customValidation.MaxBytes(maxBytes),
		),
		validation.Field(&r.Password, validation.Required),
	)
}
