// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	secretsDomain "github.com/allisson/secretkeeper/internal/secrets/domain"
	customValidation "github.com/allisson/secretkeeper/internal/validation"
)

// ValidateSecretName checks the :name path parameter of a write. Names are stored as given,
// so surrounding whitespace is rejected rather than trimmed.
func ValidateSecretName(name string) error {
	return validation.Validate(name,
		validation.Required,
		customValidation.NotBlank,
		customValidation.NoWhitespace,
		validation.RuneLength(0, secretsDomain.MaxNameLength),
	)
}

// SetSecretRequest contains the body of POST /v1/secrets/:name.
// An empty Secret keeps the stored value and only replaces the note.
type SetSecretRequest struct {
	Secret string `json:"secret"`
	Note   string `json:"note"`
}

// Validate checks if the set secret request is valid.
func (r *SetSecretRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Note,
			validation.RuneLength(0, secretsDomain.MaxNoteLength),
		),
	)
}

// ToInput converts the request to the use case input.
func (r *SetSecretRequest) ToInput(name, actor string) secretsDomain.SetSecretInput {
	return secretsDomain.SetSecretInput{
		Name:   name,
		Secret: r.Secret,
		Note:   r.Note,
		Actor:  actor,
	}
}
