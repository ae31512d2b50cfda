// Package validation provides custom validation rules for the application.
package validation

import (
	"encoding/base64"
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/secretkeeper/internal/errors"
)

var envVariableRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// EnvVariableName validates that a string can start or form a POSIX environment variable name.
var EnvVariableName = validation.NewStringRuleWithError(
	func(s string) bool {
		return envVariableRegex.MatchString(s)
	},
	validation.NewError("validation_env_variable_name", "must contain only letters, digits and underscores"),
)

// Base64URL validates base64url text, padded or raw. Empty strings are left to Required.
var Base64URL = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_base64url_type", "must be a string")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := base64.URLEncoding.DecodeString(s); err == nil {
		return nil
	}
	if _, err := base64.RawURLEncoding.DecodeString(s); err == nil {
		return nil
	}
	return validation.NewError("validation_base64url", "must be valid base64url-encoded data")
})
