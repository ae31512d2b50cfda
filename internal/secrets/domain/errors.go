package domain

import (
	"github.com/allisson/secretkeeper/internal/errors"
)

// Secret-specific error definitions.
var (
	// ErrSecretNotFound indicates no stored version matched.
	ErrSecretNotFound = errors.Wrap(errors.ErrNotFound, "secret not found")

	// ErrStoreUnavailable indicates the secrets table is missing. Resolution treats it as absent.
	ErrStoreUnavailable = errors.Wrap(errors.ErrUnavailable, "secret store unavailable")

	// ErrStoreNotConfigured indicates no encryption key is configured.
	ErrStoreNotConfigured = errors.Wrap(errors.ErrNotConfigured, "secret store is not configured")

	// ErrNameRequired indicates a blank secret name.
	ErrNameRequired = errors.Wrap(errors.ErrInvalidInput, "name is required")

	// ErrNameTooLong indicates a name longer than MaxNameLength characters.
	ErrNameTooLong = errors.Wrap(errors.ErrInvalidInput, "name must be at most 255 characters")

	// ErrNoteTooLong indicates a note longer than MaxNoteLength characters.
	ErrNoteTooLong = errors.Wrap(errors.ErrInvalidInput, "note must be at most 100 characters")

	// ErrSecretRequired indicates a note-only write for a name with no stored version.
	ErrSecretRequired = errors.Wrap(errors.ErrInvalidInput, "secret is required")

	// ErrVersionConflict indicates the retry budget was exhausted by concurrent writers.
	ErrVersionConflict = errors.Wrap(errors.ErrConflict, "could not allocate a secret version")
)
