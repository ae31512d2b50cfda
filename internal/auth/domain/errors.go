package domain

import (
	"github.com/allisson/secretkeeper/internal/errors"
)

// Authentication errors.
var (
	// ErrInvalidCredentials indicates an unknown actor or a token that does not match its hash.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrMalformedCredentials indicates the configured credential list cannot be parsed.
	ErrMalformedCredentials = errors.Wrap(errors.ErrInvalidInput, "malformed admin credentials")

	// ErrInvalidActorName indicates an empty actor name or one with unsupported characters.
	ErrInvalidActorName = errors.Wrap(errors.ErrInvalidInput, "invalid actor name")
)
