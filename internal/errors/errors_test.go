package errors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/secretkeeper/internal/auth/domain"
	apperrors "github.com/allisson/secretkeeper/internal/errors"
	secretsDomain "github.com/allisson/secretkeeper/internal/secrets/domain"
)

type storeError struct {
	Driver string
}

func (e *storeError) Error() string { return e.Driver + " unavailable" }

func TestWrap(t *testing.T) {
	t.Run("KeepsChain", func(t *testing.T) {
		wrapped := apperrors.Wrap(apperrors.ErrNotConfigured, "secret store is not configured")
		assert.EqualError(t, wrapped, "secret store is not configured: not configured")
		assert.True(t, apperrors.Is(wrapped, apperrors.ErrNotConfigured))
	})

	t.Run("Nil", func(t *testing.T) {
		assert.NoError(t, apperrors.Wrap(nil, "ignored"))
		assert.NoError(t, apperrors.Wrapf(nil, "ignored %d", 1))
	})

	t.Run("Formatted", func(t *testing.T) {
		wrapped := apperrors.Wrapf(apperrors.ErrConflict, "version %d of %s", 3, "OPENAI_API_KEY")
		assert.EqualError(t, wrapped, "version 3 of OPENAI_API_KEY: conflict")
		assert.ErrorIs(t, wrapped, apperrors.ErrConflict)
	})
}

func TestAs(t *testing.T) {
	err := fmt.Errorf("resolve OPENAI_API_KEY: %w", &storeError{Driver: "postgres"})

	var target *storeError
	require.True(t, apperrors.As(err, &target))
	assert.Equal(t, "postgres", target.Driver)

	assert.False(t, apperrors.As(apperrors.New("plain"), &target))
}

// Handlers map errors to status codes by category, so every domain error must
// unwrap to exactly the category it documents.
func TestDomainErrorCategories(t *testing.T) {
	tests := []struct {
		err      error
		category error
	}{
		{secretsDomain.ErrSecretNotFound, apperrors.ErrNotFound},
		{secretsDomain.ErrStoreNotConfigured, apperrors.ErrNotConfigured},
		{secretsDomain.ErrNameRequired, apperrors.ErrInvalidInput},
		{secretsDomain.ErrNameTooLong, apperrors.ErrInvalidInput},
		{secretsDomain.ErrNoteTooLong, apperrors.ErrInvalidInput},
		{secretsDomain.ErrSecretRequired, apperrors.ErrInvalidInput},
		{secretsDomain.ErrVersionConflict, apperrors.ErrConflict},
		{secretsDomain.ErrStoreUnavailable, apperrors.ErrUnavailable},
		{authDomain.ErrInvalidCredentials, apperrors.ErrUnauthorized},
		{authDomain.ErrMalformedCredentials, apperrors.ErrInvalidInput},
	}

	categories := []error{
		apperrors.ErrNotFound,
		apperrors.ErrConflict,
		apperrors.ErrInvalidInput,
		apperrors.ErrUnauthorized,
		apperrors.ErrForbidden,
		apperrors.ErrNotConfigured,
		apperrors.ErrUnavailable,
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			for _, category := range categories {
				assert.Equal(t, category == tt.category, errors.Is(tt.err, category), "category %q", category)
			}
		})
	}
}
