// Package usecase implements administrator authentication against configured credentials.
package usecase

import (
	"context"

	authDomain "github.com/allisson/secretkeeper/internal/auth/domain"
)

// AdminUseCase authenticates administrators and issues new credentials.
type AdminUseCase interface {
	// Authenticate returns the actor when token matches the configured hash for actorName.
	// Unknown actors and mismatched tokens both return ErrInvalidCredentials.
	Authenticate(ctx context.Context, actorName, token string) (*authDomain.Actor, error)

	// CreateCredential generates a token for actorName. The returned credential must be added
	// to the configured list before the token authenticates.
	CreateCredential(ctx context.Context, actorName string) (*authDomain.CreateCredentialOutput, error)
}
