// Package usecase defines the interfaces and implementations for secret management use cases.
// Resolution reads environment overrides before the encrypted store; administrator writes
// append new versions or edit the latest note.
package usecase

import (
	"context"
	"time"

	secretsDomain "github.com/allisson/secretkeeper/internal/secrets/domain"
)

// SecretRepository defines the interface for Secret persistence operations.
type SecretRepository interface {
	Create(ctx context.Context, secret *secretsDomain.Secret) error
	GetLatest(ctx context.Context, name string) (*secretsDomain.Secret, error)
	UpdateNote(ctx context.Context, id int64, note string, actor *string, at time.Time) error
	StampLastUsed(ctx context.Context, id int64, actor *string, at time.Time) error
	ListLatest(ctx context.Context, excluding []string) ([]*secretsDomain.Secret, error)
}

// Catalog lists the declared secrets.
type Catalog interface {
	List(ctx context.Context) ([]secretsDomain.Declaration, error)
	Lookup(ctx context.Context, name string) (*secretsDomain.Declaration, bool, error)
}

// SecretUseCase defines the interface for secret management business logic.
type SecretUseCase interface {
	// Resolve returns the current value of a secret. found is false when no override
	// is set and nothing is stored. Decryption failures are returned, never hidden.
	Resolve(ctx context.Context, name string, actor *string) (value string, found bool, err error)
	// Set stores a new version, or edits the latest note when input.Secret is empty.
	Set(ctx context.Context, input secretsDomain.SetSecretInput) (*secretsDomain.SetSecretResult, error)
	// List partitions declared and stored secrets by value source.
	List(ctx context.Context) (*secretsDomain.Listing, error)
	// Describe returns metadata for one name without decrypting it.
	Describe(ctx context.Context, name string) (*secretsDomain.SecretDetail, error)
}

// LookupEnvFunc reads an environment variable, like os.LookupEnv.
type LookupEnvFunc func(key string) (string, bool)
