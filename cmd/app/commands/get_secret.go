package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	secretsUseCase "github.com/allisson/secretkeeper/internal/secrets/usecase"
)

// ErrSecretNotFound is returned when a name has neither an override nor a stored version.
var ErrSecretNotFound = errors.New("secret not found")

// SecretUseCaseFactory opens the store-backed secret use case on demand.
type SecretUseCaseFactory func() (secretsUseCase.SecretUseCase, error)

// RunGetSecret resolves name and writes its value. Overrides are checked first and
// the store is only opened when none is set, so an override answers even when the
// store is unreachable. An empty actor records no actor.
func RunGetSecret(
	ctx context.Context,
	overrides secretsUseCase.SecretUseCase,
	openStore SecretUseCaseFactory,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	actor string,
) error {
	value, found, err := overrides.Resolve(ctx, name, nil)
	if err != nil {
		return fmt.Errorf("failed to resolve secret: %w", err)
	}

	if !found {
		secretUseCase, err := openStore()
		if err != nil {
			return fmt.Errorf("failed to open secret store: %w", err)
		}

		var actorPtr *string
		if actor != "" {
			actorPtr = &actor
		}

		value, found, err = secretUseCase.Resolve(ctx, name, actorPtr)
		if err != nil {
			return fmt.Errorf("failed to resolve secret: %w", err)
		}
		if !found {
			return fmt.Errorf("%w: %s", ErrSecretNotFound, name)
		}
	}

	logger.Debug("secret resolved", slog.String("name", name))

	_, err = fmt.Fprintln(writer, value)
	return err
}
