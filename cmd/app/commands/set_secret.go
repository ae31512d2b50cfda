package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	secretsDomain "github.com/allisson/secretkeeper/internal/secrets/domain"
	secretsUseCase "github.com/allisson/secretkeeper/internal/secrets/usecase"
)

// RunSetSecret stores a new version of name, or edits the latest note when value is empty.
// The value itself is never printed or logged.
func RunSetSecret(
	ctx context.Context,
	secretUseCase secretsUseCase.SecretUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	value string,
	note string,
	actor string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	result, err := secretUseCase.Set(ctx, secretsDomain.SetSecretInput{
		Name:   name,
		Secret: value,
		Note:   note,
		Actor:  actor,
	})
	if err != nil {
		return fmt.Errorf("failed to set secret: %w", err)
	}

	logger.Info("secret saved",
		slog.String("name", result.Secret.Name),
		slog.Int("version", result.Secret.Version),
		slog.Bool("note_only", result.NoteOnly),
		slog.String("actor", actor),
	)

	if format == "json" {
		return writeJSON(writer, map[string]any{
			"name":      result.Secret.Name,
			"version":   result.Secret.Version,
			"note":      result.Secret.Note,
			"note_only": result.NoteOnly,
		})
	}

	if result.NoteOnly {
		_, err = fmt.Fprintf(writer, "Updated note of %s version %d\n", result.Secret.Name, result.Secret.Version)
		return err
	}
	_, err = fmt.Fprintf(writer, "Stored %s version %d\n", result.Secret.Name, result.Secret.Version)
	return err
}
