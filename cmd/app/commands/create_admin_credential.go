package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	authUseCase "github.com/allisson/secretkeeper/internal/auth/usecase"
)

// RunCreateAdminCredential generates a token for actor and prints the bearer value
// together with the entry to append to ADMIN_CREDENTIALS. The token is shown once;
// only its hash belongs in configuration.
func RunCreateAdminCredential(
	ctx context.Context,
	adminUseCase authUseCase.AdminUseCase,
	logger *slog.Logger,
	writer io.Writer,
	actor string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	output, err := adminUseCase.CreateCredential(ctx, actor)
	if err != nil {
		return fmt.Errorf("failed to create admin credential: %w", err)
	}

	logger.Info("admin credential created", slog.String("actor", output.Credential.Actor))

	if format == "json" {
		return writeJSON(writer, map[string]string{
			"actor":            output.Credential.Actor,
			"token":            output.Token,
			"authorization":    output.BearerValue(),
			"credential_entry": output.Credential.String(),
		})
	}

	_, err = fmt.Fprintf(writer,
		"# Append to ADMIN_CREDENTIALS (entries are separated by ';'):\n%s\n\n"+
			"# Send on every admin request (shown only once):\nAuthorization: %s\n",
		output.Credential.String(),
		output.BearerValue(),
	)
	return err
}
