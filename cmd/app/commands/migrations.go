package commands

import (
	"log/slog"

	"github.com/allisson/secretkeeper/internal/database"
)

// RunMigrations applies the embedded migrations to the store database.
// No pending migrations is not an error.
func RunMigrations(logger *slog.Logger, driver, dsn string) error {
	return database.RunMigrations(driver, dsn, logger)
}
