package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	migrateDatabase "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/allisson/secretkeeper/migrations"
)

// ErrUnsupportedDriver is returned for a driver with no embedded migrations.
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// migrationsDir maps a sql driver name to its directory inside migrations.FS.
func migrationsDir(driver string) (string, error) {
	switch driver {
	case DriverPostgres:
		return "postgresql", nil
	case DriverMySQL:
		return "mysql", nil
	case DriverSQLite:
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedDriver, driver)
	}
}

func migrationDriver(driver string, db *sql.DB) (migrateDatabase.Driver, error) {
	switch driver {
	case DriverPostgres:
		return postgres.WithInstance(db, &postgres.Config{})
	case DriverMySQL:
		return mysql.WithInstance(db, &mysql.Config{})
	default:
		return sqlite3.WithInstance(db, &sqlite3.Config{})
	}
}

// RunMigrations applies every pending embedded migration for driver against dsn.
// It opens and closes its own connection. No pending migrations is not an error.
func RunMigrations(driver, dsn string, logger *slog.Logger) error {
	dir, err := migrationsDir(driver)
	if err != nil {
		return err
	}

	logger.Info("running database migrations", slog.String("driver", driver))

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	dbDriver, err := migrationDriver(driver, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	source, err := iofs.New(migrations.FS, dir)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, driver, dbDriver)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}

// closeMigrate closes the migration instance, which also closes its connection.
func closeMigrate(m *migrate.Migrate, logger *slog.Logger) {
	sourceErr, databaseErr := m.Close()
	if sourceErr != nil || databaseErr != nil {
		logger.Error(
			"failed to close the migrate",
			slog.Any("source_error", sourceErr),
			slog.Any("database_error", databaseErr),
		)
	}
}
