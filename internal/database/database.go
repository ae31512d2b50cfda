// Package database opens the secret store database, runs its migrations and manages transactions.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Supported driver names, as passed to sql.Open.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite3"
)

// DefaultPingTimeout bounds the connection check in Connect when Config.PingTimeout is zero.
const DefaultPingTimeout = 5 * time.Second

// Config holds the store database connection settings.
type Config struct {
	Driver             string
	ConnectionString   string
	MaxOpenConnections int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration
	PingTimeout        time.Duration
}

func (c Config) pingTimeout() time.Duration {
	if c.PingTimeout <= 0 {
		return DefaultPingTimeout
	}
	return c.PingTimeout
}

// Connect opens the store database and checks it answers within the ping timeout,
// so an unreachable server fails fast instead of on the first query.
func Connect(cfg Config) (*sql.DB, error) {
	db, err := sql.Open(cfg.Driver, cfg.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConnections)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.pingTimeout())
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// SQLiteDSN builds a connection string for a local SQLite file. Writers take the
// lock when the transaction begins and wait up to five seconds for it.
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_busy_timeout=5000&_txlock=immediate&_foreign_keys=on", path)
}
