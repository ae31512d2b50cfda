package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/allisson/secretkeeper/internal/database"
	apperrors "github.com/allisson/secretkeeper/internal/errors"
	secretsDomain "github.com/allisson/secretkeeper/internal/secrets/domain"
)

// MySQL error numbers the repository translates.
const (
	mysqlNoSuchTable  = 1146
	mysqlDuplicateKey = 1062
)

// MySQLSecretRepository implements Secret persistence for MySQL databases.
// The connection string must carry parseTime=true.
type MySQLSecretRepository struct {
	db *sql.DB
}

// Create inserts the next version for secret.Name and sets secret.ID and secret.Version.
// Concurrent writers that pick the same version fail on the unique index with ErrConflict.
func (m *MySQLSecretRepository) Create(ctx context.Context, secret *secretsDomain.Secret) error {
	querier := database.GetTx(ctx, m.db)

	var version int
	err := querier.QueryRowContext(
		ctx,
		`SELECT COALESCE(MAX(version), 0) + 1 FROM secrets WHERE name = ?`,
		secret.Name,
	).Scan(&version)
	if err != nil {
		return classifyMySQLError(err, "failed to compute secret version")
	}

	query := `INSERT INTO secrets
			  (name, note, version, encrypted, encryption_key_name, created_at, created_by, updated_at, updated_by)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := querier.ExecContext(
		ctx,
		query,
		secret.Name,
		secret.Note,
		version,
		secret.Encrypted,
		secret.EncryptionKeyName,
		secret.CreatedAt,
		secret.CreatedBy,
		secret.UpdatedAt,
		secret.UpdatedBy,
	)
	if err != nil {
		return classifyMySQLError(err, "failed to create secret")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to read secret id")
	}

	secret.ID = id
	secret.Version = version
	return nil
}

// GetLatest retrieves the highest version stored for name.
func (m *MySQLSecretRepository) GetLatest(ctx context.Context, name string) (*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + secretColumns + `
			  FROM secrets
			  WHERE name = ? AND deleted_at IS NULL
			  ORDER BY version DESC
			  LIMIT 1`

	secret, err := scanSecret(querier.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, secretsDomain.ErrSecretNotFound
		}
		return nil, classifyMySQLError(err, "failed to get latest secret")
	}
	return secret, nil
}

// UpdateNote edits the note of one version row in place.
func (m *MySQLSecretRepository) UpdateNote(
	ctx context.Context,
	id int64,
	note string,
	actor *string,
	at time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE secrets SET note = ?, updated_at = ?, updated_by = ? WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, note, at, actor, id)
	if err != nil {
		return classifyMySQLError(err, "failed to update secret note")
	}
	return requireAffected(result)
}

// StampLastUsed records a resolution on one version row. A nil actor clears last_used_by.
func (m *MySQLSecretRepository) StampLastUsed(
	ctx context.Context,
	id int64,
	actor *string,
	at time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE secrets SET last_used_at = ?, last_used_by = ? WHERE id = ?`

	if _, err := querier.ExecContext(ctx, query, at, actor, id); err != nil {
		return classifyMySQLError(err, "failed to stamp secret usage")
	}
	return nil
}

// ListLatest returns the latest version of every stored name not in excluding, ordered by name.
func (m *MySQLSecretRepository) ListLatest(
	ctx context.Context,
	excluding []string,
) ([]*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, m.db)

	query, args := latestQuery(excluding)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classifyMySQLError(err, "failed to list secrets")
	}
	defer func() {
		_ = rows.Close()
	}()

	secrets := make([]*secretsDomain.Secret, 0)
	for rows.Next() {
		secret, err := scanSecretMetadata(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan secret")
		}
		secrets = append(secrets, secret)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyMySQLError(err, "failed to iterate secrets")
	}
	return secrets, nil
}

// latestQuery builds the ListLatest query with one ? placeholder per excluded name.
// MySQL and SQLite share it.
func latestQuery(excluding []string) (string, []any) {
	var b strings.Builder
	b.WriteString(`SELECT ` + metadataColumns + `
			  FROM secrets s
			  WHERE s.deleted_at IS NULL
			    AND s.version = (SELECT MAX(version) FROM secrets WHERE name = s.name)`)

	args := make([]any, 0, len(excluding))
	if len(excluding) > 0 {
		b.WriteString(` AND s.name NOT IN (`)
		b.WriteString(strings.TrimSuffix(strings.Repeat("?, ", len(excluding)), ", "))
		b.WriteString(`)`)
		for _, name := range excluding {
			args = append(args, name)
		}
	}

	b.WriteString(` ORDER BY s.name`)
	return b.String(), args
}

// classifyMySQLError maps a missing table to ErrStoreUnavailable and a
// duplicate key to ErrConflict.
func classifyMySQLError(err error, message string) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlNoSuchTable:
			return apperrors.Wrap(secretsDomain.ErrStoreUnavailable, message)
		case mysqlDuplicateKey:
			return apperrors.Wrap(apperrors.ErrConflict, message)
		}
	}
	return apperrors.Wrap(err, message)
}

// NewMySQLSecretRepository creates a new MySQL Secret repository instance.
func NewMySQLSecretRepository(db *sql.DB) *MySQLSecretRepository {
	return &MySQLSecretRepository{db: db}
}
