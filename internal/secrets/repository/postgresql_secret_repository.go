package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/allisson/secretkeeper/internal/database"
	apperrors "github.com/allisson/secretkeeper/internal/errors"
	secretsDomain "github.com/allisson/secretkeeper/internal/secrets/domain"
)

// PostgreSQL error codes the repository translates.
const (
	pqUndefinedTable  = "42P01"
	pqUniqueViolation = "23505"
)

// PostgreSQLSecretRepository implements Secret persistence for PostgreSQL databases.
type PostgreSQLSecretRepository struct {
	db *sql.DB
}

// Create inserts the next version for secret.Name and sets secret.ID and secret.Version.
// The version is computed by the insert itself so it stays consistent within the caller's transaction.
func (p *PostgreSQLSecretRepository) Create(ctx context.Context, secret *secretsDomain.Secret) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO secrets
			  (name, note, version, encrypted, encryption_key_name, created_at, created_by, updated_at, updated_by)
			  SELECT $1::text, $2::text, COALESCE(MAX(version), 0) + 1, $3::bytea, $4::text,
			         $5::timestamptz, $6::text, $7::timestamptz, $8::text
			  FROM secrets WHERE name = $1::text
			  RETURNING id, version`

	err := querier.QueryRowContext(
		ctx,
		query,
		secret.Name,
		secret.Note,
		secret.Encrypted,
		secret.EncryptionKeyName,
		secret.CreatedAt,
		secret.CreatedBy,
		secret.UpdatedAt,
		secret.UpdatedBy,
	).Scan(&secret.ID, &secret.Version)
	if err != nil {
		return classifyPostgreSQLError(err, "failed to create secret")
	}
	return nil
}

// GetLatest retrieves the highest version stored for name.
func (p *PostgreSQLSecretRepository) GetLatest(ctx context.Context, name string) (*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + secretColumns + `
			  FROM secrets
			  WHERE name = $1 AND deleted_at IS NULL
			  ORDER BY version DESC
			  LIMIT 1`

	secret, err := scanSecret(querier.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, secretsDomain.ErrSecretNotFound
		}
		return nil, classifyPostgreSQLError(err, "failed to get latest secret")
	}
	return secret, nil
}

// UpdateNote edits the note of one version row in place.
func (p *PostgreSQLSecretRepository) UpdateNote(
	ctx context.Context,
	id int64,
	note string,
	actor *string,
	at time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE secrets SET note = $1, updated_at = $2, updated_by = $3 WHERE id = $4`

	result, err := querier.ExecContext(ctx, query, note, at, actor, id)
	if err != nil {
		return classifyPostgreSQLError(err, "failed to update secret note")
	}
	return requireAffected(result)
}

// StampLastUsed records a resolution on one version row. A nil actor clears last_used_by.
func (p *PostgreSQLSecretRepository) StampLastUsed(
	ctx context.Context,
	id int64,
	actor *string,
	at time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE secrets SET last_used_at = $1, last_used_by = $2 WHERE id = $3`

	if _, err := querier.ExecContext(ctx, query, at, actor, id); err != nil {
		return classifyPostgreSQLError(err, "failed to stamp secret usage")
	}
	return nil
}

// ListLatest returns the latest version of every stored name not in excluding, ordered by name.
// Ciphertext is not read.
func (p *PostgreSQLSecretRepository) ListLatest(
	ctx context.Context,
	excluding []string,
) ([]*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, p.db)

	if excluding == nil {
		excluding = []string{}
	}

	query := `SELECT ` + metadataColumns + `
			  FROM secrets s
			  WHERE s.deleted_at IS NULL
			    AND s.version = (SELECT MAX(version) FROM secrets WHERE name = s.name)
			    AND s.name <> ALL($1)
			  ORDER BY s.name`

	rows, err := querier.QueryContext(ctx, query, pq.Array(excluding))
	if err != nil {
		return nil, classifyPostgreSQLError(err, "failed to list secrets")
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
		return nil, classifyPostgreSQLError(err, "failed to iterate secrets")
	}
	return secrets, nil
}

// classifyPostgreSQLError maps a missing table to ErrStoreUnavailable and a
// unique violation to ErrConflict.
func classifyPostgreSQLError(err error, message string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUndefinedTable:
			return apperrors.Wrap(secretsDomain.ErrStoreUnavailable, message)
		case pqUniqueViolation:
			return apperrors.Wrap(apperrors.ErrConflict, message)
		}
	}
	return apperrors.Wrap(err, message)
}

// NewPostgreSQLSecretRepository creates a new PostgreSQL Secret repository instance.
func NewPostgreSQLSecretRepository(db *sql.DB) *PostgreSQLSecretRepository {
	return &PostgreSQLSecretRepository{db: db}
}
