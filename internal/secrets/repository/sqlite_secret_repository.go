package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/allisson/secretkeeper/internal/database"
	apperrors "github.com/allisson/secretkeeper/internal/errors"
	secretsDomain "github.com/allisson/secretkeeper/internal/secrets/domain"
)

// SQLiteSecretRepository implements Secret persistence for the internal SQLite database.
type SQLiteSecretRepository struct {
	db *sql.DB
}

// Create inserts the next version for secret.Name and sets secret.ID and secret.Version.
func (s *SQLiteSecretRepository) Create(ctx context.Context, secret *secretsDomain.Secret) error {
	querier := database.GetTx(ctx, s.db)

	query := `INSERT INTO secrets
			  (name, note, version, encrypted, encryption_key_name, created_at, created_by, updated_at, updated_by)
			  SELECT ?1, ?2, COALESCE(MAX(version), 0) + 1, ?3, ?4, ?5, ?6, ?7, ?8
			  FROM secrets WHERE name = ?1
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
		return classifySQLiteError(err, "failed to create secret")
	}
	return nil
}

// GetLatest retrieves the highest version stored for name.
func (s *SQLiteSecretRepository) GetLatest(ctx context.Context, name string) (*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, s.db)

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
		return nil, classifySQLiteError(err, "failed to get latest secret")
	}
	return secret, nil
}

// UpdateNote edits the note of one version row in place.
func (s *SQLiteSecretRepository) UpdateNote(
	ctx context.Context,
	id int64,
	note string,
	actor *string,
	at time.Time,
) error {
	querier := database.GetTx(ctx, s.db)

	query := `UPDATE secrets SET note = ?, updated_at = ?, updated_by = ? WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, note, at, actor, id)
	if err != nil {
		return classifySQLiteError(err, "failed to update secret note")
	}
	return requireAffected(result)
}

// StampLastUsed records a resolution on one version row. A nil actor clears last_used_by.
func (s *SQLiteSecretRepository) StampLastUsed(
	ctx context.Context,
	id int64,
	actor *string,
	at time.Time,
) error {
	querier := database.GetTx(ctx, s.db)

	query := `UPDATE secrets SET last_used_at = ?, last_used_by = ? WHERE id = ?`

	if _, err := querier.ExecContext(ctx, query, at, actor, id); err != nil {
		return classifySQLiteError(err, "failed to stamp secret usage")
	}
	return nil
}

// ListLatest returns the latest version of every stored name not in excluding, ordered by name.
func (s *SQLiteSecretRepository) ListLatest(
	ctx context.Context,
	excluding []string,
) ([]*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, s.db)

	query, args := latestQuery(excluding)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classifySQLiteError(err, "failed to list secrets")
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
		return nil, classifySQLiteError(err, "failed to iterate secrets")
	}
	return secrets, nil
}

// classifySQLiteError maps a missing table to ErrStoreUnavailable and a unique
// constraint failure to ErrConflict. SQLite reports a missing table only in the message.
func classifySQLiteError(err error, message string) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code == sqlite3.ErrConstraint && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return apperrors.Wrap(apperrors.ErrConflict, message)
		}
	}
	if strings.Contains(err.Error(), "no such table") {
		return apperrors.Wrap(secretsDomain.ErrStoreUnavailable, message)
	}
	return apperrors.Wrap(err, message)
}

// NewSQLiteSecretRepository creates a new SQLite Secret repository instance.
func NewSQLiteSecretRepository(db *sql.DB) *SQLiteSecretRepository {
	return &SQLiteSecretRepository{db: db}
}
