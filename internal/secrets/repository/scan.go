// Package repository implements data persistence for secret versions.
// PostgreSQL, MySQL and SQLite share one schema and one column order; only
// placeholders and driver error codes differ.
package repository

import (
	secretsDomain "github.com/allisson/secretkeeper/internal/secrets/domain"
)

// secretColumns is the column list read by GetLatest.
const secretColumns = `id, name, note, version, encrypted, encryption_key_name,
	created_at, created_by, updated_at, updated_by,
	deleted_at, deleted_by, last_used_at, last_used_by`

// metadataColumns is secretColumns without the ciphertext, used by listings.
const metadataColumns = `id, name, note, version, encryption_key_name,
	created_at, created_by, updated_at, updated_by,
	deleted_at, deleted_by, last_used_at, last_used_by`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSecret(row rowScanner) (*secretsDomain.Secret, error) {
	var s secretsDomain.Secret
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Note,
		&s.Version,
		&s.Encrypted,
		&s.EncryptionKeyName,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.UpdatedAt,
		&s.UpdatedBy,
		&s.DeletedAt,
		&s.DeletedBy,
		&s.LastUsedAt,
		&s.LastUsedBy,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func scanSecretMetadata(row rowScanner) (*secretsDomain.Secret, error) {
	var s secretsDomain.Secret
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Note,
		&s.Version,
		&s.EncryptionKeyName,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.UpdatedAt,
		&s.UpdatedBy,
		&s.DeletedAt,
		&s.DeletedBy,
		&s.LastUsedAt,
		&s.LastUsedBy,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
