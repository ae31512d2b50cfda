package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/secretkeeper/internal/errors"
	secretsDomain "github.com/allisson/secretkeeper/internal/secrets/domain"
)

func newSQLMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

var secretRowColumns = []string{
	"id", "name", "note", "version", "encrypted", "encryption_key_name",
	"created_at", "created_by", "updated_at", "updated_by",
	"deleted_at", "deleted_by", "last_used_at", "last_used_by",
}

func TestNewPostgreSQLSecretRepository(t *testing.T) {
	db, _ := newSQLMock(t)
	repo := NewPostgreSQLSecretRepository(db)
	assert.IsType(t, &PostgreSQLSecretRepository{}, repo)
}

func TestPostgreSQLSecretRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_AssignsIDAndVersion", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewPostgreSQLSecretRepository(db)
		secret := newSecret("EXAMPLE_SECRET", "note", []byte("blob"), "admin")

		mock.ExpectQuery(regexp.QuoteMeta("COALESCE(MAX(version), 0) + 1")).
			WithArgs("EXAMPLE_SECRET", "note", []byte("blob"), "default",
				secret.CreatedAt, secret.CreatedBy, secret.UpdatedAt, secret.UpdatedBy).
			WillReturnRows(sqlmock.NewRows([]string{"id", "version"}).AddRow(int64(7), 3))

		require.NoError(t, repo.Create(ctx, secret))
		assert.Equal(t, int64(7), secret.ID)
		assert.Equal(t, 3, secret.Version)
	})

	t.Run("Error_UniqueViolationIsConflict", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewPostgreSQLSecretRepository(db)

		mock.ExpectQuery("INSERT INTO secrets").
			WillReturnError(&pq.Error{Code: pqUniqueViolation})

		err := repo.Create(ctx, newSecret("EXAMPLE_SECRET", "", []byte("blob"), ""))
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("Error_UndefinedTable", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewPostgreSQLSecretRepository(db)

		mock.ExpectQuery("INSERT INTO secrets").
			WillReturnError(&pq.Error{Code: pqUndefinedTable})

		err := repo.Create(ctx, newSecret("EXAMPLE_SECRET", "", []byte("blob"), ""))
		assert.ErrorIs(t, err, secretsDomain.ErrStoreUnavailable)
	})
}

func TestPostgreSQLSecretRepository_GetLatest(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("Success", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewPostgreSQLSecretRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("ORDER BY version DESC")).
			WithArgs("EXAMPLE_SECRET").
			WillReturnRows(sqlmock.NewRows(secretRowColumns).AddRow(
				int64(2), "EXAMPLE_SECRET", "n", 2, []byte("blob"), "default",
				now, "admin", now, "admin", nil, nil, nil, nil,
			))

		secret, err := repo.GetLatest(ctx, "EXAMPLE_SECRET")
		require.NoError(t, err)
		assert.Equal(t, int64(2), secret.ID)
		assert.Equal(t, 2, secret.Version)
		assert.Equal(t, []byte("blob"), secret.Encrypted)
		require.NotNil(t, secret.CreatedBy)
		assert.Equal(t, "admin", *secret.CreatedBy)
		assert.Nil(t, secret.LastUsedBy)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewPostgreSQLSecretRepository(db)

		mock.ExpectQuery("SELECT").WithArgs("MISSING").WillReturnRows(sqlmock.NewRows(secretRowColumns))

		_, err := repo.GetLatest(ctx, "MISSING")
		assert.ErrorIs(t, err, secretsDomain.ErrSecretNotFound)
	})

	t.Run("Error_UndefinedTable", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewPostgreSQLSecretRepository(db)

		mock.ExpectQuery("SELECT").WillReturnError(&pq.Error{Code: pqUndefinedTable})

		_, err := repo.GetLatest(ctx, "EXAMPLE_SECRET")
		assert.ErrorIs(t, err, secretsDomain.ErrStoreUnavailable)
	})

	t.Run("Error_Other", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewPostgreSQLSecretRepository(db)

		mock.ExpectQuery("SELECT").WillReturnError(sql.ErrConnDone)

		_, err := repo.GetLatest(ctx, "EXAMPLE_SECRET")
		assert.ErrorIs(t, err, sql.ErrConnDone)
		assert.NotErrorIs(t, err, secretsDomain.ErrStoreUnavailable)
	})
}

func TestPostgreSQLSecretRepository_UpdateNote(t *testing.T) {
	ctx := context.Background()
	at := time.Now().UTC()
	actor := secretsDomain.ActorPtr("admin")

	t.Run("Success", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewPostgreSQLSecretRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE secrets SET note = $1")).
			WithArgs("note", at, actor, int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpdateNote(ctx, 3, "note", actor, at))
	})

	t.Run("Error_NoRow", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewPostgreSQLSecretRepository(db)

		mock.ExpectExec("UPDATE secrets").WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateNote(ctx, 3, "note", actor, at)
		assert.ErrorIs(t, err, secretsDomain.ErrSecretNotFound)
	})
}

func TestPostgreSQLSecretRepository_StampLastUsed(t *testing.T) {
	ctx := context.Background()
	at := time.Now().UTC()

	t.Run("Success_NilActor", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewPostgreSQLSecretRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("SET last_used_at = $1, last_used_by = $2")).
			WithArgs(at, nil, int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.StampLastUsed(ctx, 3, nil, at))
	})

	t.Run("Error_UndefinedTable", func(t *testing.T) {
		db, mock := newSQLMock(t)
		repo := NewPostgreSQLSecretRepository(db)

		mock.ExpectExec("UPDATE secrets").WillReturnError(&pq.Error{Code: pqUndefinedTable})

		err := repo.StampLastUsed(ctx, 3, nil, at)
		assert.ErrorIs(t, err, secretsDomain.ErrStoreUnavailable)
	})
}

func TestPostgreSQLSecretRepository_ListLatest(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	metadata := []string{
		"id", "name", "note", "version", "encryption_key_name",
		"created_at", "created_by", "updated_at", "updated_by",
		"deleted_at", "deleted_by", "last_used_at", "last_used_by",
	}

	db, mock := newSQLMock(t)
	repo := NewPostgreSQLSecretRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("s.name <> ALL($1)")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(metadata).
			AddRow(int64(1), "A", "", 1, "default", now, nil, now, nil, nil, nil, nil, nil).
			AddRow(int64(4), "B", "x", 3, "default", now, "admin", now, "admin", nil, nil, now, "reader"))

	secrets, err := repo.ListLatest(ctx, []string{"OPENAI_API_KEY"})
	require.NoError(t, err)
	require.Len(t, secrets, 2)
	assert.Equal(t, "A", secrets[0].Name)
	assert.Equal(t, 3, secrets[1].Version)
	require.NotNil(t, secrets[1].LastUsedBy)
	assert.Equal(t, "reader", *secrets[1].LastUsedBy)
}
