package repository

import (
	"database/sql"

	apperrors "github.com/allisson/secretkeeper/internal/errors"
	secretsDomain "github.com/allisson/secretkeeper/internal/secrets/domain"
)

// requireAffected turns an update that matched no row into ErrSecretNotFound.
func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return secretsDomain.ErrSecretNotFound
	}
	return nil
}
