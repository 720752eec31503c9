package repository

import (
	"database/sql"

	"schoolplanner/internal/apperror"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// notFound maps sql.ErrNoRows onto the shared taxonomy and wraps anything else.
func notFound(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperror.ErrNotFound
	}
	return errors.Wrap(err, msg)
}
