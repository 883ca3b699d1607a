// Package pgerr classifies GORM and PostgreSQL errors for the repositories.
//
// Repositories return business errors (not found, duplicate code) as the
// domain's own errors and everything else as *errs.UnavailableError, so the
// application layer never sees driver types.
package pgerr

import (
	"errors"

	"foodorder/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// IsNotFound reports whether err means no row matched.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicate reports a unique constraint violation, whether or not GORM
// was opened with TranslateError.
func IsDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// ConstraintName returns the violated constraint, or "" when err is not a
// PostgreSQL error.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// Unavailable wraps a store failure. Nil stays nil.
func Unavailable(operation string, err error) error {
	if err == nil {
		return nil
	}
	return errs.NewUnavailableError(operation, err)
}
