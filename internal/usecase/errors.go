package usecase

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var ErrEmptyUpdate = errors.New("at least one field must be provided")

// isDuplicateKeyError reports a unique constraint violation. Translated gorm
// errors carry no constraint name, so they match any constraintName.
func isDuplicateKeyError(err error, constraintName string) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		return pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName))
	}
	return false
}

// isForeignKeyError reports a foreign key violation, matched the same way as isDuplicateKeyError.
func isForeignKeyError(err error, constraintName string) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23503 = foreign_key_violation
		return pgErr.Code == "23503" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName))
	}
	return false
}
