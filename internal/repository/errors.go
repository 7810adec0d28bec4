package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE for foreign_key_violation.
const foreignKeyViolation = "23503"

// isForeignKeyViolation reports whether err is a foreign key failure from either
// the PostgreSQL or the sqlite driver.
func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == foreignKeyViolation
	}
	msg := err.Error()
	return strings.Contains(msg, foreignKeyViolation) ||
		strings.Contains(msg, "FOREIGN KEY constraint failed")
}
