package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error classes the services care about. Everything else is an
// opaque server error.
const (
	codeUndefinedTable  = "42P01"
	codeUniqueViolation = "23505"
)

// IsUndefinedTable reports whether err means the schema has not been
// migrated yet. Read paths fail open to empty results on this condition;
// write paths surface it as service-unavailable.
func IsUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUndefinedTable
}

// IsUniqueViolation reports a duplicate-key insert. Toggle operations treat
// it as "already present": two concurrent likes converge to liked.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}
