package service

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ConflictError reports a request that is well formed but rejected by a
// business rule or by referential integrity in the store.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// foreign_key_violation
const fkViolationCode = "23503"

func isFKViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == fkViolationCode
}

// conflictOnFK converts a foreign key violation into a domain conflict
// carrying message. Other errors pass through unchanged.
func conflictOnFK(err error, message string) error {
	if err == nil {
		return nil
	}
	if isFKViolation(err) {
		return &ConflictError{Message: message}
	}
	return err
}
