package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// unique_violation: número de documento o ítem repetido bajo índice único.
const pgUniqueViolation = "23505"

// isUniqueViolation reconoce la violación de un índice único para que el
// repositorio la traduzca a domain.ErrDuplicate.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
