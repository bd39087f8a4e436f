package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return isPgCode(err, "23505") // unique_violation
}

// isForeignKeyViolation verifica si un error es una violación de llave
// foránea (23503), típicamente un venue_id que ya no existe.
func isForeignKeyViolation(err error) bool {
	return isPgCode(err, "23503") // foreign_key_violation
}

func isPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return strings.Contains(err.Error(), code)
}
