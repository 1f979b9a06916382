package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vladislavdragonenkov/bakery/internal/domain"
)

const pgCodeForeignKeyViolation = "23503"

func isForeignKeyViolation(err error) bool {
	return hasPgCode(err, pgCodeForeignKeyViolation)
}

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}

// wrapWriteError оборачивает ошибку записи, выделяя нарушение внешнего ключа.
func wrapWriteError(op string, err error) error {
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrReferenceNotFound, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
