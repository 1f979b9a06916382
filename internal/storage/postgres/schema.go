package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/vladislavdragonenkov/bakery/internal/domain"
)

// schemaLockKey сериализует одновременный запуск EnsureSchema из нескольких реплик.
const schemaLockKey = int64(20240517)

//go:embed sql/schema.sql
var schemaSQL string

// EnsureSchema идемпотентно создаёт таблицы clients, products, orders и order_clients.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if s == nil || s.db == nil {
		return domain.ErrStoreUnavailable
	}

	body := strings.TrimSpace(schemaSQL)
	if body == "" {
		return fmt.Errorf("embedded schema is empty")
	}

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire db connection: %w", err)
	}
	defer conn.Close()

	lockCtx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
	defer cancel()
	if _, err := conn.ExecContext(lockCtx, "SELECT pg_advisory_lock($1)", schemaLockKey); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}
	defer func() {
		_, _ = conn.ExecContext(context.Background(), "SELECT pg_advisory_unlock($1)", schemaLockKey)
	}()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	// Без аргументов pgx использует simple protocol, что допускает несколько выражений.
	if _, err := tx.ExecContext(ctx, body); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("apply schema: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}

	return nil
}
