package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/bakery/internal/domain"
)

const (
	sqlInsertOrder     = `INSERT INTO orders DEFAULT VALUES RETURNING id`
	sqlSelectOrderByID = `SELECT id FROM orders WHERE id = $1`
	sqlSelectOrders    = `SELECT id FROM orders`
	sqlDeleteOrder     = `DELETE FROM orders WHERE id = $1`

	sqlUpdateOrderClient = `UPDATE order_clients SET client_id = $1 WHERE order_id = $2`
	sqlInsertOrderClient = `INSERT INTO order_clients (order_id, client_id) VALUES ($1, $2)`
	sqlSelectClientIDs   = `SELECT client_id FROM order_clients WHERE order_id = $1`
	// NULL в product_id означает "товар не привязан" и в выборку не попадает.
	sqlSelectProductIDs = `SELECT product_id FROM orders WHERE id = $1 AND product_id IS NOT NULL`
)

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{db: store.DB()}
}

func (r *orderRepository) Save(ctx context.Context, order *domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var id int64
	if err := r.db.QueryRowContext(ctx, sqlInsertOrder).Scan(&id); err != nil {
		return wrapWriteError("insert order", err)
	}
	order.ID = id
	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var order domain.Order
	if err := r.db.QueryRowContext(ctx, sqlSelectOrderByID, id).Scan(&order.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select order: %w", err)
	}
	return &order, nil
}

func (r *orderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	ids, err := r.queryIDs(ctx, "list orders", sqlSelectOrders)
	if err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(ids))
	for _, id := range ids {
		orders = append(orders, domain.Order{ID: id})
	}
	return orders, nil
}

// Update перепривязывает клиента: у заказа нет собственных изменяемых колонок,
// поэтому обновляется строка связи. Если связи нет, ничего не происходит.
func (r *orderRepository) Update(ctx context.Context, orderID, clientID int64) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, sqlUpdateOrderClient, clientID, orderID); err != nil {
		return wrapWriteError("update order client", err)
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, sqlDeleteOrder, id); err != nil {
		return wrapWriteError("delete order", err)
	}
	return nil
}

func (r *orderRepository) ClientIDsByOrderID(ctx context.Context, orderID int64) ([]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return r.queryIDs(ctx, "load order clients", sqlSelectClientIDs, orderID)
}

func (r *orderRepository) ProductIDsByOrderID(ctx context.Context, orderID int64) ([]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return r.queryIDs(ctx, "load order products", sqlSelectProductIDs, orderID)
}

func (r *orderRepository) AddClientToOrder(ctx context.Context, orderID, clientID int64) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, sqlInsertOrderClient, orderID, clientID); err != nil {
		return wrapWriteError("insert order client", err)
	}
	return nil
}

// queryIDs выполняет запрос, возвращающий одну колонку BIGINT.
func (r *orderRepository) queryIDs(ctx context.Context, op, query string, args ...any) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: iterate: %w", op, err)
	}

	return ids, nil
}

var _ domain.OrderRepository = (*orderRepository)(nil)
