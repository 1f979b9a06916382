package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/bakery/internal/domain"
)

const (
	sqlInsertProduct     = `INSERT INTO products (title, price) VALUES ($1, $2) RETURNING id`
	sqlSelectProductByID = `SELECT id, title, price FROM products WHERE id = $1`
	sqlSelectProducts    = `SELECT id, title, price FROM products`
	sqlUpdateProduct     = `UPDATE products SET title = $1, price = $2 WHERE id = $3`
	sqlDeleteProduct     = `DELETE FROM products WHERE id = $1`
)

type productRepository struct {
	db *sql.DB
}

// NewProductRepository создаёт PostgreSQL-реализацию ProductRepository.
func NewProductRepository(store *Store) domain.ProductRepository {
	return &productRepository{db: store.DB()}
}

func (r *productRepository) Save(ctx context.Context, product *domain.Product) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var id int64
	if err := r.db.QueryRowContext(ctx, sqlInsertProduct, product.Title, product.Price).Scan(&id); err != nil {
		return wrapWriteError("insert product", err)
	}
	product.ID = id
	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var product domain.Product
	err := r.db.QueryRowContext(ctx, sqlSelectProductByID, id).Scan(&product.ID, &product.Title, &product.Price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select product: %w", err)
	}
	return &product, nil
}

func (r *productRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, sqlSelectProducts)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(&product.ID, &product.Title, &product.Price); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}

func (r *productRepository) Update(ctx context.Context, product domain.Product) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, sqlUpdateProduct, product.Title, product.Price, product.ID); err != nil {
		return wrapWriteError("update product", err)
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, sqlDeleteProduct, id); err != nil {
		return wrapWriteError("delete product", err)
	}
	return nil
}

var _ domain.ProductRepository = (*productRepository)(nil)
