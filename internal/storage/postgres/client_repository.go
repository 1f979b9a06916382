package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/bakery/internal/domain"
)

const (
	sqlInsertClient     = `INSERT INTO clients (name, surname, phone) VALUES ($1, $2, $3) RETURNING id`
	sqlSelectClientByID = `SELECT id, name, surname, phone FROM clients WHERE id = $1`
	sqlSelectClients    = `SELECT id, name, surname, phone FROM clients`
	sqlUpdateClient     = `UPDATE clients SET name = $1, surname = $2, phone = $3 WHERE id = $4`
	sqlDeleteClient     = `DELETE FROM clients WHERE id = $1`
)

type clientRepository struct {
	db *sql.DB
}

// NewClientRepository создаёт PostgreSQL-реализацию ClientRepository.
func NewClientRepository(store *Store) domain.ClientRepository {
	return &clientRepository{db: store.DB()}
}

func (r *clientRepository) Save(ctx context.Context, client *domain.Client) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var id int64
	if err := r.db.QueryRowContext(ctx, sqlInsertClient, client.Name, client.Surname, client.Phone).Scan(&id); err != nil {
		return wrapWriteError("insert client", err)
	}
	client.ID = id
	return nil
}

func (r *clientRepository) FindByID(ctx context.Context, id int64) (*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var client domain.Client
	err := r.db.QueryRowContext(ctx, sqlSelectClientByID, id).Scan(
		&client.ID, &client.Name, &client.Surname, &client.Phone,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select client: %w", err)
	}
	return &client, nil
}

func (r *clientRepository) FindAll(ctx context.Context) ([]domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, sqlSelectClients)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	clients := make([]domain.Client, 0)
	for rows.Next() {
		var client domain.Client
		if err := rows.Scan(&client.ID, &client.Name, &client.Surname, &client.Phone); err != nil {
			return nil, fmt.Errorf("scan client row: %w", err)
		}
		clients = append(clients, client)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate client rows: %w", err)
	}

	return clients, nil
}

func (r *clientRepository) Update(ctx context.Context, client domain.Client) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, sqlUpdateClient, client.Name, client.Surname, client.Phone, client.ID); err != nil {
		return wrapWriteError("update client", err)
	}
	return nil
}

func (r *clientRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, sqlDeleteClient, id); err != nil {
		return wrapWriteError("delete client", err)
	}
	return nil
}

var _ domain.ClientRepository = (*clientRepository)(nil)
