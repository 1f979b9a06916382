package memory

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/bakery/internal/domain"
)

// clientRepositoryInMemory простая in-memory реализация ClientRepository.
type clientRepositoryInMemory struct {
	mu    sync.RWMutex
	seq   sequence
	ids   []int64
	items map[int64]domain.Client
}

// NewClientRepository возвращает in-memory репозиторий клиентов для локальной разработки и тестов.
func NewClientRepository() domain.ClientRepository {
	return &clientRepositoryInMemory{
		items: make(map[int64]domain.Client),
	}
}

func (r *clientRepositoryInMemory) Save(_ context.Context, client *domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	client.ID = r.seq.next()
	r.items[client.ID] = *client
	r.ids = append(r.ids, client.ID)
	return nil
}

func (r *clientRepositoryInMemory) FindByID(_ context.Context, id int64) (*domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	client, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &client, nil
}

// FindAll возвращает клиентов в порядке вставки.
func (r *clientRepositoryInMemory) FindAll(_ context.Context) ([]domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Client, 0, len(r.ids))
	for _, id := range r.ids {
		result = append(result, r.items[id])
	}
	return result, nil
}

// Update перезаписывает клиента, только если он существует.
func (r *clientRepositoryInMemory) Update(_ context.Context, client domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[client.ID]; ok {
		r.items[client.ID] = client
	}
	return nil
}

func (r *clientRepositoryInMemory) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return nil
	}
	delete(r.items, id)
	r.ids = removeID(r.ids, id)
	return nil
}

var _ domain.ClientRepository = (*clientRepositoryInMemory)(nil)
