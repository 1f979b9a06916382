package memory

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/bakery/internal/domain"
)

type productRepositoryInMemory struct {
	mu    sync.RWMutex
	seq   sequence
	ids   []int64
	items map[int64]domain.Product
	// orders получает ON DELETE SET NULL при удалении товара, может быть nil.
	orders *OrderRepository
}

// NewProductRepository возвращает in-memory репозиторий товаров.
func NewProductRepository() domain.ProductRepository {
	return &productRepositoryInMemory{
		items: make(map[int64]domain.Product),
	}
}

// NewLinkedProductRepository возвращает репозиторий товаров, который при удалении
// товара обнуляет ссылки на него в orders.
func NewLinkedProductRepository(orders *OrderRepository) domain.ProductRepository {
	return &productRepositoryInMemory{
		items:  make(map[int64]domain.Product),
		orders: orders,
	}
}

func (r *productRepositoryInMemory) Save(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = r.seq.next()
	r.items[product.ID] = *product
	r.ids = append(r.ids, product.ID)
	return nil
}

func (r *productRepositoryInMemory) FindByID(_ context.Context, id int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &product, nil
}

func (r *productRepositoryInMemory) FindAll(_ context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Product, 0, len(r.ids))
	for _, id := range r.ids {
		result = append(result, r.items[id])
	}
	return result, nil
}

func (r *productRepositoryInMemory) Update(_ context.Context, product domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[product.ID]; ok {
		r.items[product.ID] = product
	}
	return nil
}

func (r *productRepositoryInMemory) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return nil
	}
	delete(r.items, id)
	r.ids = removeID(r.ids, id)
	if r.orders != nil {
		r.orders.clearProduct(id)
	}
	return nil
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
