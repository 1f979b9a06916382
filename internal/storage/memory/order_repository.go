package memory

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/bakery/internal/domain"
)

type orderClientLink struct {
	orderID  int64
	clientID int64
}

// OrderRepository in-memory реализация domain.OrderRepository.
// Повторяет форму схемы PostgreSQL: один необязательный product_id на заказ
// и таблица связей с клиентами без уникального ключа.
type OrderRepository struct {
	mu       sync.RWMutex
	seq      sequence
	ids      []int64
	products map[int64]*int64
	links    []orderClientLink
}

// NewOrderRepository возвращает in-memory репозиторий заказов.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		products: make(map[int64]*int64),
	}
}

func (r *OrderRepository) Save(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order.ID = r.seq.next()
	r.ids = append(r.ids, order.ID)
	r.products[order.ID] = nil
	return nil
}

func (r *OrderRepository) FindByID(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.products[id]; !ok {
		return nil, nil
	}
	return &domain.Order{ID: id}, nil
}

func (r *OrderRepository) FindAll(_ context.Context) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Order, 0, len(r.ids))
	for _, id := range r.ids {
		result = append(result, domain.Order{ID: id})
	}
	return result, nil
}

// Update перепривязывает все связи заказа на clientID.
func (r *OrderRepository) Update(_ context.Context, orderID, clientID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.links {
		if r.links[i].orderID == orderID {
			r.links[i].clientID = clientID
		}
	}
	return nil
}

// Delete удаляет заказ вместе со связями, как ON DELETE CASCADE.
func (r *OrderRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return nil
	}
	delete(r.products, id)
	r.ids = removeID(r.ids, id)

	kept := r.links[:0]
	for _, l := range r.links {
		if l.orderID != id {
			kept = append(kept, l)
		}
	}
	r.links = kept
	return nil
}

func (r *OrderRepository) ClientIDsByOrderID(_ context.Context, orderID int64) ([]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, 0)
	for _, l := range r.links {
		if l.orderID == orderID {
			ids = append(ids, l.clientID)
		}
	}
	return ids, nil
}

func (r *OrderRepository) ProductIDsByOrderID(_ context.Context, orderID int64) ([]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, 0, 1)
	if productID := r.products[orderID]; productID != nil {
		ids = append(ids, *productID)
	}
	return ids, nil
}

// AddClientToOrder добавляет связь без проверки уникальности.
func (r *OrderRepository) AddClientToOrder(_ context.Context, orderID, clientID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.links = append(r.links, orderClientLink{orderID: orderID, clientID: clientID})
	return nil
}

// SetProduct заполняет колонку product_id заказа. API такой записи не делает,
// метод нужен для подготовки данных.
func (r *OrderRepository) SetProduct(orderID, productID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[orderID]; ok {
		r.products[orderID] = &productID
	}
}

// clearProduct обнуляет product_id у заказов, ссылающихся на удалённый товар.
func (r *OrderRepository) clearProduct(productID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for orderID, ref := range r.products {
		if ref != nil && *ref == productID {
			r.products[orderID] = nil
		}
	}
}

var _ domain.OrderRepository = (*OrderRepository)(nil)
