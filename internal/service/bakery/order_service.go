package bakery

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/bakery/internal/domain"
	"github.com/vladislavdragonenkov/bakery/internal/dto"
	"github.com/vladislavdragonenkov/bakery/internal/mapper"
	"github.com/vladislavdragonenkov/bakery/internal/metrics"
)

// OrderService управляет заказами и их связями с клиентами.
type OrderService struct {
	repo   domain.OrderRepository
	mapper mapper.OrderMapper
	notifier
}

// NewOrderService конструирует сервис с зависимостями.
func NewOrderService(repo domain.OrderRepository, events domain.EventPublisher, m *metrics.Metrics, logger *log.Entry) *OrderService {
	return &OrderService{
		repo:     repo,
		notifier: newNotifier(events, m, serviceLogger(logger, "order")),
	}
}

// Create сохраняет заказ и, если во входном DTO есть clientId, записывает связь с клиентом.
// productsId входного DTO игнорируется: связь с товаром при создании не пишется.
func (s *OrderService) Create(ctx context.Context, in dto.OrderDto) (dto.OrderDto, error) {
	order := s.mapper.ToEntity(in)
	order.ID = 0
	if err := s.repo.Save(ctx, &order); err != nil {
		return s.mapper.ToDto(domain.OrderAggregate{Order: order}), fmt.Errorf("create order: %w", err)
	}

	if in.ClientID != nil {
		if err := s.repo.AddClientToOrder(ctx, order.ID, *in.ClientID); err != nil {
			// Строка заказа уже записана: возвращаем её без связи.
			return s.mapper.ToDto(domain.OrderAggregate{Order: order}),
				fmt.Errorf("link client %d to order %d: %w", *in.ClientID, order.ID, err)
		}
	}

	agg, err := s.assemble(ctx, order)
	if err != nil {
		return s.mapper.ToDto(domain.OrderAggregate{Order: order}), err
	}

	out := s.mapper.ToDto(agg)
	s.notify(ctx, domain.ResourceOrder, domain.ChangeCreated, order.ID, out)
	return out, nil
}

// GetByID возвращает (nil, nil), если заказа нет.
func (s *OrderService) GetByID(ctx context.Context, id int64) (*dto.OrderDto, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	if order == nil {
		return nil, nil
	}

	agg, err := s.assemble(ctx, *order)
	if err != nil {
		return nil, err
	}
	out := s.mapper.ToDto(agg)
	return &out, nil
}

// GetAll собирает агрегат для каждого заказа: два дополнительных запроса на заказ.
func (s *OrderService) GetAll(ctx context.Context) ([]dto.OrderDto, error) {
	orders, err := s.repo.FindAll(ctx)
	if err != nil {
		return []dto.OrderDto{}, fmt.Errorf("list orders: %w", err)
	}

	out := make([]dto.OrderDto, 0, len(orders))
	for _, order := range orders {
		agg, err := s.assemble(ctx, order)
		if err != nil {
			return out, err
		}
		out = append(out, s.mapper.ToDto(agg))
	}
	return out, nil
}

// Update перепривязывает клиента заказа. Без clientId во входном DTO
// изменять нечего, и запрос к хранилищу не выполняется.
func (s *OrderService) Update(ctx context.Context, in dto.OrderDto) error {
	order := s.mapper.ToEntity(in)
	if in.ClientID == nil {
		return nil
	}

	if err := s.repo.Update(ctx, order.ID, *in.ClientID); err != nil {
		return fmt.Errorf("update order %d: %w", order.ID, err)
	}
	s.notify(ctx, domain.ResourceOrder, domain.ChangeUpdated, order.ID, in)
	return nil
}

// Delete удаляет заказ и возвращает его агрегат, собранный до удаления.
func (s *OrderService) Delete(ctx context.Context, id int64) (*dto.OrderDto, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find order %d for delete: %w", id, err)
	}
	if order == nil {
		return nil, nil
	}

	agg, err := s.assemble(ctx, *order)
	if err != nil {
		return nil, err
	}
	out := s.mapper.ToDto(agg)

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete order %d: %w", id, err)
	}
	s.notify(ctx, domain.ResourceOrder, domain.ChangeDeleted, id, out)
	return &out, nil
}

// assemble загружает связанных клиентов и товары заказа.
func (s *OrderService) assemble(ctx context.Context, order domain.Order) (domain.OrderAggregate, error) {
	clientIDs, err := s.repo.ClientIDsByOrderID(ctx, order.ID)
	s.metrics.RecordAssociationQuery("client")
	if err != nil {
		return domain.OrderAggregate{}, fmt.Errorf("load clients of order %d: %w", order.ID, err)
	}

	productIDs, err := s.repo.ProductIDsByOrderID(ctx, order.ID)
	s.metrics.RecordAssociationQuery("product")
	if err != nil {
		return domain.OrderAggregate{}, fmt.Errorf("load products of order %d: %w", order.ID, err)
	}

	return domain.OrderAggregate{
		Order:      order,
		ClientIDs:  clientIDs,
		ProductIDs: productIDs,
	}, nil
}
