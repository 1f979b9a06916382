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

// ClientService управляет клиентами.
type ClientService struct {
	repo   domain.ClientRepository
	mapper mapper.ClientMapper
	notifier
}

// NewClientService конструирует сервис с зависимостями.
func NewClientService(repo domain.ClientRepository, events domain.EventPublisher, m *metrics.Metrics, logger *log.Entry) *ClientService {
	return &ClientService{
		repo:     repo,
		notifier: newNotifier(events, m, serviceLogger(logger, "client")),
	}
}

// Create сохраняет клиента и возвращает его с назначенным ID.
// При ошибке хранилища возвращается DTO без ID вместе с ошибкой.
func (s *ClientService) Create(ctx context.Context, in dto.ClientDto) (dto.ClientDto, error) {
	client := s.mapper.ToEntity(in)
	client.ID = 0
	if err := s.repo.Save(ctx, &client); err != nil {
		return s.mapper.ToDto(client), fmt.Errorf("create client: %w", err)
	}

	out := s.mapper.ToDto(client)
	s.notify(ctx, domain.ResourceClient, domain.ChangeCreated, client.ID, out)
	return out, nil
}

// GetByID возвращает (nil, nil), если клиента нет.
func (s *ClientService) GetByID(ctx context.Context, id int64) (*dto.ClientDto, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get client %d: %w", id, err)
	}
	if client == nil {
		return nil, nil
	}
	out := s.mapper.ToDto(*client)
	return &out, nil
}

// GetAll возвращает всех клиентов в порядке выборки.
func (s *ClientService) GetAll(ctx context.Context) ([]dto.ClientDto, error) {
	clients, err := s.repo.FindAll(ctx)
	if err != nil {
		return []dto.ClientDto{}, fmt.Errorf("list clients: %w", err)
	}
	out := make([]dto.ClientDto, 0, len(clients))
	for _, c := range clients {
		out = append(out, s.mapper.ToDto(c))
	}
	return out, nil
}

// Update перезаписывает клиента без проверки существования.
func (s *ClientService) Update(ctx context.Context, in dto.ClientDto) error {
	client := s.mapper.ToEntity(in)
	if err := s.repo.Update(ctx, client); err != nil {
		return fmt.Errorf("update client %d: %w", client.ID, err)
	}
	s.notify(ctx, domain.ResourceClient, domain.ChangeUpdated, client.ID, in)
	return nil
}

// Delete удаляет клиента и возвращает его последнее состояние или (nil, nil), если клиента нет.
func (s *ClientService) Delete(ctx context.Context, id int64) (*dto.ClientDto, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find client %d for delete: %w", id, err)
	}
	if client == nil {
		return nil, nil
	}
	out := s.mapper.ToDto(*client)

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete client %d: %w", id, err)
	}
	s.notify(ctx, domain.ResourceClient, domain.ChangeDeleted, id, out)
	return &out, nil
}
