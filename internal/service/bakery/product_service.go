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

// ProductService управляет товарами.
type ProductService struct {
	repo   domain.ProductRepository
	mapper mapper.ProductMapper
	notifier
}

// NewProductService конструирует сервис с зависимостями.
func NewProductService(repo domain.ProductRepository, events domain.EventPublisher, m *metrics.Metrics, logger *log.Entry) *ProductService {
	return &ProductService{
		repo:     repo,
		notifier: newNotifier(events, m, serviceLogger(logger, "product")),
	}
}

func (s *ProductService) Create(ctx context.Context, in dto.ProductDto) (dto.ProductDto, error) {
	product := s.mapper.ToEntity(in)
	product.ID = 0
	if err := s.repo.Save(ctx, &product); err != nil {
		return s.mapper.ToDto(product), fmt.Errorf("create product: %w", err)
	}

	out := s.mapper.ToDto(product)
	s.notify(ctx, domain.ResourceProduct, domain.ChangeCreated, product.ID, out)
	return out, nil
}

func (s *ProductService) GetByID(ctx context.Context, id int64) (*dto.ProductDto, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	if product == nil {
		return nil, nil
	}
	out := s.mapper.ToDto(*product)
	return &out, nil
}

func (s *ProductService) GetAll(ctx context.Context) ([]dto.ProductDto, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return []dto.ProductDto{}, fmt.Errorf("list products: %w", err)
	}
	out := make([]dto.ProductDto, 0, len(products))
	for _, p := range products {
		out = append(out, s.mapper.ToDto(p))
	}
	return out, nil
}

func (s *ProductService) Update(ctx context.Context, in dto.ProductDto) error {
	product := s.mapper.ToEntity(in)
	if err := s.repo.Update(ctx, product); err != nil {
		return fmt.Errorf("update product %d: %w", product.ID, err)
	}
	s.notify(ctx, domain.ResourceProduct, domain.ChangeUpdated, product.ID, in)
	return nil
}

func (s *ProductService) Delete(ctx context.Context, id int64) (*dto.ProductDto, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find product %d for delete: %w", id, err)
	}
	if product == nil {
		return nil, nil
	}
	out := s.mapper.ToDto(*product)

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete product %d: %w", id, err)
	}
	s.notify(ctx, domain.ResourceProduct, domain.ChangeDeleted, id, out)
	return &out, nil
}
