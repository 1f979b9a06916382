package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/bakery/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/bakery/internal/health"
	"github.com/vladislavdragonenkov/bakery/internal/storage/memory"
	"github.com/vladislavdragonenkov/bakery/internal/storage/postgres"
)

// storageDependencies репозитории выбранного драйвера и ресурсы, которые нужно освободить.
type storageDependencies struct {
	clients  domain.ClientRepository
	products domain.ProductRepository
	orders   domain.OrderRepository

	// storageChecker nil для памяти: проверять нечего.
	storageChecker healthcheck.Checker
	closeFn        func() error
}

func initRuntimeDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*storageDependencies, error) {
	switch cfg.StorageDriver {
	case StorageDriverMemory:
		logger.Info("using in-memory storage")
		orders := memory.NewOrderRepository()
		return &storageDependencies{
			clients:  memory.NewClientRepository(),
			products: memory.NewLinkedProductRepository(orders),
			orders:   orders,
			closeFn:  func() error { return nil },
		}, nil
	case StorageDriverPostgres:
		return initPostgres(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func initPostgres(ctx context.Context, cfg Config, logger *log.Entry) (*storageDependencies, error) {
	if cfg.PostgresDSN == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}

	store, err := postgres.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	if cfg.PostgresAutoSchema {
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		logger.Info("postgres schema is up to date")
	}

	logger.Info("using postgres storage")
	return &storageDependencies{
		clients:        postgres.NewClientRepository(store),
		products:       postgres.NewProductRepository(store),
		orders:         postgres.NewOrderRepository(store),
		storageChecker: healthcheck.NewPingChecker("postgres", 0, store.Ping),
		closeFn:        store.Close,
	}, nil
}

// ApplySchema открывает подключение, применяет встроенную схему и закрывает пул.
func ApplySchema(ctx context.Context, dsn string) error {
	if dsn == "" {
		return fmt.Errorf("postgres dsn is required")
	}
	store, err := postgres.Open(ctx, dsn)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.EnsureSchema(ctx)
}
