// Package app собирает зависимости сервиса и управляет жизненным циклом HTTP-серверов.
package app

import (
	"context"
	"errors"
	"net"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/bakery/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/bakery/internal/health"
	"github.com/vladislavdragonenkov/bakery/internal/metrics"
	httpsvc "github.com/vladislavdragonenkov/bakery/internal/service/http"
	"github.com/vladislavdragonenkov/bakery/internal/version"
)

// Run поднимает хранилище, сервисы и оба HTTP-сервера и блокируется до отмены ctx
// или падения API-сервера.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	if err := cfg.Validate(); err != nil {
		return err
	}

	storage, err := initRuntimeDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := storage.closeFn(); closeErr != nil {
			logger.WithError(closeErr).Warn("failed to close storage")
		}
	}()

	var events domain.EventPublisher = domain.NoopPublisher{}
	producer, err := initKafkaProducer(cfg.KafkaBrokers, logger)
	if err == nil && producer != nil {
		events = producer
	}
	defer closeKafka(producer, logger)

	m := metrics.New()
	router := httpsvc.NewRouter(newServices(storage, events, m, logger), httpsvc.Options{
		StrictErrors: cfg.StrictErrors,
		Metrics:      m,
		Logger:       logger.WithField("layer", "http"),
	})

	healthHandler := healthcheck.NewHandler(version.GetVersion(), string(cfg.StorageDriver))
	if storage.storageChecker != nil {
		healthHandler.RegisterChecker("postgres", storage.storageChecker)
	}

	var metricsSrv *http.Server
	if cfg.MetricsAddr != "" {
		metricsSrv = startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)
	}

	lis, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		shutdownHTTP(metricsSrv, cfg.ShutdownTimeout, logger)
		return err
	}
	apiSrv, errCh := serveAPI(lis, router, cfg, logger)

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем HTTP сервер")
		shutdownHTTP(apiSrv, cfg.ShutdownTimeout, logger)
		shutdownHTTP(metricsSrv, cfg.ShutdownTimeout, logger)
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(metricsSrv, cfg.ShutdownTimeout, logger)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
