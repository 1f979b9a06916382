package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vladislavdragonenkov/bakery/internal/app"
	"github.com/vladislavdragonenkov/bakery/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Запустить HTTP API (команда по умолчанию)",
	RunE:  runServe,
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Применить встроенную схему к базе из BAKERY_POSTGRES_DSN",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := loadConfig()
		if err := app.ApplySchema(cmd.Context(), cfg.PostgresDSN); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
		log.Info("схема применена")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Показать версию сборки",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
	},
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"http_addr":      cfg.HTTPAddr,
		"metrics_addr":   cfg.MetricsAddr,
		"storage_driver": cfg.StorageDriver,
		"strict_errors":  cfg.StrictErrors,
		"kafka_enabled":  cfg.KafkaBrokers != "",
	}).Info("запускаем bakery-service")

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("приложение завершилось с ошибкой: %w", err)
	}

	log.Info("bakery-service остановлен")
	return nil
}

// loadConfig настраивает логгер и читает конфигурацию из окружения процесса.
func loadConfig() app.Config {
	setupLogger(os.Getenv(envLogLevel))

	cfg, warnings := readConfigFromEnv(os.LookupEnv)
	for _, w := range warnings {
		log.Warn(w)
	}
	return cfg
}
