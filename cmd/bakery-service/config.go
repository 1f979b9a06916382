package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/vladislavdragonenkov/bakery/internal/app"
)

const (
	envHTTPAddr           = "BAKERY_HTTP_ADDR"
	envMetricsAddr        = "BAKERY_METRICS_ADDR"
	envStorageDriver      = "BAKERY_STORAGE_DRIVER"
	envPostgresDSN        = "BAKERY_POSTGRES_DSN"
	envPostgresAutoSchema = "BAKERY_POSTGRES_AUTO_SCHEMA"
	envKafkaBrokers       = "BAKERY_KAFKA_BROKERS"
	envStrictErrors       = "BAKERY_STRICT_ERRORS"
	envShutdownTimeout    = "BAKERY_SHUTDOWN_TIMEOUT"
	envLogLevel           = "BAKERY_LOG_LEVEL"
)

type envLookup func(key string) (string, bool)

// readConfigFromEnv накладывает переменные окружения на DefaultConfig.
// Некорректные значения не прерывают запуск: остаётся значение по умолчанию и добавляется предупреждение.
func readConfigFromEnv(lookup envLookup) (app.Config, []string) {
	cfg := app.DefaultConfig()
	var warnings []string

	if v, ok := lookupTrimmed(lookup, envHTTPAddr); ok {
		cfg.HTTPAddr = v
	}
	if v, ok := lookup(envMetricsAddr); ok {
		// Пустое значение отключает сервер метрик.
		cfg.MetricsAddr = strings.TrimSpace(v)
	}
	if v, ok := lookupTrimmed(lookup, envStorageDriver); ok {
		cfg.StorageDriver = app.StorageDriver(strings.ToLower(v))
	}
	if v, ok := lookupTrimmed(lookup, envPostgresDSN); ok {
		cfg.PostgresDSN = v
	}
	if v, ok := lookupTrimmed(lookup, envPostgresAutoSchema); ok {
		parsed, err := parseBool(v)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", envPostgresAutoSchema, err))
		} else {
			cfg.PostgresAutoSchema = parsed
		}
	}
	if v, ok := lookupTrimmed(lookup, envKafkaBrokers); ok {
		cfg.KafkaBrokers = v
	}
	if v, ok := lookupTrimmed(lookup, envStrictErrors); ok {
		parsed, err := parseBool(v)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", envStrictErrors, err))
		} else {
			cfg.StrictErrors = parsed
		}
	}
	if v, ok := lookupTrimmed(lookup, envShutdownTimeout); ok {
		parsed, err := parseDuration(v, func(d time.Duration) bool { return d > 0 }, "must be > 0")
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", envShutdownTimeout, err))
		} else {
			cfg.ShutdownTimeout = parsed
		}
	}

	return cfg, warnings
}

func lookupTrimmed(lookup envLookup, key string) (string, bool) {
	v, ok := lookup(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "y", "on":
		return true, nil
	case "0", "false", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", raw)
	}
}

func parseDuration(raw string, valid func(time.Duration) bool, rule string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	if !valid(d) {
		return 0, fmt.Errorf("duration %s %s", d, rule)
	}
	return d, nil
}
