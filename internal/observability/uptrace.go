package observability

import (
	"context"
	"strings"

	"github.com/riskibarqy/hockey-pbp/internal/config"
	"github.com/riskibarqy/hockey-pbp/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
	"go.opentelemetry.io/otel/attribute"
)

// InitUptrace configures global OpenTelemetry providers for Uptrace. The
// resource carries the reconciler settings that change its output.
func InitUptrace(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	if !cfg.UptraceEnabled {
		logger.Debug("uptrace disabled", "reason", "UPTRACE_ENABLED=false")
		return func(context.Context) error { return nil }, nil
	}

	if strings.TrimSpace(cfg.UptraceDSN) == "" {
		logger.Info("uptrace disabled", "reason", "UPTRACE_DSN empty")
		return func(context.Context) error { return nil }, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithResourceAttributes(resourceAttributes(cfg)...),
		uptrace.WithLoggingEnabled(cfg.UptraceLogsEnabled),
	)

	logger.Info("uptrace enabled",
		"service_name", cfg.ServiceName,
		"service_version", cfg.ServiceVersion,
		"environment", cfg.AppEnv,
		"storage", storageDriver(cfg),
		"logs_enabled", cfg.UptraceLogsEnabled,
	)

	return uptrace.Shutdown, nil
}

func resourceAttributes(cfg config.Config) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("nhl.reference_timezone", cfg.ReferenceTimezone),
		attribute.Bool("reconcile.match_event_type", cfg.ReconcileMatchEventType),
		attribute.Int("batch.max_workers", cfg.BatchMaxWorkers),
		attribute.String("storage.driver", storageDriver(cfg)),
		attribute.Bool("storage.archive", cfg.ArchiveEnabled),
	}
}

func storageDriver(cfg config.Config) string {
	if cfg.DBEnabled {
		return "postgres"
	}
	return "memory"
}
