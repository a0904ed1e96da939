package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/hockey-pbp/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("DB_ENABLED", "")
	t.Setenv("UPTRACE_ENABLED", "")
	t.Setenv("PYROSCOPE_ENABLED", "")
	t.Setenv("APP_LOG_LEVEL", "")
	t.Setenv("NHL_REFERENCE_TIMEZONE", "")
	t.Setenv("BATCH_MAX_WORKERS", "")
	t.Setenv("ARCHIVE_ENABLED", "")
	t.Setenv("ARCHIVE_BUCKET", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EnvDev, cfg.AppEnv)
	assert.Equal(t, "hockey-pbp", cfg.ServiceName)
	assert.Equal(t, logging.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 20*time.Second, cfg.NHLTimeout)
	assert.True(t, cfg.NHLCircuitEnabled)
	assert.Equal(t, 3, cfg.NHLCircuitFailureCount)
	assert.Equal(t, "America/Chicago", cfg.ReferenceTimezone)
	assert.False(t, cfg.ReconcileMatchEventType)
	assert.Equal(t, 4, cfg.BatchMaxWorkers)
	assert.False(t, cfg.DBEnabled)
	assert.False(t, cfg.ArchiveEnabled)
	assert.Equal(t, "nhl-raw", cfg.ArchiveBucket)
}

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	_, err := Load()
	require.Error(t, err)
}

func TestLoad_DBRequiresURLWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("DB_ENABLED", "true")
	t.Setenv("DB_URL", "")

	_, err := Load()
	require.ErrorContains(t, err, "DB_URL is required")
}

func TestLoad_ArchiveRequiresEndpointWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("DB_ENABLED", "false")
	t.Setenv("ARCHIVE_ENABLED", "true")
	t.Setenv("ARCHIVE_ENDPOINT", "")

	_, err := Load()
	require.ErrorContains(t, err, "ARCHIVE_ENDPOINT is required")

	t.Setenv("ARCHIVE_ENDPOINT", "localhost:9000")
	t.Setenv("ARCHIVE_USE_SSL", "true")
	t.Setenv("ARCHIVE_BUCKET", "pbp-raw")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.ArchiveUseSSL)
	assert.Equal(t, "pbp-raw", cfg.ArchiveBucket)
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	_, err := Load()
	require.ErrorContains(t, err, "UPTRACE_DSN is required")
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `foo=bar, uptrace-dsn="https://token@api.uptrace.dev"`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://token@api.uptrace.dev", cfg.UptraceDSN)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{key: "NHL_TIMEOUT", value: "soon"},
		{key: "NHL_TIMEOUT", value: "0s"},
		{key: "NHL_CIRCUIT_FAILURE_COUNT", value: "0"},
		{key: "NHL_CIRCUIT_OPEN_TIMEOUT", value: "-1s"},
		{key: "NHL_REFERENCE_TIMEZONE", value: "Mars/Olympus"},
		{key: "RECONCILE_MATCH_EVENT_TYPE", value: "maybe"},
		{key: "BATCH_MAX_WORKERS", value: "0"},
		{key: "PYROSCOPE_UPLOAD_RATE", value: "fast"},
	}

	for _, tc := range tests {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.key)
		})
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("APP_LOG_LEVEL", "debug")
	t.Setenv("NHL_STATS_BASE_URL", " http://localhost:9000/api/v1 ")
	t.Setenv("NHL_CIRCUIT_ENABLED", "false")
	t.Setenv("RECONCILE_MATCH_EVENT_TYPE", "true")
	t.Setenv("BATCH_MAX_WORKERS", "8")
	t.Setenv("DB_ENABLED", "true")
	t.Setenv("DB_URL", "postgres://localhost/nhl")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EnvProd, cfg.AppEnv)
	assert.Equal(t, logging.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "http://localhost:9000/api/v1", cfg.NHLStatsBaseURL)
	assert.False(t, cfg.NHLCircuitEnabled)
	assert.True(t, cfg.ReconcileMatchEventType)
	assert.Equal(t, 8, cfg.BatchMaxWorkers)
	assert.True(t, cfg.DBEnabled)
	assert.Equal(t, "postgres://localhost/nhl", cfg.DBURL)
}
