package observability

import (
	"context"
	"testing"

	"github.com/riskibarqy/hockey-pbp/internal/config"
	"github.com/riskibarqy/hockey-pbp/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestInitUptrace_Disabled(t *testing.T) {
	cfg := config.Config{
		UptraceEnabled: false,
		ServiceName:    "hockey-pbp",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	shutdown, err := InitUptrace(cfg, logging.NewNop())
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestInitUptrace_EnabledWithoutDSNIsNoop(t *testing.T) {
	cfg := config.Config{UptraceEnabled: true, UptraceDSN: "  "}

	shutdown, err := InitUptrace(cfg, nil)
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestInitPyroscope_Disabled(t *testing.T) {
	stop, err := InitPyroscope(config.Config{PyroscopeEnabled: false}, logging.NewNop())
	require.NoError(t, err)
	require.NoError(t, stop())
}

func TestResourceAttributes(t *testing.T) {
	cfg := config.Config{
		ReferenceTimezone:       "America/Chicago",
		ReconcileMatchEventType: true,
		BatchMaxWorkers:         8,
		DBEnabled:               true,
	}

	got := map[attribute.Key]attribute.Value{}
	for _, kv := range resourceAttributes(cfg) {
		got[kv.Key] = kv.Value
	}

	assert.Equal(t, "America/Chicago", got["nhl.reference_timezone"].AsString())
	assert.True(t, got["reconcile.match_event_type"].AsBool())
	assert.Equal(t, int64(8), got["batch.max_workers"].AsInt64())
	assert.Equal(t, "postgres", got["storage.driver"].AsString())
	assert.False(t, got["storage.archive"].AsBool())
}

func TestProfileTags(t *testing.T) {
	tags := profileTags(config.Config{AppEnv: config.EnvProd, ServiceName: "hockey-pbp", BatchMaxWorkers: 4})

	assert.Equal(t, map[string]string{
		"env":         config.EnvProd,
		"service":     "hockey-pbp",
		"storage":     "memory",
		"workers":     "4",
		"match_event": "false",
	}, tags)
}
