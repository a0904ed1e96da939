package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/hockey-pbp/external/nhl"
	"github.com/riskibarqy/hockey-pbp/internal/config"
	"github.com/riskibarqy/hockey-pbp/internal/domain/faceoff"
	"github.com/riskibarqy/hockey-pbp/internal/domain/play"
	"github.com/riskibarqy/hockey-pbp/internal/domain/rawdata"
	"github.com/riskibarqy/hockey-pbp/internal/infrastructure/objectstore"
	"github.com/riskibarqy/hockey-pbp/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/hockey-pbp/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/hockey-pbp/internal/observability"
	"github.com/riskibarqy/hockey-pbp/internal/platform/logging"
	"github.com/riskibarqy/hockey-pbp/internal/platform/resilience"
	"github.com/riskibarqy/hockey-pbp/internal/usecase"
)

// App is the wired reconciler: NHL client, storage and the use case services.
type App struct {
	Config   config.Config
	Logger   *logging.Logger
	Source   *nhl.Client
	Plays    play.Repository
	Pipeline *usecase.GamePipelineService
	Batch    *usecase.BatchService

	db        *sqlx.DB
	shutdowns []func(context.Context) error
}

// New builds the app. With DB_ENABLED=false results are kept in process
// memory only.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	a := &App{Config: cfg, Logger: logger}

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init uptrace: %w", err)
	}
	a.shutdowns = append(a.shutdowns, shutdownTracing)

	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		_ = a.Close(ctx)
		return nil, fmt.Errorf("init pyroscope: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func(context.Context) error { return stopProfiler() })

	location, err := time.LoadLocation(cfg.ReferenceTimezone)
	if err != nil {
		_ = a.Close(ctx)
		return nil, fmt.Errorf("load reference timezone %q: %w", cfg.ReferenceTimezone, err)
	}

	a.Source = nhl.NewClient(nhl.ClientConfig{
		StatsBaseURL:  cfg.NHLStatsBaseURL,
		ReportBaseURL: cfg.NHLReportBaseURL,
		Timeout:       cfg.NHLTimeout,
		Location:      location,
		Logger:        logger.Named("nhl"),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.NHLCircuitEnabled,
			FailureThreshold: cfg.NHLCircuitFailureCount,
			OpenTimeout:      cfg.NHLCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.NHLCircuitHalfOpenMaxReq,
		},
	})

	var (
		playRepo    play.Repository
		faceoffRepo faceoff.Repository
		rawDataRepo rawdata.Repository
	)
	if cfg.DBEnabled {
		db, err := openDB(ctx, cfg)
		if err != nil {
			_ = a.Close(ctx)
			return nil, err
		}
		a.db = db
		a.shutdowns = append(a.shutdowns, func(context.Context) error { return db.Close() })

		playRepo = postgres.NewPlayRepository(db)
		faceoffRepo = postgres.NewFaceoffRepository(db)
		rawDataRepo = postgres.NewRawDataRepository(db)
		logger.Info("storage ready", "driver", "postgres", "db_name", dbNameFromURL(cfg.DBURL))
	} else {
		playRepo = memory.NewPlayRepository()
		faceoffRepo = memory.NewFaceoffRepository()
		rawDataRepo = memory.NewRawDataRepository()
		logger.Debug("storage ready", "driver", "memory")
	}
	if cfg.ArchiveEnabled {
		archive, err := openArchive(ctx, cfg, logger)
		if err != nil {
			_ = a.Close(ctx)
			return nil, err
		}
		rawDataRepo = archive
	}
	a.Plays = playRepo

	a.Pipeline = usecase.NewGamePipelineService(
		a.Source,
		playRepo,
		faceoffRepo,
		rawDataRepo,
		usecase.GamePipelineConfig{
			Reconcile: usecase.ReconcileOptions{MatchEventType: cfg.ReconcileMatchEventType},
			Persist:   true,
		},
		logger.Named("pipeline"),
	)
	a.Batch = usecase.NewBatchService(a.Pipeline, logger.Named("batch"))

	return a, nil
}

func openArchive(ctx context.Context, cfg config.Config, logger *logging.Logger) (*objectstore.RawPayloadArchive, error) {
	client, err := objectstore.NewClient(objectstore.Config{
		Endpoint:  cfg.ArchiveEndpoint,
		AccessKey: cfg.ArchiveAccessKey,
		SecretKey: cfg.ArchiveSecretKey,
		Region:    cfg.ArchiveRegion,
		UseSSL:    cfg.ArchiveUseSSL,
		Timeout:   cfg.NHLTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("init raw payload archive: %w", err)
	}

	archive := objectstore.NewRawPayloadArchive(client, cfg.ArchiveBucket, cfg.ArchiveRegion, logger.Named("archive"))
	if err := archive.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("init raw payload archive: %w", err)
	}

	logger.Info("raw payload archive ready", "endpoint", cfg.ArchiveEndpoint, "bucket", cfg.ArchiveBucket)
	return archive, nil
}

// Persistent reports whether results outlive the process.
func (a *App) Persistent() bool {
	return a.db != nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		if err := a.shutdowns[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.shutdowns = nil

	return errors.Join(errs...)
}
