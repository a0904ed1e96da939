package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/hockey-pbp/internal/domain/faceoff"
	"github.com/riskibarqy/hockey-pbp/internal/domain/gamekey"
	"github.com/riskibarqy/hockey-pbp/internal/domain/play"
	"github.com/riskibarqy/hockey-pbp/internal/domain/rawdata"
	"github.com/riskibarqy/hockey-pbp/internal/domain/roster"
	"github.com/riskibarqy/hockey-pbp/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type GamePipelineConfig struct {
	Reconcile ReconcileOptions
	// Persist writes results through the repositories; without it Run only
	// computes.
	Persist bool
}

type GameStats struct {
	FeedPlays          int      `json:"feed_plays"`
	ReportRows         int      `json:"report_rows"`
	UnmappedReportRows int      `json:"unmapped_report_rows"`
	Records            int      `json:"records"`
	Faceoffs           int      `json:"faceoffs"`
	UndefinedZones     int      `json:"undefined_zones"`
	UnresolvedSlots    []string `json:"unresolved_slots,omitempty"`
}

type GameResult struct {
	Key      gamekey.Key       `json:"key"`
	Game     play.Game         `json:"game"`
	Records  []play.Record     `json:"records"`
	Faceoffs []faceoff.Record  `json:"faceoffs"`
	Stats    GameStats         `json:"stats"`
	Roster   []roster.Entry    `json:"-"`
	Payloads []rawdata.Payload `json:"-"`
}

// GamePipelineService runs the full fetch, reconcile and derive chain for
// one game. Any stage failure aborts that game.
type GamePipelineService struct {
	source      GameSource
	playRepo    play.Repository
	faceoffRepo faceoff.Repository
	rawDataRepo rawdata.Repository
	cfg         GamePipelineConfig
	logger      *logging.Logger
}

func NewGamePipelineService(
	source GameSource,
	playRepo play.Repository,
	faceoffRepo faceoff.Repository,
	rawDataRepo rawdata.Repository,
	cfg GamePipelineConfig,
	logger *logging.Logger,
) *GamePipelineService {
	if logger == nil {
		logger = logging.Default()
	}

	return &GamePipelineService{
		source:      source,
		playRepo:    playRepo,
		faceoffRepo: faceoffRepo,
		rawDataRepo: rawDataRepo,
		cfg:         cfg,
		logger:      logger,
	}
}

func (s *GamePipelineService) Run(ctx context.Context, key gamekey.Key) (result GameResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GamePipelineService.Run",
		attribute.String("game.key", key.String()),
	)
	defer func() { endSpan(span, err) }()

	if err := key.Validate(); err != nil {
		return GameResult{}, err
	}
	if s.source == nil {
		return GameResult{}, fmt.Errorf("%w: game source is not configured", ErrDependencyUnavailable)
	}
	if s.cfg.Persist && (s.playRepo == nil || s.faceoffRepo == nil || s.rawDataRepo == nil) {
		return GameResult{}, fmt.Errorf("%w: persistence requested but repositories are not configured", ErrDependencyUnavailable)
	}

	result = GameResult{Key: key}

	feed, payloads, err := s.source.FetchFeed(ctx, key)
	if err != nil {
		return GameResult{}, err
	}
	result.Game = feed.Game
	result.Payloads = append(result.Payloads, payloads...)
	result.Stats.FeedPlays = len(feed.Plays)

	entries, payloads, err := s.source.FetchRoster(ctx, key)
	if err != nil {
		return GameResult{}, err
	}
	result.Roster = entries
	result.Payloads = append(result.Payloads, payloads...)

	report, payloads, err := s.source.FetchReport(ctx, key)
	if err != nil {
		return GameResult{}, err
	}
	result.Payloads = append(result.Payloads, payloads...)
	result.Stats.ReportRows = len(report)
	for _, row := range report {
		if !row.EventType.IsMapped() {
			result.Stats.UnmappedReportRows++
		}
	}
	s.logger.DebugContext(ctx, "game sources fetched",
		"game", key.String(),
		"feed_plays", len(feed.Plays),
		"roster_entries", len(entries),
		"report_rows", len(report),
	)

	report, unresolved := SubstituteRoster(report, entries)
	result.Stats.UnresolvedSlots = unresolved
	if len(unresolved) > 0 {
		s.logger.WarnContext(ctx, "on-ice jerseys missing from roster",
			"game", key.String(),
			"count", len(unresolved),
			"guids", unresolved,
		)
	}

	records, err := Reconcile(feed.Plays, report, key.Year, s.cfg.Reconcile)
	if err != nil {
		return GameResult{}, err
	}
	result.Records = records
	result.Stats.Records = len(records)

	faceoffs, err := DeriveFaceoffs(records)
	if err != nil {
		return GameResult{}, err
	}
	result.Faceoffs = faceoffs
	result.Stats.Faceoffs = len(faceoffs)
	for _, item := range faceoffs {
		if item.Player1Zone == faceoff.ZoneUndefined {
			result.Stats.UndefinedZones++
		}
	}
	if result.Stats.UndefinedZones > 0 {
		s.logger.WarnContext(ctx, "faceoff zone missing from report description",
			"game", key.String(),
			"count", result.Stats.UndefinedZones,
		)
	}

	if s.cfg.Persist {
		if err := s.persist(ctx, result); err != nil {
			return GameResult{}, err
		}
	}

	s.logger.InfoContext(ctx, "game reconciled",
		"game", key.String(),
		"records", result.Stats.Records,
		"faceoffs", result.Stats.Faceoffs,
		"persisted", s.cfg.Persist,
	)
	return result, nil
}

func (s *GamePipelineService) persist(ctx context.Context, result GameResult) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.GamePipelineService.persist")
	defer span.End()

	if len(result.Payloads) > 0 {
		if err := s.rawDataRepo.UpsertMany(ctx, result.Payloads); err != nil {
			return fmt.Errorf("archive raw payloads game=%d: %w", result.Game.ID, err)
		}
	}
	if err := s.playRepo.ReplaceGame(ctx, result.Game, result.Roster, result.Records); err != nil {
		return fmt.Errorf("replace plays game=%d: %w", result.Game.ID, err)
	}
	if err := s.faceoffRepo.ReplaceByGame(ctx, result.Game.ID, result.Faceoffs); err != nil {
		return fmt.Errorf("replace faceoffs game=%d: %w", result.Game.ID, err)
	}
	return nil
}
