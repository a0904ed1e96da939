package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/hockey-pbp/internal/domain/gamekey"
	"github.com/riskibarqy/hockey-pbp/internal/platform/logging"
	"github.com/sourcegraph/conc/panics"
	"go.opentelemetry.io/otel/attribute"
)

const (
	batchStatusSuccess = "success"
	batchStatusFailed  = "failed"

	defaultBatchWorkers = 4
	maxBatchWorkers     = 32
)

type BatchInput struct {
	Year       int            `validate:"gte=1917"`
	Season     gamekey.Season `validate:"required"`
	From       int            `validate:"gte=0,lte=1313"`
	To         int            `validate:"gte=0,lte=1313,gtefield=From"`
	MaxWorkers int            `validate:"gte=0"`
}

type BatchResult struct {
	RunID        string            `json:"run_id"`
	Year         int               `json:"year"`
	Season       gamekey.Season    `json:"season"`
	GameCount    int               `json:"game_count"`
	SuccessCount int               `json:"success_count"`
	FailedCount  int               `json:"failed_count"`
	WorkerCount  int               `json:"worker_count"`
	Games        []BatchGameResult `json:"games"`
}

type BatchGameResult struct {
	GameNumber      int    `json:"game_number"`
	GameID          int64  `json:"game_id,omitempty"`
	Status          string `json:"status"`
	Records         int    `json:"records"`
	Faceoffs        int    `json:"faceoffs"`
	UnresolvedSlots int    `json:"unresolved_slots"`
	DurationMs      int64  `json:"duration_ms"`
	Message         string `json:"message,omitempty"`
}

type gameRunner interface {
	Run(ctx context.Context, key gamekey.Key) (GameResult, error)
}

// BatchService runs independent game pipelines over a range of game numbers.
// A failing or panicking game is recorded and does not stop the others.
type BatchService struct {
	pipeline gameRunner
	validate *validator.Validate
	logger   *logging.Logger
}

func NewBatchService(pipeline gameRunner, logger *logging.Logger) *BatchService {
	if logger == nil {
		logger = logging.Default()
	}
	return &BatchService{
		pipeline: pipeline,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

func (s *BatchService) Run(ctx context.Context, input BatchInput) (BatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BatchService.Run")
	defer span.End()

	if err := s.validate.StructCtx(ctx, input); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return BatchResult{}, fmt.Errorf("%w: %s failed %s (value %v)", ErrInvalidInput, fe.Field(), fe.Tag(), fe.Value())
		}
		return BatchResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	keys := make([]gamekey.Key, 0, input.To-input.From+1)
	for n := input.From; n <= input.To; n++ {
		key := gamekey.Key{Year: input.Year, Season: input.Season, Number: n}
		if err := key.Validate(); err != nil {
			return BatchResult{}, err
		}
		keys = append(keys, key)
	}

	workerCount := normalizeBatchWorkerCount(input.MaxWorkers, len(keys))
	runID := uuid.NewString()
	logger := s.logger.With("batch_run", runID)
	span.SetAttributes(attribute.String("batch.run_id", runID), attribute.Int("batch.games", len(keys)))

	result := BatchResult{
		RunID:       runID,
		Year:        input.Year,
		Season:      input.Season,
		GameCount:   len(keys),
		WorkerCount: workerCount,
		Games:       make([]BatchGameResult, 0, len(keys)),
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return BatchResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan BatchGameResult, len(keys))
	var successCount atomic.Int32
	var failedCount atomic.Int32

	var workers sync.WaitGroup
	for _, key := range keys {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			row := s.runGame(ctx, key, logger)
			if row.Status == batchStatusSuccess {
				successCount.Add(1)
			} else {
				failedCount.Add(1)
			}
			results <- row
		}); err != nil {
			workers.Done()
			return BatchResult{}, fmt.Errorf("submit game to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Games = append(result.Games, row)
	}
	sort.SliceStable(result.Games, func(i, j int) bool {
		return result.Games[i].GameNumber < result.Games[j].GameNumber
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	logger.InfoContext(ctx, "batch finished",
		"games", result.GameCount,
		"succeeded", result.SuccessCount,
		"failed", result.FailedCount,
		"workers", workerCount,
	)
	return result, nil
}

func (s *BatchService) runGame(ctx context.Context, key gamekey.Key, logger *logging.Logger) BatchGameResult {
	start := time.Now()
	row := BatchGameResult{GameNumber: key.Number, Status: batchStatusFailed}

	var (
		game GameResult
		err  error
		pc   panics.Catcher
	)
	pc.Try(func() {
		game, err = s.pipeline.Run(ctx, key)
	})
	if recovered := pc.Recovered(); recovered != nil {
		err = recovered.AsError()
	}
	row.DurationMs = time.Since(start).Milliseconds()

	if err != nil {
		row.Message = err.Error()
		logger.ErrorContext(ctx, "game pipeline failed", "game", key.String(), "error", err)
		return row
	}

	row.Status = batchStatusSuccess
	row.GameID = game.Game.ID
	row.Records = game.Stats.Records
	row.Faceoffs = game.Stats.Faceoffs
	row.UnresolvedSlots = len(game.Stats.UnresolvedSlots)
	return row
}

func normalizeBatchWorkerCount(requested, tasks int) int {
	workers := requested
	if workers <= 0 {
		workers = defaultBatchWorkers
	}
	workers = min(workers, maxBatchWorkers)
	if tasks > 0 {
		workers = min(workers, tasks)
	}
	return max(workers, 1)
}
