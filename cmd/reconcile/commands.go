package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/hockey-pbp/internal/app"
	"github.com/riskibarqy/hockey-pbp/internal/config"
	"github.com/riskibarqy/hockey-pbp/internal/domain/gamekey"
	"github.com/riskibarqy/hockey-pbp/internal/platform/logging"
	"github.com/riskibarqy/hockey-pbp/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

const (
	viewAll      = "all"
	viewRecords  = "records"
	viewFaceoffs = "faceoffs"
	viewStats    = "stats"
)

type rootOptions struct {
	envFile  string
	logLevel string
	output   string
}

type gameOptions struct {
	year   int
	season string
	number int
	view   string
}

type batchOptions struct {
	year    int
	season  string
	from    int
	to      int
	workers int
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "reconcile",
		Short:         "Reconcile NHL play-by-play from the JSON feed and the HTML report",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before reading configuration")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "overrides APP_LOG_LEVEL (debug, info, warn, error)")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", outputJSON, "output format: json or yaml")
	root.PersistentPreRunE = func(*cobra.Command, []string) error {
		switch opts.output {
		case outputJSON, outputYAML:
			return nil
		default:
			return fmt.Errorf("%w: unsupported output format %q", usecase.ErrInvalidInput, opts.output)
		}
	}

	root.AddCommand(
		newGameCmd(opts),
		newBatchCmd(opts),
		newPlaysCmd(opts),
	)
	return root
}

func newGameCmd(root *rootOptions) *cobra.Command {
	opts := &gameOptions{}

	cmd := &cobra.Command{
		Use:   "game",
		Short: "Fetch, reconcile and store one game",
		Example: `  reconcile game --year 2018 --season regular --number 1
  reconcile game --year 2019 --season post --number 111 --view faceoffs`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch opts.view {
			case viewAll, viewRecords, viewFaceoffs, viewStats:
			default:
				return fmt.Errorf("%w: unsupported view %q", usecase.ErrInvalidInput, opts.view)
			}

			season, err := gamekey.ParseSeason(opts.season)
			if err != nil {
				return err
			}
			key := gamekey.Key{Year: opts.year, Season: season, Number: opts.number}

			return withApp(cmd, root, func(ctx context.Context, a *app.App) error {
				result, err := a.Pipeline.Run(ctx, key)
				if err != nil {
					return fmt.Errorf("game %s: %w", key, err)
				}

				switch opts.view {
				case viewRecords:
					return writeOutput(cmd.OutOrStdout(), root.output, result.Records)
				case viewFaceoffs:
					return writeOutput(cmd.OutOrStdout(), root.output, result.Faceoffs)
				case viewStats:
					return writeOutput(cmd.OutOrStdout(), root.output, result.Stats)
				default:
					return writeOutput(cmd.OutOrStdout(), root.output, result)
				}
			})
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.year, "year", 0, "first calendar year of the season, e.g. 2018 for 2018-19")
	flags.StringVar(&opts.season, "season", string(gamekey.SeasonRegular), "pre, regular, post or all-star")
	flags.IntVar(&opts.number, "number", 0, "game number within the season (0-1313)")
	flags.StringVar(&opts.view, "view", viewAll, "output: all, records, faceoffs or stats")
	_ = cmd.MarkFlagRequired("year")
	_ = cmd.MarkFlagRequired("number")

	return cmd
}

func newBatchCmd(root *rootOptions) *cobra.Command {
	opts := &batchOptions{}

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Reconcile a range of games concurrently",
		RunE: func(cmd *cobra.Command, _ []string) error {
			season, err := gamekey.ParseSeason(opts.season)
			if err != nil {
				return err
			}

			return withApp(cmd, root, func(ctx context.Context, a *app.App) error {
				workers := opts.workers
				if workers <= 0 {
					workers = a.Config.BatchMaxWorkers
				}

				result, err := a.Batch.Run(ctx, usecase.BatchInput{
					Year:       opts.year,
					Season:     season,
					From:       opts.from,
					To:         opts.to,
					MaxWorkers: workers,
				})
				if err != nil {
					return err
				}
				if err := writeOutput(cmd.OutOrStdout(), root.output, result); err != nil {
					return err
				}
				if result.SuccessCount == 0 && result.FailedCount > 0 {
					return fmt.Errorf("all %d games failed", result.FailedCount)
				}
				return nil
			})
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.year, "year", 0, "first calendar year of the season")
	flags.StringVar(&opts.season, "season", string(gamekey.SeasonRegular), "pre, regular, post or all-star")
	flags.IntVar(&opts.from, "from", 1, "first game number")
	flags.IntVar(&opts.to, "to", 1, "last game number, inclusive")
	flags.IntVar(&opts.workers, "workers", 0, "concurrent games (default BATCH_MAX_WORKERS)")
	_ = cmd.MarkFlagRequired("year")

	return cmd
}

func newPlaysCmd(root *rootOptions) *cobra.Command {
	var gameID int64

	cmd := &cobra.Command{
		Use:   "plays",
		Short: "Print the stored reconciled plays of one game",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, root, func(ctx context.Context, a *app.App) error {
				if !a.Persistent() {
					return fmt.Errorf("%w: plays reads stored games, set DB_ENABLED=true", usecase.ErrDependencyUnavailable)
				}

				records, err := a.Plays.ListByGame(ctx, gameID)
				if err != nil {
					return err
				}
				if len(records) == 0 {
					return fmt.Errorf("%w: no plays stored for game %d", usecase.ErrNotFound, gameID)
				}
				return writeOutput(cmd.OutOrStdout(), root.output, records)
			})
		},
	}
	cmd.Flags().Int64Var(&gameID, "game-id", 0, "feed game id, e.g. 2018020001")
	_ = cmd.MarkFlagRequired("game-id")

	return cmd
}

// withApp loads configuration, builds the app and closes it after fn.
func withApp(cmd *cobra.Command, root *rootOptions, fn func(ctx context.Context, a *app.App) error) error {
	if err := loadEnvFile(root.envFile); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if strings.TrimSpace(root.logLevel) != "" {
		cfg.LogLevel = logging.ParseLevel(root.logLevel)
	}

	logger := logging.NewJSONWriter(cmd.ErrOrStderr(), cfg.LogLevel).With("service", cfg.ServiceName)
	logging.SetDefault(logger)
	defer func() {
		_ = logger.Sync()
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("build app: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.Close(shutdownCtx); err != nil {
			logger.Warn("shutdown failed", "error", err)
		}
	}()

	return fn(ctx, a)
}

// loadEnvFile never overrides variables that are already set. A missing
// file is fine.
func loadEnvFile(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func writeOutput(w io.Writer, format string, v any) error {
	var (
		raw []byte
		err error
	)
	switch format {
	case outputYAML:
		raw, err = yaml.Marshal(v)
	default:
		raw, err = sonic.ConfigStd.MarshalIndent(v, "", "  ")
		raw = append(raw, '\n')
	}
	if err != nil {
		return fmt.Errorf("encode %s output: %w", format, err)
	}

	_, err = w.Write(raw)
	return err
}
