package usecase

import (
	"context"

	"github.com/riskibarqy/hockey-pbp/internal/domain/gamekey"
	"github.com/riskibarqy/hockey-pbp/internal/domain/play"
	"github.com/riskibarqy/hockey-pbp/internal/domain/rawdata"
	"github.com/riskibarqy/hockey-pbp/internal/domain/roster"
)

// GameSource fetches and parses the three upstream documents of a game.
// Every method validates the key before touching the network and returns
// the raw payloads it fetched alongside the parsed rows.
type GameSource interface {
	FetchFeed(ctx context.Context, key gamekey.Key) (play.FeedTable, []rawdata.Payload, error)
	FetchRoster(ctx context.Context, key gamekey.Key) ([]roster.Entry, []rawdata.Payload, error)
	FetchReport(ctx context.Context, key gamekey.Key) ([]play.ReportPlay, []rawdata.Payload, error)
}
