package play

import (
	"context"

	"github.com/riskibarqy/hockey-pbp/internal/domain/roster"
)

// Repository persists one game's reconciled plays together with the teams
// and players they reference.
type Repository interface {
	ReplaceGame(ctx context.Context, game Game, players []roster.Entry, records []Record) error
	ListByGame(ctx context.Context, gameID int64) ([]Record, error)
}
