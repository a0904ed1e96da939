package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/hockey-pbp/internal/domain/play"
	"github.com/riskibarqy/hockey-pbp/internal/domain/roster"
)

type PlayRepository struct {
	mu      sync.RWMutex
	games   map[int64]play.Game
	players map[string]roster.Entry
	plays   map[int64][]play.Record
}

func NewPlayRepository() *PlayRepository {
	return &PlayRepository{
		games:   make(map[int64]play.Game),
		players: make(map[string]roster.Entry),
		plays:   make(map[int64][]play.Record),
	}
}

func (r *PlayRepository) ReplaceGame(_ context.Context, game play.Game, players []roster.Entry, records []play.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.games[game.ID] = game
	for _, item := range players {
		r.players[item.PlayerID] = item
	}
	r.plays[game.ID] = append([]play.Record(nil), records...)

	return nil
}

func (r *PlayRepository) ListByGame(_ context.Context, gameID int64) ([]play.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := r.plays[gameID]
	out := make([]play.Record, 0, len(records))
	out = append(out, records...)

	return out, nil
}

func (r *PlayRepository) GetGame(_ context.Context, gameID int64) (play.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	game, ok := r.games[gameID]
	return game, ok, nil
}
