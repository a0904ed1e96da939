package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/hockey-pbp/internal/domain/faceoff"
)

type FaceoffRepository struct {
	mu     sync.RWMutex
	byGame map[int64][]faceoff.Record
}

func NewFaceoffRepository() *FaceoffRepository {
	return &FaceoffRepository{byGame: make(map[int64][]faceoff.Record)}
}

func (r *FaceoffRepository) ReplaceByGame(_ context.Context, gameID int64, records []faceoff.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byGame[gameID] = append([]faceoff.Record(nil), records...)
	return nil
}

func (r *FaceoffRepository) ListByGame(_ context.Context, gameID int64) ([]faceoff.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := r.byGame[gameID]
	out := make([]faceoff.Record, 0, len(records))
	out = append(out, records...)

	return out, nil
}
