package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/hockey-pbp/internal/domain/rawdata"
)

type RawDataRepository struct {
	mu    sync.RWMutex
	items map[string]rawdata.Payload
}

func NewRawDataRepository() *RawDataRepository {
	return &RawDataRepository{items: make(map[string]rawdata.Payload)}
}

func (r *RawDataRepository) UpsertMany(_ context.Context, items []rawdata.Payload) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		r.items[rawDataKey(item.Source, item.EntityType, item.EntityKey)] = item
	}
	return nil
}

func (r *RawDataRepository) Get(_ context.Context, source, entityType, entityKey string) (rawdata.Payload, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[rawDataKey(source, entityType, entityKey)]
	return item, ok, nil
}

func rawDataKey(source, entityType, entityKey string) string {
	return source + "|" + entityType + "|" + entityKey
}
