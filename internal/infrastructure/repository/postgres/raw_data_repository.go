package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/hockey-pbp/internal/domain/rawdata"
	qb "github.com/riskibarqy/hockey-pbp/internal/platform/querybuilder"
)

const upsertRawPayloadSuffix = `ON CONFLICT (source, entity_type, entity_key)
DO UPDATE SET
    game_id = EXCLUDED.game_id,
    url = EXCLUDED.url,
    content_type = EXCLUDED.content_type,
    payload = EXCLUDED.payload,
    payload_hash = EXCLUDED.payload_hash,
    fetched_at = EXCLUDED.fetched_at,
    ingested_at = NOW()`

type RawDataRepository struct {
	db *sqlx.DB
}

func NewRawDataRepository(db *sqlx.DB) *RawDataRepository {
	return &RawDataRepository{db: db}
}

func (r *RawDataRepository) UpsertMany(ctx context.Context, items []rawdata.Payload) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert raw payloads: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, item := range items {
		insertModel := rawDataPayloadInsertModel{
			Source:      item.Source,
			EntityType:  item.EntityType,
			EntityKey:   item.EntityKey,
			GameID:      nullableInt64(item.GameID),
			URL:         item.URL,
			ContentType: item.ContentType,
			Payload:     []byte(item.Body),
			PayloadHash: item.BodyHash,
			FetchedAt:   item.FetchedAt,
		}

		query, args, err := qb.InsertModels("raw_data_payloads", []rawDataPayloadInsertModel{insertModel}, upsertRawPayloadSuffix)
		if err != nil {
			return fmt.Errorf("build upsert raw payload query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert raw payload entity=%s key=%s: %w", item.EntityType, item.EntityKey, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert raw payloads tx: %w", err)
	}

	return nil
}
