package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/hockey-pbp/internal/domain/faceoff"
	qb "github.com/riskibarqy/hockey-pbp/internal/platform/querybuilder"
)

const faceoffInsertChunkSize = 1000

type FaceoffRepository struct {
	db *sqlx.DB
}

func NewFaceoffRepository(db *sqlx.DB) *FaceoffRepository {
	return &FaceoffRepository{db: db}
}

func (r *FaceoffRepository) ReplaceByGame(ctx context.Context, gameID int64, records []faceoff.Record) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace faceoffs game=%d: %w", gameID, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.DeleteFrom("faceoffs").Where(qb.Eq("game_id", gameID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete faceoffs query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete faceoffs game=%d: %w", gameID, err)
	}

	models := make([]faceoffInsertModel, 0, len(records))
	for i, item := range records {
		models = append(models, faceoffInsertModel{
			GameID:            gameID,
			Seq:               i + 1,
			EventID:           item.EventID,
			Period:            item.Period,
			TimeElapsed:       item.TimeElapsed,
			Player1Strength:   string(item.Player1Strength),
			Player2Strength:   string(item.Player2Strength),
			X:                 item.X,
			Y:                 item.Y,
			ReportDescription: item.Description,
			Player1ID:         item.Player1ID,
			Player2ID:         item.Player2ID,
			Player1Zone:       string(item.Player1Zone),
			Player2Zone:       string(item.Player2Zone),
			AwayOnIce:         item.OnIce.Away[:],
			HomeOnIce:         item.OnIce.Home[:],
		})
	}
	for start := 0; start < len(models); start += faceoffInsertChunkSize {
		end := min(start+faceoffInsertChunkSize, len(models))
		if err := execInsertModels(ctx, tx, "faceoffs", models[start:end], ""); err != nil {
			return fmt.Errorf("insert faceoffs game=%d: %w", gameID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace faceoffs tx: %w", err)
	}

	return nil
}
