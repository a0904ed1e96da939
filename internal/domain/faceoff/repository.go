package faceoff

import "context"

type Repository interface {
	ReplaceByGame(ctx context.Context, gameID int64, records []Record) error
}
