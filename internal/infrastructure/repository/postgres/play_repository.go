package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/hockey-pbp/internal/domain/eventtype"
	"github.com/riskibarqy/hockey-pbp/internal/domain/play"
	"github.com/riskibarqy/hockey-pbp/internal/domain/roster"
	qb "github.com/riskibarqy/hockey-pbp/internal/platform/querybuilder"
)

// Stays well under the 65535 bind parameter limit at 34 columns per play.
const playInsertChunkSize = 500

const (
	upsertTeamsSuffix = `ON CONFLICT (team_id) DO UPDATE SET
    team_name = CASE WHEN EXCLUDED.team_name <> '' THEN EXCLUDED.team_name ELSE teams.team_name END,
    abbreviation = EXCLUDED.abbreviation,
    updated_at = NOW()`

	upsertPlayersSuffix = `ON CONFLICT (player_id) DO UPDATE SET
    full_name = CASE WHEN EXCLUDED.full_name <> '' THEN EXCLUDED.full_name ELSE players.full_name END,
    position = CASE WHEN EXCLUDED.position <> '' THEN EXCLUDED.position ELSE players.position END,
    jersey_number = CASE WHEN EXCLUDED.jersey_number <> '' THEN EXCLUDED.jersey_number ELSE players.jersey_number END,
    team_id = COALESCE(EXCLUDED.team_id, players.team_id),
    updated_at = NOW()`

	upsertGameSuffix = `ON CONFLICT (game_id) DO UPDATE SET
    game_date = EXCLUDED.game_date,
    start_datetime = EXCLUDED.start_datetime,
    away_team_id = EXCLUDED.away_team_id,
    home_team_id = EXCLUDED.home_team_id,
    updated_at = NOW()`
)

type PlayRepository struct {
	db *sqlx.DB
}

func NewPlayRepository(db *sqlx.DB) *PlayRepository {
	return &PlayRepository{db: db}
}

// ReplaceGame upserts the game with its teams and players and swaps the
// stored plays for records, all in one transaction.
func (r *PlayRepository) ReplaceGame(ctx context.Context, game play.Game, players []roster.Entry, records []play.Record) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace game=%d: %w", game.ID, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	teams := []teamInsertModel{
		{TeamID: game.AwayTeam.ID, TeamName: game.AwayTeam.Name, Abbreviation: game.AwayTeam.TriCode},
		{TeamID: game.HomeTeam.ID, TeamName: game.HomeTeam.Name, Abbreviation: game.HomeTeam.TriCode},
	}
	if game.AwayTeam.ID == game.HomeTeam.ID {
		teams = teams[:1]
	}
	if err := execInsertModels(ctx, tx, "teams", teams, upsertTeamsSuffix); err != nil {
		return fmt.Errorf("upsert teams game=%d: %w", game.ID, err)
	}

	if playerModels := collectPlayers(players, records); len(playerModels) > 0 {
		if err := execInsertModels(ctx, tx, "players", playerModels, upsertPlayersSuffix); err != nil {
			return fmt.Errorf("upsert players game=%d: %w", game.ID, err)
		}
	}

	gameModel := gameInsertModel{
		GameID:     game.ID,
		GameDate:   game.Date,
		AwayTeamID: game.AwayTeam.ID,
		HomeTeamID: game.HomeTeam.ID,
	}
	if !game.StartAt.IsZero() {
		startAt := game.StartAt.UTC()
		gameModel.StartDatetime = &startAt
	}
	if err := execInsertModels(ctx, tx, "games", []gameInsertModel{gameModel}, upsertGameSuffix); err != nil {
		return fmt.Errorf("upsert game=%d: %w", game.ID, err)
	}

	deleteQuery, deleteArgs, err := qb.DeleteFrom("plays").Where(qb.Eq("game_id", game.ID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete plays query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete plays game=%d: %w", game.ID, err)
	}

	models := make([]playInsertModel, 0, len(records))
	for i, record := range records {
		models = append(models, playModelFromRecord(i+1, record))
	}
	for start := 0; start < len(models); start += playInsertChunkSize {
		end := min(start+playInsertChunkSize, len(models))
		if err := execInsertModels(ctx, tx, "plays", models[start:end], ""); err != nil {
			return fmt.Errorf("insert plays game=%d rows=%d..%d: %w", game.ID, start+1, end, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace game=%d tx: %w", game.ID, err)
	}

	return nil
}

func (r *PlayRepository) ListByGame(ctx context.Context, gameID int64) ([]play.Record, error) {
	headerQuery, headerArgs, err := qb.Select(
		"g.game_id",
		"to_char(g.game_date, 'YYYY-MM-DD') AS game_date",
		"g.start_datetime",
		"g.away_team_id",
		"a.abbreviation AS away_team_code",
		"g.home_team_id",
		"h.abbreviation AS home_team_code",
	).
		From("games g JOIN teams a ON a.team_id = g.away_team_id JOIN teams h ON h.team_id = g.home_team_id").
		Where(qb.Eq("g.game_id", gameID)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select game header query: %w", err)
	}

	var header gameHeaderRow
	if err := r.db.GetContext(ctx, &header, headerQuery, headerArgs...); err != nil {
		if isNotFound(err) {
			return []play.Record{}, nil
		}
		return nil, fmt.Errorf("select game header game=%d: %w", gameID, err)
	}

	query, args, err := qb.Select(playSelectColumns...).From("plays").
		Where(qb.Eq("game_id", gameID)).
		OrderBy("seq").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select plays query: %w", err)
	}

	var rows []playTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select plays game=%d: %w", gameID, err)
	}

	out := make([]play.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, recordFromRow(header, row))
	}
	return out, nil
}

func execInsertModels[T any](ctx context.Context, tx *sqlx.Tx, table string, models []T, suffix string) error {
	query, args, err := qb.InsertModels(table, models, suffix)
	if err != nil {
		return fmt.Errorf("build insert %s query: %w", table, err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}
	return nil
}

// collectPlayers merges roster entries with feed participants and every
// resolved on-ice id so each player foreign key on plays has a target row.
func collectPlayers(entries []roster.Entry, records []play.Record) []playerInsertModel {
	byID := make(map[int64]playerInsertModel)
	for _, entry := range entries {
		id, ok := roster.NumericPlayerID(entry.PlayerID)
		if !ok {
			continue
		}
		model := playerInsertModel{
			PlayerID:     id,
			FullName:     entry.PlayerName,
			Position:     entry.Position,
			JerseyNumber: entry.JerseyNumber,
		}
		if entry.TeamID > 0 {
			teamID := entry.TeamID
			model.TeamID = &teamID
		}
		byID[id] = model
	}

	addParticipant := func(id *int64, name *string) {
		if id == nil || *id <= 0 {
			return
		}
		model, ok := byID[*id]
		if !ok {
			model = playerInsertModel{PlayerID: *id}
		}
		if model.FullName == "" && name != nil {
			model.FullName = *name
		}
		byID[*id] = model
	}
	addSlot := func(value string) {
		if id, ok := roster.NumericPlayerID(value); ok {
			if _, exists := byID[id]; !exists {
				byID[id] = playerInsertModel{PlayerID: id}
			}
		}
	}

	for _, record := range records {
		addParticipant(record.Player1ID, record.Player1Name)
		addParticipant(record.Player2ID, record.Player2Name)
		for i := 0; i < play.SlotsPerSide; i++ {
			addSlot(record.OnIce.Away[i])
			addSlot(record.OnIce.Home[i])
		}
	}

	out := make([]playerInsertModel, 0, len(byID))
	for _, model := range byID {
		out = append(out, model)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out
}

func playModelFromRecord(seq int, record play.Record) playInsertModel {
	away := slotIDs(record.OnIce.Away)
	home := slotIDs(record.OnIce.Home)
	return playInsertModel{
		GameID:            record.GameID,
		Seq:               seq,
		EventID:           record.EventID,
		EventIdx:          record.EventIdx,
		ReportEventID:     record.ReportEventID,
		PlayType:          record.EventName,
		PlayTypeID:        string(record.EventType),
		Period:            record.Period,
		TimeElapsed:       record.TimeElapsed,
		TimeRemaining:     record.TimeRemaining,
		X:                 record.X,
		Y:                 record.Y,
		Player1ID:         record.Player1ID,
		Player1Name:       record.Player1Name,
		Player2ID:         record.Player2ID,
		Player2Name:       record.Player2Name,
		Player1Strength:   string(record.Player1Strength),
		Player2Strength:   string(record.Player2Strength),
		APIDescription:    record.APIDescription,
		ReportDescription: record.ReportDescription,
		AwayPlayer1ID:     away[0],
		AwayPlayer2ID:     away[1],
		AwayPlayer3ID:     away[2],
		AwayPlayer4ID:     away[3],
		AwayPlayer5ID:     away[4],
		AwayPlayer6ID:     away[5],
		HomePlayer1ID:     home[0],
		HomePlayer2ID:     home[1],
		HomePlayer3ID:     home[2],
		HomePlayer4ID:     home[3],
		HomePlayer5ID:     home[4],
		HomePlayer6ID:     home[5],
		AwayOnIce:         record.OnIce.Away[:],
		HomeOnIce:         record.OnIce.Home[:],
	}
}

// slotIDs yields the numeric player id per slot; unresolved GUIDs and empty
// slots become NULL and survive only in the on-ice text arrays.
func slotIDs(slots [play.SlotsPerSide]string) [play.SlotsPerSide]*int64 {
	var out [play.SlotsPerSide]*int64
	for i, value := range slots {
		if id, ok := roster.NumericPlayerID(value); ok {
			out[i] = &id
		}
	}
	return out
}

func recordFromRow(header gameHeaderRow, row playTableModel) play.Record {
	record := play.Record{
		GameID:            header.GameID,
		GameDate:          header.GameDate,
		AwayTeamID:        header.AwayTeamID,
		AwayTeamCode:      header.AwayTeamCode,
		HomeTeamID:        header.HomeTeamID,
		HomeTeamCode:      header.HomeTeamCode,
		EventID:           row.EventID,
		EventIdx:          row.EventIdx,
		ReportEventID:     row.ReportEventID,
		EventName:         row.PlayType,
		EventType:         eventtype.Type(row.PlayTypeID),
		Period:            row.Period,
		TimeElapsed:       row.TimeElapsed,
		TimeRemaining:     row.TimeRemaining,
		X:                 nullFloat64Ptr(row.X),
		Y:                 nullFloat64Ptr(row.Y),
		Player1ID:         nullInt64Ptr(row.Player1ID),
		Player1Name:       nullStringPtr(row.Player1Name),
		Player2ID:         nullInt64Ptr(row.Player2ID),
		Player2Name:       nullStringPtr(row.Player2Name),
		Player1Strength:   play.Strength(row.Player1Strength),
		Player2Strength:   play.Strength(row.Player2Strength),
		APIDescription:    row.APIDescription,
		ReportDescription: row.ReportDescription,
	}
	copy(record.OnIce.Away[:], row.AwayOnIce)
	copy(record.OnIce.Home[:], row.HomeOnIce)
	return record
}
