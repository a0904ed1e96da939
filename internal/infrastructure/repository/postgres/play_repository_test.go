package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/hockey-pbp/internal/domain/eventtype"
	"github.com/riskibarqy/hockey-pbp/internal/domain/play"
	"github.com/riskibarqy/hockey-pbp/internal/domain/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return sqlx.NewDb(db, "postgres"), mock
}

func testGame() play.Game {
	return play.Game{
		ID:       2018020001,
		Date:     "2018-10-03",
		StartAt:  time.Date(2018, 10, 3, 23, 0, 0, 0, time.UTC),
		AwayTeam: play.Team{ID: 8, TriCode: "MTL"},
		HomeTeam: play.Team{ID: 10, TriCode: "TOR"},
	}
}

func testRecord() play.Record {
	p1, p2 := int64(8475166), int64(8477503)
	n1, n2 := "John Tavares", "Max Domi"
	x, y := 0.0, 0.0
	return play.Record{
		GameID:            2018020001,
		GameDate:          "2018-10-03",
		AwayTeamID:        8,
		AwayTeamCode:      "MTL",
		HomeTeamID:        10,
		HomeTeamCode:      "TOR",
		EventID:           3,
		EventIdx:          2,
		ReportEventID:     "3",
		EventName:         "Faceoff",
		EventType:         eventtype.Faceoff,
		Period:            1,
		TimeElapsed:       "00:00",
		TimeRemaining:     "20:00",
		X:                 &x,
		Y:                 &y,
		Player1ID:         &p1,
		Player1Name:       &n1,
		Player2ID:         &p2,
		Player2Name:       &n2,
		Player1Strength:   play.StrengthEven,
		Player2Strength:   play.StrengthEven,
		APIDescription:    "John Tavares faceoff won against Max Domi",
		ReportDescription: "TOR won Neu. Zone - MTL #13 DOMI vs TOR #91 TAVARES",
		OnIce: play.OnIce{
			Away: [play.SlotsPerSide]string{"ID8477503", "away21"},
			Home: [play.SlotsPerSide]string{"ID8475166"},
		},
	}
}

func TestPlayRepository_ReplaceGame(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPlayRepository(db)

	players := []roster.Entry{
		{Side: roster.SideAway, TeamID: 8, PlayerID: "ID8477503", PlayerName: "Max Domi", Position: "C", JerseyNumber: "13"},
		{Side: roster.SideHome, TeamID: 10, PlayerID: "ID8475166", PlayerName: "John Tavares", Position: "C", JerseyNumber: "91"},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO teams (team_id, team_name, abbreviation)")).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO players (player_id, full_name, position, jersey_number, team_id)")).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO games (game_id, game_date, start_datetime, away_team_id, home_team_id)")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM plays WHERE game_id = $1")).
		WithArgs(int64(2018020001)).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO plays (game_id, seq, event_id")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.ReplaceGame(context.Background(), testGame(), players, []play.Record{testRecord()})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlayRepository_ReplaceGameRollsBackOnInsertFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPlayRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO teams").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO players").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO games").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM plays").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO plays").WillReturnError(errors.New("violates foreign key constraint"))
	mock.ExpectRollback()

	err := repo.ReplaceGame(context.Background(), testGame(), nil, []play.Record{testRecord()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert plays game=2018020001")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlayRepository_ListByGame(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPlayRepository(db)

	header := sqlmock.NewRows([]string{
		"game_id", "game_date", "start_datetime", "away_team_id", "away_team_code", "home_team_id", "home_team_code",
	}).AddRow(int64(2018020001), "2018-10-03", nil, int64(8), "MTL", int64(10), "TOR")
	mock.ExpectQuery(regexp.QuoteMeta("FROM games g JOIN teams a")).
		WithArgs(int64(2018020001)).
		WillReturnRows(header)

	rows := sqlmock.NewRows(playSelectColumns).AddRow(
		int64(1), int64(8), int64(7), "8", "Giveaway", "GIVEAWAY", int64(1), "01:30", "18:30",
		nil, nil,
		int64(8476853), "Morgan Rielly", nil, nil,
		"EV", "EV",
		"Giveaway by Morgan Rielly", "TOR GIVEAWAY - #44 RIELLY, Def. Zone",
		`{ID8477503,away21,"","","",""}`, `{home44}`,
	)
	mock.ExpectQuery(regexp.QuoteMeta("FROM plays WHERE game_id = $1 ORDER BY seq")).
		WithArgs(int64(2018020001)).
		WillReturnRows(rows)

	got, err := repo.ListByGame(context.Background(), 2018020001)
	require.NoError(t, err)
	require.Len(t, got, 1)

	record := got[0]
	assert.Equal(t, "2018-10-03", record.GameDate)
	assert.Equal(t, "MTL", record.AwayTeamCode)
	assert.Equal(t, eventtype.Giveaway, record.EventType)
	assert.Nil(t, record.X)
	assert.Nil(t, record.Player2ID)
	require.NotNil(t, record.Player1ID)
	assert.Equal(t, int64(8476853), *record.Player1ID)
	assert.Equal(t, "ID8477503", record.OnIce.Away[0])
	assert.Equal(t, "away21", record.OnIce.Away[1])
	assert.Empty(t, record.OnIce.Away[5])
	assert.Equal(t, "home44", record.OnIce.Home[0])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlayRepository_ListByGameUnknownGame(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPlayRepository(db)

	mock.ExpectQuery("FROM games g").WillReturnRows(sqlmock.NewRows([]string{"game_id"}))

	got, err := repo.ListByGame(context.Background(), 2018029999)
	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCollectPlayers(t *testing.T) {
	t.Parallel()

	entries := []roster.Entry{
		{Side: roster.SideAway, TeamID: 8, PlayerID: "ID8477503", PlayerName: "Max Domi", JerseyNumber: "13"},
		{Side: roster.SideHome, TeamID: 10, PlayerID: "bogus", JerseyNumber: "1"},
	}
	record := testRecord()
	record.OnIce.Home[1] = "ID8470000"

	got := collectPlayers(entries, []play.Record{record})
	require.Len(t, got, 3)

	assert.Equal(t, int64(8470000), got[0].PlayerID)
	assert.Empty(t, got[0].FullName)
	assert.Nil(t, got[0].TeamID)

	assert.Equal(t, int64(8475166), got[1].PlayerID)
	assert.Equal(t, "John Tavares", got[1].FullName)

	assert.Equal(t, int64(8477503), got[2].PlayerID)
	assert.Equal(t, "Max Domi", got[2].FullName)
	require.NotNil(t, got[2].TeamID)
	assert.Equal(t, int64(8), *got[2].TeamID)
}

func TestSlotIDs(t *testing.T) {
	t.Parallel()

	got := slotIDs([play.SlotsPerSide]string{"ID8477503", "away21", ""})
	require.NotNil(t, got[0])
	assert.Equal(t, int64(8477503), *got[0])
	assert.Nil(t, got[1])
	assert.Nil(t, got[2])
}
