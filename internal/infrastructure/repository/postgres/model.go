package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type teamInsertModel struct {
	TeamID       int64  `db:"team_id"`
	TeamName     string `db:"team_name"`
	Abbreviation string `db:"abbreviation"`
}

type playerInsertModel struct {
	PlayerID     int64  `db:"player_id"`
	FullName     string `db:"full_name"`
	Position     string `db:"position"`
	JerseyNumber string `db:"jersey_number"`
	TeamID       *int64 `db:"team_id"`
}

type gameInsertModel struct {
	GameID        int64      `db:"game_id"`
	GameDate      string     `db:"game_date"`
	StartDatetime *time.Time `db:"start_datetime"`
	AwayTeamID    int64      `db:"away_team_id"`
	HomeTeamID    int64      `db:"home_team_id"`
}

type playInsertModel struct {
	GameID            int64          `db:"game_id"`
	Seq               int            `db:"seq"`
	EventID           int            `db:"event_id"`
	EventIdx          int            `db:"event_idx"`
	ReportEventID     string         `db:"report_event_id"`
	PlayType          string         `db:"play_type"`
	PlayTypeID        string         `db:"play_type_id"`
	Period            int            `db:"period"`
	TimeElapsed       string         `db:"time_elapsed"`
	TimeRemaining     string         `db:"time_remaining"`
	X                 *float64       `db:"play_x_coordinate"`
	Y                 *float64       `db:"play_y_coordinate"`
	Player1ID         *int64         `db:"player_1_id"`
	Player1Name       *string        `db:"player_1_name"`
	Player2ID         *int64         `db:"player_2_id"`
	Player2Name       *string        `db:"player_2_name"`
	Player1Strength   string         `db:"player_1_strength"`
	Player2Strength   string         `db:"player_2_strength"`
	APIDescription    string         `db:"play_description_api"`
	ReportDescription string         `db:"play_description_html"`
	AwayPlayer1ID     *int64         `db:"away_player_1_id"`
	AwayPlayer2ID     *int64         `db:"away_player_2_id"`
	AwayPlayer3ID     *int64         `db:"away_player_3_id"`
	AwayPlayer4ID     *int64         `db:"away_player_4_id"`
	AwayPlayer5ID     *int64         `db:"away_player_5_id"`
	AwayPlayer6ID     *int64         `db:"away_player_6_id"`
	HomePlayer1ID     *int64         `db:"home_player_1_id"`
	HomePlayer2ID     *int64         `db:"home_player_2_id"`
	HomePlayer3ID     *int64         `db:"home_player_3_id"`
	HomePlayer4ID     *int64         `db:"home_player_4_id"`
	HomePlayer5ID     *int64         `db:"home_player_5_id"`
	HomePlayer6ID     *int64         `db:"home_player_6_id"`
	AwayOnIce         pq.StringArray `db:"away_on_ice"`
	HomeOnIce         pq.StringArray `db:"home_on_ice"`
}

// gameHeaderRow is a games row joined with both team codes.
type gameHeaderRow struct {
	GameID       int64        `db:"game_id"`
	GameDate     string       `db:"game_date"`
	StartAt      sql.NullTime `db:"start_datetime"`
	AwayTeamID   int64        `db:"away_team_id"`
	AwayTeamCode string       `db:"away_team_code"`
	HomeTeamID   int64        `db:"home_team_id"`
	HomeTeamCode string       `db:"home_team_code"`
}

type playTableModel struct {
	Seq               int             `db:"seq"`
	EventID           int             `db:"event_id"`
	EventIdx          int             `db:"event_idx"`
	ReportEventID     string          `db:"report_event_id"`
	PlayType          string          `db:"play_type"`
	PlayTypeID        string          `db:"play_type_id"`
	Period            int             `db:"period"`
	TimeElapsed       string          `db:"time_elapsed"`
	TimeRemaining     string          `db:"time_remaining"`
	X                 sql.NullFloat64 `db:"play_x_coordinate"`
	Y                 sql.NullFloat64 `db:"play_y_coordinate"`
	Player1ID         sql.NullInt64   `db:"player_1_id"`
	Player1Name       sql.NullString  `db:"player_1_name"`
	Player2ID         sql.NullInt64   `db:"player_2_id"`
	Player2Name       sql.NullString  `db:"player_2_name"`
	Player1Strength   string          `db:"player_1_strength"`
	Player2Strength   string          `db:"player_2_strength"`
	APIDescription    string          `db:"play_description_api"`
	ReportDescription string          `db:"play_description_html"`
	AwayOnIce         pq.StringArray  `db:"away_on_ice"`
	HomeOnIce         pq.StringArray  `db:"home_on_ice"`
}

var playSelectColumns = []string{
	"seq",
	"event_id",
	"event_idx",
	"report_event_id",
	"play_type",
	"play_type_id",
	"period",
	"time_elapsed",
	"time_remaining",
	"play_x_coordinate",
	"play_y_coordinate",
	"player_1_id",
	"player_1_name",
	"player_2_id",
	"player_2_name",
	"player_1_strength",
	"player_2_strength",
	"play_description_api",
	"play_description_html",
	"away_on_ice",
	"home_on_ice",
}

type faceoffInsertModel struct {
	GameID            int64          `db:"game_id"`
	Seq               int            `db:"seq"`
	EventID           int            `db:"event_id"`
	Period            int            `db:"period"`
	TimeElapsed       string         `db:"time_elapsed"`
	Player1Strength   string         `db:"player_1_strength"`
	Player2Strength   string         `db:"player_2_strength"`
	X                 *float64       `db:"play_x_coordinate"`
	Y                 *float64       `db:"play_y_coordinate"`
	ReportDescription string         `db:"play_description_html"`
	Player1ID         string         `db:"player_1_id"`
	Player2ID         string         `db:"player_2_id"`
	Player1Zone       string         `db:"player_1_zone"`
	Player2Zone       string         `db:"player_2_zone"`
	AwayOnIce         pq.StringArray `db:"away_on_ice"`
	HomeOnIce         pq.StringArray `db:"home_on_ice"`
}

type rawDataPayloadInsertModel struct {
	Source      string    `db:"source"`
	EntityType  string    `db:"entity_type"`
	EntityKey   string    `db:"entity_key"`
	GameID      *int64    `db:"game_id"`
	URL         string    `db:"url"`
	ContentType string    `db:"content_type"`
	Payload     []byte    `db:"payload"`
	PayloadHash string    `db:"payload_hash"`
	FetchedAt   time.Time `db:"fetched_at"`
}
