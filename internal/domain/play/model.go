package play

import (
	"time"

	"github.com/riskibarqy/hockey-pbp/internal/domain/eventtype"
)

// SlotsPerSide is the number of on-ice slots the report lists per team.
const SlotsPerSide = 6

type Team struct {
	ID      int64  `json:"id"`
	TriCode string `json:"tri_code"`
	Name    string `json:"name,omitempty"`
}

// Game is the per-game header of the feed, broadcast to every play row.
type Game struct {
	ID       int64     `json:"game_id"`
	Date     string    `json:"game_date"`
	StartAt  time.Time `json:"start_at"`
	AwayTeam Team      `json:"away_team"`
	HomeTeam Team      `json:"home_team"`
}

// FeedTable is the parsed play-by-play feed for one game.
type FeedTable struct {
	Game  Game
	Plays []FeedPlay
}

// FeedPlay is one play from the JSON feed. Nil pointers mark absent values.
type FeedPlay struct {
	GameID         int64          `json:"game_id"`
	GameDate       string         `json:"game_date"`
	AwayTeamID     int64          `json:"away_team_id"`
	AwayTeamCode   string         `json:"away_team_code"`
	HomeTeamID     int64          `json:"home_team_id"`
	HomeTeamCode   string         `json:"home_team_code"`
	EventID        int            `json:"event_id"`
	EventIdx       int            `json:"event_idx"`
	EventName      string         `json:"play_type"`
	EventType      eventtype.Type `json:"play_type_id"`
	APIDescription string         `json:"play_description_api"`
	X              *float64       `json:"play_x_coordinate"`
	Y              *float64       `json:"play_y_coordinate"`
	Period         int            `json:"period"`
	TimeElapsed    string         `json:"time_elapsed"`
	TimeRemaining  string         `json:"time_remaining"`
	Player1ID      *int64         `json:"player1_id"`
	Player1Name    *string        `json:"player1_name"`
	Player2ID      *int64         `json:"player2_id"`
	Player2Name    *string        `json:"player2_name"`
}

// Strength is a team's manpower state as printed by the report.
type Strength string

const (
	StrengthUnknown     Strength = ""
	StrengthEven        Strength = "EV"
	StrengthPowerPlay   Strength = "PP"
	StrengthShortHanded Strength = "SH"
)

// Opposite is the other team's strength for the same play.
func (s Strength) Opposite() Strength {
	switch s {
	case StrengthEven:
		return StrengthEven
	case StrengthPowerPlay:
		return StrengthShortHanded
	case StrengthShortHanded:
		return StrengthPowerPlay
	default:
		return StrengthUnknown
	}
}

// OnIce holds the six slots per side. Before roster substitution a slot is
// a jersey number, afterwards a player id or an unresolved GUID. Empty
// strings are slots the report did not fill.
type OnIce struct {
	Away [SlotsPerSide]string `json:"away_on_ice"`
	Home [SlotsPerSide]string `json:"home_on_ice"`
}

// ReportPlay is one data row of the HTML play-by-play report.
type ReportPlay struct {
	GameID            string         `json:"game_id"`
	EventID           string         `json:"event_id"`
	Period            int            `json:"period"`
	Player1Strength   Strength       `json:"player_1_strength"`
	Player2Strength   Strength       `json:"player_2_strength"`
	TimeElapsed       string         `json:"time_elapsed"`
	TimeRemaining     string         `json:"time_remaining"`
	PlayCode          string         `json:"play_type"`
	EventType         eventtype.Type `json:"play_type_id"`
	ReportDescription string         `json:"play_description_html"`
	AwayOnIceText     string         `json:"away_on_ice_text"`
	HomeOnIceText     string         `json:"home_on_ice_text"`
	OnIce             OnIce          `json:"on_ice"`
}

// Record is one reconciled play: the feed row plus the report's strength,
// description and on-ice identifiers.
type Record struct {
	GameID            int64          `json:"game_id"`
	GameDate          string         `json:"game_date"`
	AwayTeamID        int64          `json:"away_team_id"`
	AwayTeamCode      string         `json:"away_team_code"`
	HomeTeamID        int64          `json:"home_team_id"`
	HomeTeamCode      string         `json:"home_team_code"`
	EventID           int            `json:"event_id"`
	EventIdx          int            `json:"event_idx"`
	ReportEventID     string         `json:"report_event_id"`
	EventName         string         `json:"play_type"`
	EventType         eventtype.Type `json:"play_type_id"`
	Period            int            `json:"period"`
	TimeElapsed       string         `json:"time_elapsed"`
	TimeRemaining     string         `json:"time_remaining"`
	X                 *float64       `json:"play_x_coordinate"`
	Y                 *float64       `json:"play_y_coordinate"`
	Player1ID         *int64         `json:"player1_id"`
	Player1Name       *string        `json:"player1_name"`
	Player2ID         *int64         `json:"player2_id"`
	Player2Name       *string        `json:"player2_name"`
	Player1Strength   Strength       `json:"player_1_strength"`
	Player2Strength   Strength       `json:"player_2_strength"`
	APIDescription    string         `json:"play_description_api"`
	ReportDescription string         `json:"play_description_html"`
	OnIce             OnIce          `json:"on_ice"`
}
