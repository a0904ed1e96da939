package roster

import (
	"strconv"
	"strings"
)

type Side string

const (
	SideAway Side = "away"
	SideHome Side = "home"
)

// PlayerIDPrefix is how the boxscore keys players ("ID8471214").
const PlayerIDPrefix = "ID"

// Entry is one player listed on a team's boxscore roster for a game.
type Entry struct {
	Side         Side   `json:"home_away"`
	TeamID       int64  `json:"team_id"`
	PlayerID     string `json:"player_id"`
	PlayerName   string `json:"player_name"`
	Position     string `json:"player_position"`
	JerseyNumber string `json:"jersey_number"`
}

// GUID is the side-qualified jersey number, e.g. "away7". Unique within one game.
func GUID(side Side, jersey string) string {
	return string(side) + jersey
}

func (e Entry) GUID() string {
	return GUID(e.Side, e.JerseyNumber)
}

// Index resolves GUIDs to roster player ids.
type Index map[string]string

func NewIndex(entries []Entry) Index {
	out := make(Index, len(entries))
	for _, entry := range entries {
		if strings.TrimSpace(entry.JerseyNumber) == "" {
			continue
		}
		out[entry.GUID()] = entry.PlayerID
	}
	return out
}

// Resolve rewrites a jersey number into its GUID and substitutes the roster
// player id when known. Unknown GUIDs come back unchanged with ok=false.
// Empty jersey slots stay empty.
func (ix Index) Resolve(side Side, jersey string) (value string, ok bool) {
	if jersey == "" {
		return "", false
	}
	guid := GUID(side, jersey)
	if playerID, found := ix[guid]; found {
		return playerID, true
	}
	return guid, false
}

// FormatPlayerID renders a numeric feed player id in roster form.
func FormatPlayerID(id int64) string {
	return PlayerIDPrefix + strconv.FormatInt(id, 10)
}

// NumericPlayerID parses "ID8471214" back into 8471214.
func NumericPlayerID(value string) (int64, bool) {
	if !strings.HasPrefix(value, PlayerIDPrefix) {
		return 0, false
	}
	out, err := strconv.ParseInt(value[len(PlayerIDPrefix):], 10, 64)
	if err != nil || out <= 0 {
		return 0, false
	}
	return out, true
}
