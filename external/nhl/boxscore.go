package nhl

import (
	"fmt"
	"sort"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/hockey-pbp/internal/domain/roster"
)

type boxscoreEnvelope struct {
	Teams struct {
		Away boxscoreTeam `json:"away"`
		Home boxscoreTeam `json:"home"`
	} `json:"teams"`
}

type boxscoreTeam struct {
	Team struct {
		ID int64 `json:"id"`
	} `json:"team"`
	Players map[string]boxscorePlayer `json:"players"`
}

type boxscorePlayer struct {
	Person struct {
		ID       int64  `json:"id"`
		FullName string `json:"fullName"`
	} `json:"person"`
	JerseyNumber string `json:"jerseyNumber"`
	Position     struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"position"`
}

// ParseBoxscore lists every rostered player, away side first. Within a side
// players are ordered by their boxscore key.
func ParseBoxscore(raw []byte) ([]roster.Entry, error) {
	var envelope boxscoreEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode boxscore payload: %w", err)
	}

	out := make([]roster.Entry, 0, len(envelope.Teams.Away.Players)+len(envelope.Teams.Home.Players))
	out = appendSide(out, roster.SideAway, envelope.Teams.Away)
	out = appendSide(out, roster.SideHome, envelope.Teams.Home)
	return out, nil
}

func appendSide(out []roster.Entry, side roster.Side, team boxscoreTeam) []roster.Entry {
	keys := make([]string, 0, len(team.Players))
	for key := range team.Players {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		p := team.Players[key]
		out = append(out, roster.Entry{
			Side:         side,
			TeamID:       team.Team.ID,
			PlayerID:     key,
			PlayerName:   p.Person.FullName,
			Position:     p.Position.Abbreviation,
			JerseyNumber: strings.TrimSpace(p.JerseyNumber),
		})
	}
	return out
}
