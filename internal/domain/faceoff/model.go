package faceoff

import (
	"strings"

	"github.com/riskibarqy/hockey-pbp/internal/domain/eventtype"
	"github.com/riskibarqy/hockey-pbp/internal/domain/play"
)

// Zone is the rink area relative to the team of the first named participant.
type Zone string

const (
	ZoneUndefined Zone = ""
	ZoneNeutral   Zone = "Neutral Zone"
	ZoneOffensive Zone = "Offensive Zone"
	ZoneDefensive Zone = "Defensive Zone"
)

// zoneMarkers are checked in this order; the first one present wins.
var zoneMarkers = []struct {
	marker string
	zone   Zone
}{
	{"Neu. Zone", ZoneNeutral},
	{"Off. Zone", ZoneOffensive},
	{"Def. Zone", ZoneDefensive},
}

// ZoneFromDescription reads the zone out of a report description such as
// "WSH won Off. Zone - WSH #19 BACKSTROM vs BOS #37 BERGERON". A marker
// matches anywhere in the text, including at the very start.
func ZoneFromDescription(description string) Zone {
	for _, item := range zoneMarkers {
		if strings.Contains(description, item.marker) {
			return item.zone
		}
	}
	return ZoneUndefined
}

// Opposite mirrors the zone for the other participant.
func (z Zone) Opposite() Zone {
	switch z {
	case ZoneNeutral:
		return ZoneNeutral
	case ZoneOffensive:
		return ZoneDefensive
	case ZoneDefensive:
		return ZoneOffensive
	default:
		return ZoneUndefined
	}
}

// Record is a reconciled faceoff with roster-form participant ids.
type Record struct {
	GameID          int64          `json:"game_id"`
	EventID         int            `json:"event_id"`
	EventType       eventtype.Type `json:"play_type_id"`
	Period          int            `json:"period"`
	Player1Strength play.Strength  `json:"player_1_strength"`
	Player2Strength play.Strength  `json:"player_2_strength"`
	TimeElapsed     string         `json:"time_elapsed"`
	X               *float64       `json:"play_x_coordinate"`
	Y               *float64       `json:"play_y_coordinate"`
	Description     string         `json:"play_description_html"`
	Player1ID       string         `json:"player1_id"`
	Player2ID       string         `json:"player2_id"`
	OnIce           play.OnIce     `json:"on_ice"`
	Player1Zone     Zone           `json:"player_1_zone"`
	Player2Zone     Zone           `json:"player_2_zone"`
}
