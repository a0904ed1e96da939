package nhl

import (
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/hockey-pbp/internal/domain/eventtype"
	"github.com/riskibarqy/hockey-pbp/internal/domain/play"
)

type feedEnvelope struct {
	GameData struct {
		Game struct {
			PK int64 `json:"pk"`
		} `json:"game"`
		Datetime struct {
			DateTime string `json:"dateTime"`
		} `json:"datetime"`
		Teams struct {
			Away feedTeam `json:"away"`
			Home feedTeam `json:"home"`
		} `json:"teams"`
	} `json:"gameData"`
	LiveData struct {
		Plays struct {
			AllPlays []feedPlay `json:"allPlays"`
		} `json:"plays"`
	} `json:"liveData"`
}

type feedTeam struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	TriCode string `json:"triCode"`
}

type feedPlay struct {
	About struct {
		EventIdx            int    `json:"eventIdx"`
		EventID             int    `json:"eventId"`
		Period              int    `json:"period"`
		PeriodTime          string `json:"periodTime"`
		PeriodTimeRemaining string `json:"periodTimeRemaining"`
	} `json:"about"`
	Result struct {
		Event       string `json:"event"`
		EventTypeID string `json:"eventTypeId"`
		Description string `json:"description"`
	} `json:"result"`
	Coordinates struct {
		X *float64 `json:"x"`
		Y *float64 `json:"y"`
	} `json:"coordinates"`
	Players []feedParticipant `json:"players"`
}

type feedParticipant struct {
	Player struct {
		ID       int64  `json:"id"`
		FullName string `json:"fullName"`
	} `json:"player"`
	PlayerType string `json:"playerType"`
}

// ParseFeed turns a live feed document into one row per play, in feed order.
// The game date is the start time rendered as a calendar date in loc.
func ParseFeed(raw []byte, loc *time.Location) (play.FeedTable, error) {
	var envelope feedEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return play.FeedTable{}, fmt.Errorf("decode feed payload: %w", err)
	}
	if loc == nil {
		loc = time.UTC
	}

	data := envelope.GameData
	game := play.Game{
		ID:       data.Game.PK,
		AwayTeam: play.Team{ID: data.Teams.Away.ID, TriCode: data.Teams.Away.TriCode, Name: data.Teams.Away.Name},
		HomeTeam: play.Team{ID: data.Teams.Home.ID, TriCode: data.Teams.Home.TriCode, Name: data.Teams.Home.Name},
	}
	if value := strings.TrimSpace(data.Datetime.DateTime); value != "" {
		startAt, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return play.FeedTable{}, fmt.Errorf("parse feed game datetime %q: %w", value, err)
		}
		game.StartAt = startAt.UTC()
		game.Date = startAt.In(loc).Format(time.DateOnly)
	}

	items := envelope.LiveData.Plays.AllPlays
	plays := make([]play.FeedPlay, 0, len(items))
	for _, item := range items {
		row := play.FeedPlay{
			GameID:         game.ID,
			GameDate:       game.Date,
			AwayTeamID:     game.AwayTeam.ID,
			AwayTeamCode:   game.AwayTeam.TriCode,
			HomeTeamID:     game.HomeTeam.ID,
			HomeTeamCode:   game.HomeTeam.TriCode,
			EventID:        item.About.EventID,
			EventIdx:       item.About.EventIdx,
			EventName:      item.Result.Event,
			EventType:      eventtype.Type(item.Result.EventTypeID),
			APIDescription: item.Result.Description,
			X:              item.Coordinates.X,
			Y:              item.Coordinates.Y,
			Period:         item.About.Period,
			TimeElapsed:    item.About.PeriodTime,
			TimeRemaining:  item.About.PeriodTimeRemaining,
		}
		if len(item.Players) > 0 {
			row.Player1ID, row.Player1Name = participant(item.Players[0])
		}
		if len(item.Players) > 1 {
			row.Player2ID, row.Player2Name = participant(item.Players[1])
		}
		plays = append(plays, row)
	}

	return play.FeedTable{Game: game, Plays: plays}, nil
}

func participant(p feedParticipant) (*int64, *string) {
	id := p.Player.ID
	name := p.Player.FullName
	return &id, &name
}
