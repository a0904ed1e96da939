package nhl_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/riskibarqy/hockey-pbp/external/nhl"
	"github.com/riskibarqy/hockey-pbp/internal/domain/eventtype"
	"github.com/riskibarqy/hockey-pbp/internal/domain/faceoff"
	"github.com/riskibarqy/hockey-pbp/internal/domain/gamekey"
	"github.com/riskibarqy/hockey-pbp/internal/domain/play"
	"github.com/riskibarqy/hockey-pbp/internal/domain/rawdata"
	"github.com/riskibarqy/hockey-pbp/internal/domain/roster"
	"github.com/riskibarqy/hockey-pbp/internal/platform/logging"
	"github.com/riskibarqy/hockey-pbp/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRosterSource serves feed and report from the real client and a fixed
// two-player roster.
type stubRosterSource struct {
	*nhl.Client
	entries []roster.Entry
}

func (s stubRosterSource) FetchRoster(context.Context, gamekey.Key) ([]roster.Entry, []rawdata.Payload, error) {
	return s.entries, nil, nil
}

func TestGamePipeline_OpeningNight2018(t *testing.T) {
	t.Parallel()

	routes := map[string]string{
		"/api/v1/game/2018020001/feed/live": "testdata/feed_2018020001.json",
		"/reports/20182019/PL020001.HTM":    "testdata/PL020001.HTM",
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_, _ = w.Write(raw)
	}))
	t.Cleanup(srv.Close)

	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	source := stubRosterSource{
		Client: nhl.NewClient(nhl.ClientConfig{
			StatsBaseURL:  srv.URL + "/api/v1",
			ReportBaseURL: srv.URL + "/reports",
			Location:      loc,
			Logger:        logging.NewNop(),
		}),
		entries: []roster.Entry{
			{Side: roster.SideAway, TeamID: 8, PlayerID: "ID8477503", PlayerName: "Max Domi", Position: "C", JerseyNumber: "13"},
			{Side: roster.SideHome, TeamID: 10, PlayerID: "ID8475166", PlayerName: "John Tavares", Position: "C", JerseyNumber: "91"},
		},
	}

	svc := usecase.NewGamePipelineService(source, nil, nil, nil, usecase.GamePipelineConfig{}, logging.NewNop())
	got, err := svc.Run(context.Background(), gamekey.Key{Year: 2018, Season: gamekey.SeasonRegular, Number: 1})
	require.NoError(t, err)

	types := make([]eventtype.Type, 0, len(got.Records))
	for _, rec := range got.Records {
		types = append(types, rec.EventType)
		assert.Equal(t, int64(2018020001), rec.GameID)
		assert.Equal(t, "2018-10-03", rec.GameDate)
	}
	assert.Equal(t, []eventtype.Type{
		eventtype.Faceoff,
		eventtype.Hit,
		eventtype.Faceoff,
		eventtype.Giveaway,
	}, types, "clockless events are dropped and only plays present in both sources survive")

	opening := got.Records[0]
	assert.Equal(t, "3", opening.ReportEventID)
	assert.Equal(t, [play.SlotsPerSide]string{"ID8477503", "away21", "away27", "away26", "away6", "away31"}, opening.OnIce.Away)
	assert.Equal(t, "ID8475166", opening.OnIce.Home[0])
	assert.Equal(t, "home16", opening.OnIce.Home[1])

	require.Len(t, got.Faceoffs, 2)
	assert.Equal(t, faceoff.ZoneNeutral, got.Faceoffs[0].Player1Zone)
	assert.Equal(t, faceoff.ZoneNeutral, got.Faceoffs[0].Player2Zone)
	assert.Equal(t, "ID8475166", got.Faceoffs[0].Player1ID)
	assert.Equal(t, faceoff.ZoneOffensive, got.Faceoffs[1].Player1Zone)
	assert.Equal(t, faceoff.ZoneDefensive, got.Faceoffs[1].Player2Zone)
	assert.Equal(t, play.StrengthPowerPlay, got.Faceoffs[1].Player1Strength)
	assert.Equal(t, play.StrengthShortHanded, got.Faceoffs[1].Player2Strength)

	assert.Equal(t, 9, got.Stats.FeedPlays)
	assert.Equal(t, 9, got.Stats.ReportRows)
	assert.Equal(t, 1, got.Stats.UnmappedReportRows)
	assert.Contains(t, got.Stats.UnresolvedSlots, "home44")
	assert.Len(t, got.Payloads, 2)
}
