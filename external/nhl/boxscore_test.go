package nhl

import (
	"testing"

	"github.com/riskibarqy/hockey-pbp/internal/domain/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBoxscore_Fixture(t *testing.T) {
	t.Parallel()

	entries, err := ParseBoxscore(loadFixture(t, "boxscore_2018020001.json"))
	require.NoError(t, err)

	assert.Equal(t, []roster.Entry{
		{Side: roster.SideAway, TeamID: 8, PlayerID: "ID8471679", PlayerName: "Carey Price", Position: "G", JerseyNumber: "31"},
		{Side: roster.SideAway, TeamID: 8, PlayerID: "ID8477503", PlayerName: "Max Domi", Position: "C", JerseyNumber: "13"},
		{Side: roster.SideHome, TeamID: 10, PlayerID: "ID8475166", PlayerName: "John Tavares", Position: "C", JerseyNumber: "91"},
		{Side: roster.SideHome, TeamID: 10, PlayerID: "ID8476853", PlayerName: "Morgan Rielly", Position: "D", JerseyNumber: "44"},
	}, entries)

	assert.Equal(t, "away13", entries[1].GUID())
}

func TestParseBoxscore_EmptyAndMalformed(t *testing.T) {
	t.Parallel()

	entries, err := ParseBoxscore([]byte(`{"teams":{"away":{"team":{"id":8}},"home":{"team":{"id":10}}}}`))
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = ParseBoxscore([]byte(`[`))
	require.Error(t, err)
}
