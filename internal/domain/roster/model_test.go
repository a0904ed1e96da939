package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndex_Resolve(t *testing.T) {
	t.Parallel()

	ix := NewIndex([]Entry{
		{Side: SideAway, PlayerID: "ID8471214", JerseyNumber: "8"},
		{Side: SideHome, PlayerID: "ID8474141", JerseyNumber: "8"},
		{Side: SideHome, PlayerID: "ID8470000", JerseyNumber: ""},
	})

	got, ok := ix.Resolve(SideAway, "8")
	assert.True(t, ok)
	assert.Equal(t, "ID8471214", got)

	got, ok = ix.Resolve(SideHome, "8")
	assert.True(t, ok)
	assert.Equal(t, "ID8474141", got)

	got, ok = ix.Resolve(SideAway, "77")
	assert.False(t, ok)
	assert.Equal(t, "away77", got)

	got, ok = ix.Resolve(SideHome, "")
	assert.False(t, ok)
	assert.Empty(t, got)
	assert.Len(t, ix, 2)
}

func TestPlayerIDFormatting(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ID8471214", FormatPlayerID(8471214))

	id, ok := NumericPlayerID("ID8471214")
	assert.True(t, ok)
	assert.Equal(t, int64(8471214), id)

	for _, raw := range []string{"away7", "8471214", "ID", "IDabc", ""} {
		_, ok := NumericPlayerID(raw)
		assert.False(t, ok, "raw=%q", raw)
	}
}
