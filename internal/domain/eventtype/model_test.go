package eventtype

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_FixedTable(t *testing.T) {
	t.Parallel()

	want := map[string]Type{
		"FAC":   Faceoff,
		"GIVE":  Giveaway,
		"TAKE":  Takeaway,
		"HIT":   Hit,
		"SHOT":  Shot,
		"MISS":  MissedShot,
		"STOP":  Stop,
		"BLOCK": BlockedShot,
		"GOAL":  Goal,
		"PENL":  Penalty,
		"PEND":  PeriodEnd,
		"PSTR":  PeriodStart,
		"GEND":  GameEnd,
	}
	require.Len(t, Codes(), 13)

	for code, expected := range want {
		first, ok := Lookup(code)
		require.True(t, ok, "code=%s", code)
		second, _ := Lookup(code)
		assert.Equal(t, expected, first)
		assert.Equal(t, first, second)

		back, ok := Code(first)
		require.True(t, ok)
		assert.Equal(t, code, back)
	}
}

func TestLookup_UnknownCodeIsUnmapped(t *testing.T) {
	t.Parallel()

	for _, code := range []string{"", "fac", "EGT", "CHL", "DELPEN", "GOFF"} {
		got, ok := Lookup(code)
		assert.False(t, ok, "code=%q", code)
		assert.Equal(t, Unmapped, got)
		assert.False(t, got.IsMapped())
	}
}

func TestIsClockless(t *testing.T) {
	t.Parallel()

	var got []string
	for _, candidate := range []Type{
		Faceoff, Giveaway, Takeaway, Hit, Shot, MissedShot, Stop, BlockedShot, Goal,
		Penalty, PeriodEnd, PeriodStart, GameEnd, GameScheduled, PeriodReady, PeriodOfficial,
	} {
		if IsClockless(candidate) {
			got = append(got, string(candidate))
		}
	}
	sort.Strings(got)

	assert.Equal(t, []string{
		"GAME_END", "GAME_SCHEDULED", "PENALTY", "PERIOD_END",
		"PERIOD_OFFICIAL", "PERIOD_READY", "PERIOD_START", "STOP",
	}, got)
}
