package usecase

import (
	"errors"
	"testing"

	"github.com/riskibarqy/hockey-pbp/internal/domain/eventtype"
	"github.com/riskibarqy/hockey-pbp/internal/domain/faceoff"
	"github.com/riskibarqy/hockey-pbp/internal/domain/play"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func faceoffRecord(description string) play.Record {
	return play.Record{
		GameID:            2018020001,
		EventID:           53,
		EventType:         eventtype.Faceoff,
		Period:            1,
		TimeElapsed:       "00:51",
		Player1ID:         int64Ptr(8475166),
		Player2ID:         int64Ptr(8477503),
		Player1Strength:   play.StrengthPowerPlay,
		Player2Strength:   play.StrengthShortHanded,
		ReportDescription: description,
	}
}

func TestDeriveFaceoffs_Zones(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		description string
		want1       faceoff.Zone
		want2       faceoff.Zone
	}{
		{
			name:        "offensive",
			description: "TOR won Off. Zone - MTL #11 DOMI vs TOR #91 TAVARES",
			want1:       faceoff.ZoneOffensive,
			want2:       faceoff.ZoneDefensive,
		},
		{
			name:        "defensive",
			description: "MTL won Def. Zone - MTL #11 DOMI vs TOR #91 TAVARES",
			want1:       faceoff.ZoneDefensive,
			want2:       faceoff.ZoneOffensive,
		},
		{
			name:        "neutral",
			description: "TOR won Neu. Zone - MTL #11 DOMI vs TOR #91 TAVARES",
			want1:       faceoff.ZoneNeutral,
			want2:       faceoff.ZoneNeutral,
		},
		{
			name:        "no marker",
			description: "TOR won - MTL #11 DOMI vs TOR #91 TAVARES",
			want1:       faceoff.ZoneUndefined,
			want2:       faceoff.ZoneUndefined,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DeriveFaceoffs([]play.Record{faceoffRecord(tc.description)})
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, tc.want1, got[0].Player1Zone)
			assert.Equal(t, tc.want2, got[0].Player2Zone)
		})
	}
}

func TestDeriveFaceoffs_ProjectsFaceoffsOnly(t *testing.T) {
	t.Parallel()

	hit := faceoffRecord("")
	hit.EventType = eventtype.Hit
	hit.Player2ID = nil

	got, err := DeriveFaceoffs([]play.Record{hit, faceoffRecord("Off. Zone")})
	require.NoError(t, err)
	require.Len(t, got, 1)

	fo := got[0]
	assert.Equal(t, "ID8475166", fo.Player1ID)
	assert.Equal(t, "ID8477503", fo.Player2ID)
	assert.Equal(t, play.StrengthPowerPlay, fo.Player1Strength)
	assert.Equal(t, play.StrengthShortHanded, fo.Player2Strength)
	assert.Equal(t, int64(2018020001), fo.GameID)
}

func TestDeriveFaceoffs_MissingParticipant(t *testing.T) {
	t.Parallel()

	rec := faceoffRecord("Neu. Zone")
	rec.Player2ID = nil

	_, err := DeriveFaceoffs([]play.Record{rec})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDeriveFaceoffs_Empty(t *testing.T) {
	t.Parallel()

	got, err := DeriveFaceoffs(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
