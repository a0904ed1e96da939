package usecase

import (
	"fmt"

	"github.com/riskibarqy/hockey-pbp/internal/domain/eventtype"
	"github.com/riskibarqy/hockey-pbp/internal/domain/faceoff"
	"github.com/riskibarqy/hockey-pbp/internal/domain/play"
	"github.com/riskibarqy/hockey-pbp/internal/domain/roster"
)

// DeriveFaceoffs projects the FACEOFF records with roster-form participant
// ids and the zone each participant took the draw in. A faceoff missing
// either participant is rejected.
func DeriveFaceoffs(records []play.Record) ([]faceoff.Record, error) {
	out := make([]faceoff.Record, 0)
	for _, rec := range records {
		if rec.EventType != eventtype.Faceoff {
			continue
		}
		if rec.Player1ID == nil || rec.Player2ID == nil {
			return nil, fmt.Errorf("%w: faceoff event %d (period %d, %s) is missing a participant",
				ErrInvalidInput, rec.EventID, rec.Period, rec.TimeElapsed)
		}

		zone := faceoff.ZoneFromDescription(rec.ReportDescription)
		out = append(out, faceoff.Record{
			GameID:          rec.GameID,
			EventID:         rec.EventID,
			EventType:       rec.EventType,
			Period:          rec.Period,
			Player1Strength: rec.Player1Strength,
			Player2Strength: rec.Player2Strength,
			TimeElapsed:     rec.TimeElapsed,
			X:               rec.X,
			Y:               rec.Y,
			Description:     rec.ReportDescription,
			Player1ID:       roster.FormatPlayerID(*rec.Player1ID),
			Player2ID:       roster.FormatPlayerID(*rec.Player2ID),
			OnIce:           rec.OnIce,
			Player1Zone:     zone,
			Player2Zone:     zone.Opposite(),
		})
	}
	return out, nil
}
