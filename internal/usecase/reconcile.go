package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/riskibarqy/hockey-pbp/internal/domain/eventtype"
	"github.com/riskibarqy/hockey-pbp/internal/domain/play"
)

type ReconcileOptions struct {
	// MatchEventType additionally requires both rows to carry the same
	// canonical event type. Off by default: the join key is
	// (game id, period, time elapsed) only.
	MatchEventType bool
}

type joinKey struct {
	gameID  int64
	period  int
	elapsed string
}

type reportRow struct {
	play.ReportPlay
	gameID int64
}

// Reconcile inner-joins feed plays with report rows of the same game on
// (game id, period, time elapsed). Feed order is kept; report rows sharing
// a key are expanded in report order, so duplicate keys multiply. Clockless
// events and report rows with an unmapped play code never match.
func Reconcile(feed []play.FeedPlay, report []play.ReportPlay, year int, opts ReconcileOptions) ([]play.Record, error) {
	byKey := make(map[joinKey][]reportRow, len(report))
	for _, rp := range report {
		gameID, err := ReportGameID(year, rp.GameID)
		if err != nil {
			return nil, err
		}
		if !rp.EventType.IsMapped() || eventtype.IsClockless(rp.EventType) {
			continue
		}
		key := joinKey{gameID: gameID, period: rp.Period, elapsed: rp.TimeElapsed}
		byKey[key] = append(byKey[key], reportRow{ReportPlay: rp, gameID: gameID})
	}

	out := make([]play.Record, 0, len(feed))
	for _, fp := range feed {
		if eventtype.IsClockless(fp.EventType) {
			continue
		}
		key := joinKey{gameID: fp.GameID, period: fp.Period, elapsed: fp.TimeElapsed}
		for _, rp := range byKey[key] {
			if opts.MatchEventType && rp.EventType != fp.EventType {
				continue
			}
			out = append(out, mergeRecord(fp, rp.ReportPlay))
		}
	}
	return out, nil
}

// ReportGameID aligns a report game id ("020001") with the feed's integer id
// by prefixing the season's starting year.
func ReportGameID(year int, reportGameID string) (int64, error) {
	raw := strconv.Itoa(year) + strings.TrimSpace(reportGameID)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: report game id %q is not numeric", ErrInvalidInput, reportGameID)
	}
	return id, nil
}

func mergeRecord(fp play.FeedPlay, rp play.ReportPlay) play.Record {
	return play.Record{
		GameID:            fp.GameID,
		GameDate:          fp.GameDate,
		AwayTeamID:        fp.AwayTeamID,
		AwayTeamCode:      fp.AwayTeamCode,
		HomeTeamID:        fp.HomeTeamID,
		HomeTeamCode:      fp.HomeTeamCode,
		EventID:           fp.EventID,
		EventIdx:          fp.EventIdx,
		ReportEventID:     rp.EventID,
		EventName:         fp.EventName,
		EventType:         fp.EventType,
		Period:            fp.Period,
		TimeElapsed:       fp.TimeElapsed,
		TimeRemaining:     fp.TimeRemaining,
		X:                 fp.X,
		Y:                 fp.Y,
		Player1ID:         fp.Player1ID,
		Player1Name:       fp.Player1Name,
		Player2ID:         fp.Player2ID,
		Player2Name:       fp.Player2Name,
		Player1Strength:   rp.Player1Strength,
		Player2Strength:   rp.Player2Strength,
		APIDescription:    fp.APIDescription,
		ReportDescription: rp.ReportDescription,
		OnIce:             rp.OnIce,
	}
}
