package usecase

import (
	"github.com/riskibarqy/hockey-pbp/internal/domain/play"
	"github.com/riskibarqy/hockey-pbp/internal/domain/roster"
)

// SubstituteRoster rewrites every filled on-ice slot from a jersey number
// into the roster player id. Slots without a roster match keep their GUID
// ("away7") and are reported back, deduplicated, in first-seen order.
func SubstituteRoster(rows []play.ReportPlay, entries []roster.Entry) ([]play.ReportPlay, []string) {
	index := roster.NewIndex(entries)

	out := make([]play.ReportPlay, len(rows))
	seen := make(map[string]struct{})
	var unresolved []string

	resolve := func(side roster.Side, slots [play.SlotsPerSide]string) [play.SlotsPerSide]string {
		for i, jersey := range slots {
			value, ok := index.Resolve(side, jersey)
			slots[i] = value
			if ok || value == "" {
				continue
			}
			if _, dup := seen[value]; !dup {
				seen[value] = struct{}{}
				unresolved = append(unresolved, value)
			}
		}
		return slots
	}

	for i, row := range rows {
		row.OnIce.Away = resolve(roster.SideAway, row.OnIce.Away)
		row.OnIce.Home = resolve(roster.SideHome, row.OnIce.Home)
		out[i] = row
	}
	return out, unresolved
}
