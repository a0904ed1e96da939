package eventtype

// Type is an event name in the feed vocabulary (eventTypeId).
type Type string

// Unmapped marks a report code with no feed counterpart. It never joins.
const Unmapped Type = ""

const (
	Faceoff        Type = "FACEOFF"
	Giveaway       Type = "GIVEAWAY"
	Takeaway       Type = "TAKEAWAY"
	Hit            Type = "HIT"
	Shot           Type = "SHOT"
	MissedShot     Type = "MISSED_SHOT"
	Stop           Type = "STOP"
	BlockedShot    Type = "BLOCKED_SHOT"
	Goal           Type = "GOAL"
	Penalty        Type = "PENALTY"
	PeriodEnd      Type = "PERIOD_END"
	PeriodStart    Type = "PERIOD_START"
	GameEnd        Type = "GAME_END"
	GameScheduled  Type = "GAME_SCHEDULED"
	PeriodReady    Type = "PERIOD_READY"
	PeriodOfficial Type = "PERIOD_OFFICIAL"
)

var byCode = map[string]Type{
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

var byType = func() map[Type]string {
	out := make(map[Type]string, len(byCode))
	for code, t := range byCode {
		out[t] = code
	}
	return out
}()

// clockless events either carry no elapsed time of their own or are
// timestamped differently by the two sources.
var clockless = map[Type]struct{}{
	GameScheduled:  {},
	PeriodReady:    {},
	PeriodStart:    {},
	PeriodEnd:      {},
	PeriodOfficial: {},
	GameEnd:        {},
	Penalty:        {},
	Stop:           {},
}

// Lookup maps a report short code (FAC, GIVE, ...) to the feed vocabulary.
func Lookup(code string) (Type, bool) {
	t, ok := byCode[code]
	if !ok {
		return Unmapped, false
	}
	return t, true
}

// Code is the inverse of Lookup.
func Code(t Type) (string, bool) {
	code, ok := byType[t]
	return code, ok
}

func IsClockless(t Type) bool {
	_, ok := clockless[t]
	return ok
}

func (t Type) IsMapped() bool {
	return t != Unmapped
}

func Codes() []string {
	out := make([]string, 0, len(byCode))
	for code := range byCode {
		out = append(out, code)
	}
	return out
}
