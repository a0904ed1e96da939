package rawdata

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

const (
	SourceStatsAPI   = "nhl-statsapi"
	SourceHTMLReport = "nhl-htmlreport"

	EntityFeed     = "feed"
	EntityBoxscore = "boxscore"
	EntityReport   = "report"
)

// Payload is one raw upstream response kept for audit and replay.
type Payload struct {
	Source      string
	EntityType  string
	EntityKey   string
	GameID      int64
	URL         string
	Body        string
	BodyHash    string
	ContentType string
	FetchedAt   time.Time
}

func NewPayload(source, entityType, entityKey, url, contentType string, body []byte, fetchedAt time.Time) Payload {
	sum := sha256.Sum256(body)
	return Payload{
		Source:      source,
		EntityType:  entityType,
		EntityKey:   entityKey,
		URL:         url,
		Body:        string(body),
		BodyHash:    hex.EncodeToString(sum[:]),
		ContentType: contentType,
		FetchedAt:   fetchedAt,
	}
}
