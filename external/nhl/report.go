package nhl

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/hockey-pbp/internal/domain/eventtype"
	"github.com/riskibarqy/hockey-pbp/internal/domain/play"
	"github.com/valyala/bytebufferpool"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrMalformedReport is returned when a report row cannot be read.
var ErrMalformedReport = crerr.New("malformed play-by-play report")

const (
	// reportHeaderRows leading colored rows are page headers, not plays.
	reportHeaderRows = 4
	clockWidth       = 5
)

// Cell positions within a play row.
const (
	cellEventID = iota
	cellPeriod
	cellStrength
	cellClock
	cellPlayCode
	cellDescription
	cellAwayOnIce
	cellHomeOnIce
	reportCells
)

var rowClasses = []string{"oddColor", "evenColor"}

// ParseReport reads the play rows of an HTML play-by-play report. Jersey
// numbers are left in the on-ice slots; roster substitution happens later.
func ParseReport(raw []byte, reportGameID string) ([]play.ReportPlay, error) {
	doc, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, crerr.Wrap(err, "parse report html")
	}

	rows := collectPlayRows(doc)
	if len(rows) <= reportHeaderRows {
		return []play.ReportPlay{}, nil
	}
	rows = rows[reportHeaderRows:]

	out := make([]play.ReportPlay, 0, len(rows))
	for i, row := range rows {
		cells := rowCells(row)
		if len(cells) < reportCells {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected at least %d",
				ErrMalformedReport, i+reportHeaderRows, len(cells), reportCells)
		}

		rp, err := parseReportRow(cells, reportGameID)
		if err != nil {
			return nil, crerr.Wrapf(err, "report row %d (event %q)", i+reportHeaderRows, cells[cellEventID])
		}
		out = append(out, rp)
	}
	return out, nil
}

func parseReportRow(cells []string, reportGameID string) (play.ReportPlay, error) {
	periodText := strings.TrimSpace(cells[cellPeriod])
	period, err := strconv.Atoi(periodText)
	if err != nil {
		return play.ReportPlay{}, fmt.Errorf("%w: non-numeric period %q", ErrMalformedReport, periodText)
	}

	elapsed, remaining := SplitClock(cells[cellClock])
	strength := play.Strength(strings.TrimSpace(cells[cellStrength]))
	playCode := strings.TrimSpace(cells[cellPlayCode])
	eventType, _ := eventtype.Lookup(playCode)

	rp := play.ReportPlay{
		GameID:            reportGameID,
		EventID:           strings.TrimSpace(cells[cellEventID]),
		Period:            period,
		Player1Strength:   strength,
		Player2Strength:   strength.Opposite(),
		TimeElapsed:       elapsed,
		TimeRemaining:     remaining,
		PlayCode:          playCode,
		EventType:         eventType,
		ReportDescription: cells[cellDescription],
		AwayOnIceText:     cells[cellAwayOnIce],
		HomeOnIceText:     cells[cellHomeOnIce],
	}
	rp.OnIce.Away = SplitOnIce(cells[cellAwayOnIce])
	rp.OnIce.Home = SplitOnIce(cells[cellHomeOnIce])
	return rp, nil
}

// SplitClock separates the merged "elapsed+remaining" cell two characters
// past the first colon and zero-pads both halves to MM:SS width.
func SplitClock(text string) (elapsed, remaining string) {
	cut := strings.IndexByte(text, ':') + 3
	cut = min(max(cut, 0), len(text))
	return zeroPad(text[:cut], clockWidth), zeroPad(text[cut:], clockWidth)
}

// SplitOnIce extracts up to six jersey numbers from an on-ice cell. Position
// letters are dropped and missing slots stay empty.
func SplitOnIce(text string) [play.SlotsPerSide]string {
	var slots [play.SlotsPerSide]string

	digits := strings.Map(func(r rune) rune {
		if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') {
			return -1
		}
		return r
	}, strings.TrimSpace(text))
	if digits == "" {
		return slots
	}

	for i, part := range strings.SplitN(digits, " ", play.SlotsPerSide+1) {
		if i >= play.SlotsPerSide {
			break
		}
		slots[i] = part
	}
	return slots
}

func zeroPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

func collectPlayRows(root *html.Node) []*html.Node {
	var rows []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Tr && hasRowClass(n) {
			rows = append(rows, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return rows
}

func hasRowClass(n *html.Node) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, class := range strings.Fields(attr.Val) {
			for _, want := range rowClasses {
				if class == want {
					return true
				}
			}
		}
	}
	return false
}

// rowCells returns the normalized text of the row's own td children.
func rowCells(tr *html.Node) []string {
	cells := make([]string, 0, reportCells)
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Td {
			cells = append(cells, cellText(c))
		}
	}
	return cells
}

func cellText(td *html.Node) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			_, _ = buf.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(td)

	text := strings.ReplaceAll(buf.String(), "\u00a0", " ")
	return strings.ReplaceAll(text, "\n", "")
}
