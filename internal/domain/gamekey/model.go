package gamekey

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidInput = errors.New("invalid input")

const (
	MinYear       = 1917
	MinGameNumber = 0
	MaxGameNumber = 1313
)

// Season is the human-facing season flag used by callers.
type Season string

const (
	SeasonPre     Season = "pre"
	SeasonRegular Season = "regular"
	SeasonPost    Season = "post"
	SeasonAllStar Season = "all-star"
)

// seasonCodes is the single source of truth for Season <-> two digit code.
var seasonCodes = []struct {
	season Season
	code   string
}{
	{SeasonPre, "01"},
	{SeasonRegular, "02"},
	{SeasonPost, "03"},
	{SeasonAllStar, "04"},
}

func AllSeasons() []Season {
	out := make([]Season, 0, len(seasonCodes))
	for _, item := range seasonCodes {
		out = append(out, item.season)
	}
	return out
}

func ParseSeason(raw string) (Season, error) {
	value := Season(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := value.Code(); !ok {
		return "", fmt.Errorf("%w: season must be one of %v, got %q", ErrInvalidInput, AllSeasons(), raw)
	}
	return value, nil
}

func (s Season) Code() (string, bool) {
	for _, item := range seasonCodes {
		if item.season == s {
			return item.code, true
		}
	}
	return "", false
}

func SeasonFromCode(code string) (Season, bool) {
	for _, item := range seasonCodes {
		if item.code == code {
			return item.season, true
		}
	}
	return "", false
}

// Key identifies one game. Year is the season starting year (2018 for 2018-2019).
type Key struct {
	Year   int    `json:"year" validate:"gte=1917"`
	Season Season `json:"season" validate:"oneof=pre regular post all-star"`
	Number int    `json:"game_number" validate:"gte=0,lte=1313"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func keyValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

func (k Key) Validate() error {
	if err := keyValidator().Struct(k); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return fmt.Errorf("%w: %s", ErrInvalidInput, describeFieldError(fieldErrs[0]))
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Field() {
	case "Year":
		return fmt.Sprintf("year must be >= %d, got %v", MinYear, fe.Value())
	case "Season":
		return fmt.Sprintf("season must be one of %v, got %q", AllSeasons(), fe.Value())
	case "Number":
		return fmt.Sprintf("game number must be between %d and %d, got %v", MinGameNumber, MaxGameNumber, fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}

func (k Key) FeedID() (string, error) {
	return EncodeFeedID(k.Year, k.Season, k.Number)
}

func (k Key) ReportID() (string, error) {
	if err := k.Validate(); err != nil {
		return "", err
	}
	return EncodeReportID(k.Season, k.Number)
}

func (k Key) String() string {
	return fmt.Sprintf("%d/%s/%d", k.Year, k.Season, k.Number)
}

// EncodeFeedID builds the feed-style id: year + season code + 4 digit game number.
func EncodeFeedID(year int, season Season, number int) (string, error) {
	key := Key{Year: year, Season: season, Number: number}
	if err := key.Validate(); err != nil {
		return "", err
	}
	code, _ := season.Code()
	return strconv.Itoa(year) + code + padGameNumber(number), nil
}

// EncodeReportID builds the report-style id: season code + 4 digit game number.
func EncodeReportID(season Season, number int) (string, error) {
	code, ok := season.Code()
	if !ok {
		return "", fmt.Errorf("%w: season must be one of %v, got %q", ErrInvalidInput, AllSeasons(), season)
	}
	if number < MinGameNumber || number > MaxGameNumber {
		return "", fmt.Errorf("%w: game number must be between %d and %d, got %d", ErrInvalidInput, MinGameNumber, MaxGameNumber, number)
	}
	return code + padGameNumber(number), nil
}

func DecodeReportID(id string) (Season, int, error) {
	id = strings.TrimSpace(id)
	if len(id) < 3 {
		return "", 0, fmt.Errorf("%w: report id %q is too short", ErrInvalidInput, id)
	}
	season, ok := SeasonFromCode(id[:2])
	if !ok {
		return "", 0, fmt.Errorf("%w: unrecognized season code %q", ErrInvalidInput, id[:2])
	}
	number, err := strconv.Atoi(id[2:])
	if err != nil {
		return "", 0, fmt.Errorf("%w: game number %q is not numeric", ErrInvalidInput, id[2:])
	}
	return season, number, nil
}

// ReportYearPath is the season segment of the report URL, e.g. 20182019.
func ReportYearPath(year int) string {
	return strconv.Itoa(year) + strconv.Itoa(year+1)
}

func padGameNumber(number int) string {
	return fmt.Sprintf("%04d", number)
}
