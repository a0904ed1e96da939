package nhl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/hockey-pbp/internal/domain/gamekey"
	"github.com/riskibarqy/hockey-pbp/internal/domain/play"
	"github.com/riskibarqy/hockey-pbp/internal/domain/rawdata"
	"github.com/riskibarqy/hockey-pbp/internal/domain/roster"
	"github.com/riskibarqy/hockey-pbp/internal/platform/logging"
	"github.com/riskibarqy/hockey-pbp/internal/platform/resilience"
	"github.com/riskibarqy/hockey-pbp/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultStatsBaseURL  = "https://statsapi.web.nhl.com/api/v1"
	DefaultReportBaseURL = "http://www.nhl.com/scores/htmlreports"

	defaultTimeout = 20 * time.Second
	maxBodyBytes   = 16 << 20
)

var errNHLTransient = crerr.New("nhl transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	StatsBaseURL   string
	ReportBaseURL  string
	Timeout        time.Duration
	Location       *time.Location
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches the live feed, boxscore and HTML report of a game. It never
// retries; identical in-flight requests share one upstream call.
type Client struct {
	httpClient    *http.Client
	statsBaseURL  string
	reportBaseURL string
	location      *time.Location
	logger        *logging.Logger
	breaker       *resilience.CircuitBreaker
	flight        singleflight.Group
	now           func() time.Time
}

var _ usecase.GameSource = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	location := cfg.Location
	if location == nil {
		location = time.UTC
	}

	return &Client{
		httpClient:    httpClient,
		statsBaseURL:  baseURLOrDefault(cfg.StatsBaseURL, DefaultStatsBaseURL),
		reportBaseURL: baseURLOrDefault(cfg.ReportBaseURL, DefaultReportBaseURL),
		location:      location,
		logger:        logger,
		breaker:       resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		now:           time.Now,
	}
}

func (c *Client) FetchFeed(ctx context.Context, key gamekey.Key) (play.FeedTable, []rawdata.Payload, error) {
	feedID, err := key.FeedID()
	if err != nil {
		return play.FeedTable{}, nil, err
	}

	url := c.statsBaseURL + "/game/" + feedID + "/feed/live"
	raw, err := c.get(ctx, url)
	if err != nil {
		return play.FeedTable{}, nil, fmt.Errorf("fetch feed game=%s: %w", feedID, err)
	}

	table, err := ParseFeed(raw, c.location)
	if err != nil {
		return play.FeedTable{}, nil, fmt.Errorf("parse feed game=%s: %w", feedID, err)
	}

	payload := c.payload(rawdata.SourceStatsAPI, rawdata.EntityFeed, feedID, url, "application/json", raw)
	return table, []rawdata.Payload{payload}, nil
}

func (c *Client) FetchRoster(ctx context.Context, key gamekey.Key) ([]roster.Entry, []rawdata.Payload, error) {
	feedID, err := key.FeedID()
	if err != nil {
		return nil, nil, err
	}

	url := c.statsBaseURL + "/game/" + feedID + "/boxscore"
	raw, err := c.get(ctx, url)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch boxscore game=%s: %w", feedID, err)
	}

	entries, err := ParseBoxscore(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("parse boxscore game=%s: %w", feedID, err)
	}

	payload := c.payload(rawdata.SourceStatsAPI, rawdata.EntityBoxscore, feedID, url, "application/json", raw)
	return entries, []rawdata.Payload{payload}, nil
}

func (c *Client) FetchReport(ctx context.Context, key gamekey.Key) ([]play.ReportPlay, []rawdata.Payload, error) {
	reportID, err := key.ReportID()
	if err != nil {
		return nil, nil, err
	}

	url := c.reportBaseURL + "/" + gamekey.ReportYearPath(key.Year) + "/PL" + reportID + ".HTM"
	raw, err := c.get(ctx, url)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch report game=%s: %w", key, err)
	}

	rows, err := ParseReport(raw, reportID)
	if err != nil {
		return nil, nil, fmt.Errorf("parse report game=%s: %w", key, err)
	}

	feedID, _ := key.FeedID()
	payload := c.payload(rawdata.SourceHTMLReport, rawdata.EntityReport, feedID, url, "text/html", raw)
	return rows, []rawdata.Payload{payload}, nil
}

func (c *Client) payload(source, entity, feedID, url, contentType string, raw []byte) rawdata.Payload {
	p := rawdata.NewPayload(source, entity, feedID, url, contentType, raw, c.now().UTC())
	p.GameID, _ = strconv.ParseInt(feedID, 10, 64)
	return p
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	ch := c.flight.DoChan(url, func() (any, error) {
		// Shared by every caller of url: detach from the leader's cancellation
		// and bound it by the client timeout instead.
		reqCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.httpClient.Timeout)
		defer cancel()

		var raw []byte
		err := c.breaker.Execute(func() error {
			var reqErr error
			raw, reqErr = c.executeRequest(reqCtx, url)
			return reqErr
		}, isCircuitFailure)
		return raw, err
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}

	if errors.Is(res.Err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "nhl circuit breaker rejected request", "url", url, "state", c.breaker.State())
		return nil, fmt.Errorf("%w: nhl upstream is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	if res.Err != nil {
		return nil, res.Err
	}
	if res.Shared {
		c.logger.DebugContext(ctx, "nhl request shared with concurrent caller", "url", url)
	}

	raw, ok := res.Val.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", res.Val)
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	started := c.now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.logger.WarnContext(ctx, "nhl request failed", "url", url, "error", err)
		return nil, upstreamError(crerr.Wrap(err, "send request"), true)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, upstreamError(crerr.Wrap(err, "read response body"), true)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WarnContext(ctx, "nhl request returned non-2xx", "url", url, "status", resp.StatusCode)
		return nil, upstreamError(
			crerr.Newf("upstream status=%d body=%s", resp.StatusCode, abbreviateBody(raw)),
			isTransientStatus(resp.StatusCode),
		)
	}

	c.logger.DebugContext(ctx, "nhl request completed",
		"url", url,
		"bytes", len(raw),
		"duration", c.now().Sub(started),
	)
	return raw, nil
}

// upstreamError marks err as UpstreamUnavailable, and as transient when the
// failure should count against the circuit breaker.
func upstreamError(err error, transient bool) error {
	if transient {
		return fmt.Errorf("%w: %w: %w", usecase.ErrUpstreamUnavailable, errNHLTransient, err)
	}
	return fmt.Errorf("%w: %w", usecase.ErrUpstreamUnavailable, err)
}

func isCircuitFailure(err error) bool {
	return errors.Is(err, errNHLTransient)
}

func isTransientStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}

func baseURLOrDefault(value, fallback string) string {
	value = strings.TrimRight(strings.TrimSpace(value), "/")
	if value == "" {
		return fallback
	}
	return value
}
