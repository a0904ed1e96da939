package nhl

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/hockey-pbp/internal/domain/gamekey"
	"github.com/riskibarqy/hockey-pbp/internal/domain/rawdata"
	"github.com/riskibarqy/hockey-pbp/internal/platform/logging"
	"github.com/riskibarqy/hockey-pbp/internal/platform/resilience"
	"github.com/riskibarqy/hockey-pbp/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var openingNight = gamekey.Key{Year: 2018, Season: gamekey.SeasonRegular, Number: 1}

type fixtureServer struct {
	*httptest.Server
	hits atomic.Int32
}

// newFixtureServer serves the 2018020001 fixtures under the stats and
// report paths of the real upstreams.
func newFixtureServer(t *testing.T) *fixtureServer {
	t.Helper()

	routes := map[string][]byte{
		"/api/v1/game/2018020001/feed/live": loadFixture(t, "feed_2018020001.json"),
		"/api/v1/game/2018020001/boxscore":  loadFixture(t, "boxscore_2018020001.json"),
		"/reports/20182019/PL020001.HTM":    loadFixture(t, "PL020001.HTM"),
	}

	fs := &fixtureServer{}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fs.hits.Add(1)
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(body)
	}))
	t.Cleanup(fs.Close)
	return fs
}

func newTestClient(baseURL string, breaker resilience.CircuitBreakerConfig) *Client {
	return NewClient(ClientConfig{
		StatsBaseURL:   baseURL + "/api/v1/",
		ReportBaseURL:  baseURL + "/reports",
		Timeout:        2 * time.Second,
		Location:       time.UTC,
		Logger:         logging.NewNop(),
		CircuitBreaker: breaker,
	})
}

func TestClient_FetchFeed(t *testing.T) {
	t.Parallel()

	srv := newFixtureServer(t)
	client := newTestClient(srv.URL, resilience.DefaultCircuitBreakerConfig())

	table, payloads, err := client.FetchFeed(context.Background(), openingNight)
	require.NoError(t, err)
	assert.Len(t, table.Plays, 9)

	require.Len(t, payloads, 1)
	p := payloads[0]
	assert.Equal(t, rawdata.SourceStatsAPI, p.Source)
	assert.Equal(t, rawdata.EntityFeed, p.EntityType)
	assert.Equal(t, "2018020001", p.EntityKey)
	assert.Equal(t, int64(2018020001), p.GameID)
	assert.Equal(t, srv.URL+"/api/v1/game/2018020001/feed/live", p.URL)
	assert.Len(t, p.BodyHash, 64)
}

func TestClient_FetchRosterAndReport(t *testing.T) {
	t.Parallel()

	srv := newFixtureServer(t)
	client := newTestClient(srv.URL, resilience.DefaultCircuitBreakerConfig())

	entries, payloads, err := client.FetchRoster(context.Background(), openingNight)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
	require.Len(t, payloads, 1)
	assert.Equal(t, rawdata.EntityBoxscore, payloads[0].EntityType)

	rows, payloads, err := client.FetchReport(context.Background(), openingNight)
	require.NoError(t, err)
	assert.Len(t, rows, 9)
	require.Len(t, payloads, 1)
	assert.Equal(t, rawdata.SourceHTMLReport, payloads[0].Source)
	assert.Equal(t, "text/html", payloads[0].ContentType)
}

func TestClient_InvalidKeyNeverHitsNetwork(t *testing.T) {
	t.Parallel()

	srv := newFixtureServer(t)
	client := newTestClient(srv.URL, resilience.DefaultCircuitBreakerConfig())
	ctx := context.Background()

	bad := []gamekey.Key{
		{Year: 1916, Season: gamekey.SeasonRegular, Number: 1},
		{Year: 2018, Season: "playoffs", Number: 1},
		{Year: 2018, Season: gamekey.SeasonPost, Number: 1314},
	}
	for _, key := range bad {
		_, _, err := client.FetchFeed(ctx, key)
		assert.ErrorIs(t, err, usecase.ErrInvalidInput)
		_, _, err = client.FetchRoster(ctx, key)
		assert.ErrorIs(t, err, usecase.ErrInvalidInput)
		_, _, err = client.FetchReport(ctx, key)
		assert.ErrorIs(t, err, usecase.ErrInvalidInput)
	}
	assert.Zero(t, srv.hits.Load())
}

func TestClient_NotFoundIsUpstreamUnavailable(t *testing.T) {
	t.Parallel()

	srv := newFixtureServer(t)
	client := newTestClient(srv.URL, resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1})

	missing := gamekey.Key{Year: 2018, Season: gamekey.SeasonRegular, Number: 2}
	for range 2 {
		_, _, err := client.FetchFeed(context.Background(), missing)
		if !errors.Is(err, usecase.ErrUpstreamUnavailable) {
			t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
		}
	}
	assert.Equal(t, resilience.CircuitStateClosed, client.breaker.State(), "a 404 is not an upstream outage")
}

func TestClient_ServerErrorsOpenCircuit(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	client := newTestClient(srv.URL, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})
	ctx := context.Background()

	for range 2 {
		_, _, err := client.FetchFeed(ctx, openingNight)
		if !errors.Is(err, usecase.ErrUpstreamUnavailable) {
			t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
		}
	}

	_, _, err := client.FetchFeed(ctx, openingNight)
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable once the circuit opens, got %v", err)
	}
	assert.Equal(t, int32(2), hits.Load(), "no retries and no call while open")
}

func TestClient_TransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := newTestClient(url, resilience.DefaultCircuitBreakerConfig())

	_, _, err := client.FetchRoster(context.Background(), openingNight)
	if !errors.Is(err, usecase.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestClient_ConcurrentFetchesShareOneRequest(t *testing.T) {
	t.Parallel()

	feed := loadFixture(t, "feed_2018020001.json")
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		started <- struct{}{}
		<-release
		_, _ = w.Write(feed)
	}))
	t.Cleanup(srv.Close)

	client := newTestClient(srv.URL, resilience.DefaultCircuitBreakerConfig())

	leaderCtx, cancelLeader := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, _, err := client.FetchFeed(leaderCtx, openingNight)
		leaderErr <- err
	}()
	<-started

	type fetchResult struct {
		plays int
		err   error
	}
	follower := make(chan fetchResult, 1)
	go func() {
		table, _, err := client.FetchFeed(context.Background(), openingNight)
		follower <- fetchResult{plays: len(table.Plays), err: err}
	}()
	// let the follower join the in-flight request
	time.Sleep(50 * time.Millisecond)

	cancelLeader()
	require.ErrorIs(t, <-leaderErr, context.Canceled)

	close(release)
	got := <-follower
	require.NoError(t, got.err)
	assert.Equal(t, 9, got.plays)
	assert.Equal(t, int32(1), hits.Load())
}
