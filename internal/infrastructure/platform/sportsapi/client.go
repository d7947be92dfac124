// Package sportsapi implements domain.SportsDataService against API-Football v3.
package sportsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"discoBot/internal/domain"
)

const (
	DefaultBaseURL = "https://v3.football.api-sports.io"
	apiKeyHeader   = "x-apisports-key"
)

var ErrMissingKey = errors.New("sportsapi: API key not configured")

type Config struct {
	BaseURL           string
	APIKey            string
	LeagueID          int
	Season            int
	RequestsPerMinute int

	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	Timeout      time.Duration
}

type Client struct {
	cfg     Config
	http    *retryablehttp.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// leveledZap rewrites retry ERROR lines to WARN since the request may still
// succeed.
type leveledZap struct {
	inner *zap.SugaredLogger
}

func (l leveledZap) Error(msg string, keysAndValues ...interface{}) {
	l.inner.Warnw(msg, keysAndValues...)
}

func (l leveledZap) Warn(msg string, keysAndValues ...interface{}) {
	l.inner.Warnw(msg, keysAndValues...)
}

func (l leveledZap) Info(msg string, keysAndValues ...interface{}) {
	l.inner.Infow(msg, keysAndValues...)
}

func (l leveledZap) Debug(msg string, keysAndValues ...interface{}) {
	l.inner.Debugw(msg, keysAndValues...)
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.LeagueID == 0 {
		cfg.LeagueID = 39
	}
	if cfg.Season == 0 {
		cfg.Season = 2024
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 10
	}
	if cfg.RetryWaitMin <= 0 {
		cfg.RetryWaitMin = 1 * time.Second
	}
	if cfg.RetryWaitMax <= 0 {
		cfg.RetryWaitMax = 10 * time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("sportsapi")

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryMax
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.Logger = retryablehttp.LeveledLogger(leveledZap{logger.Sugar()})

	return &Client{
		cfg:     cfg,
		http:    retryClient,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1),
		logger:  logger,
	}
}

func (c *Client) Season() int {
	return c.cfg.Season
}

type envelope struct {
	Errors   json.RawMessage `json:"errors"`
	Response json.RawMessage `json:"response"`
}

type fixtureItem struct {
	Fixture struct {
		ID    int       `json:"id"`
		Date  time.Time `json:"date"`
		Venue struct {
			Name string `json:"name"`
		} `json:"venue"`
		Status struct {
			Short   string `json:"short"`
			Elapsed *int   `json:"elapsed"`
		} `json:"status"`
	} `json:"fixture"`
	Teams struct {
		Home struct {
			Name string `json:"name"`
		} `json:"home"`
		Away struct {
			Name string `json:"name"`
		} `json:"away"`
	} `json:"teams"`
	Goals struct {
		Home *int `json:"home"`
		Away *int `json:"away"`
	} `json:"goals"`
}

type standingsItem struct {
	League struct {
		Standings [][]struct {
			Rank      int `json:"rank"`
			Points    int `json:"points"`
			GoalsDiff int `json:"goalsDiff"`
			Team      struct {
				Name string `json:"name"`
			} `json:"team"`
			All struct {
				Played int `json:"played"`
			} `json:"all"`
		} `json:"standings"`
	} `json:"league"`
}

func (c *Client) leagueQuery() url.Values {
	q := url.Values{}
	q.Set("league", strconv.Itoa(c.cfg.LeagueID))
	q.Set("season", strconv.Itoa(c.cfg.Season))
	return q
}

func (c *Client) FixturesOn(ctx context.Context, day time.Time) ([]domain.Fixture, error) {
	q := c.leagueQuery()
	q.Set("date", day.Format("2006-01-02"))
	return c.fixtures(ctx, q)
}

func (c *Client) LiveFixtures(ctx context.Context) ([]domain.Fixture, error) {
	q := c.leagueQuery()
	q.Set("live", "all")
	return c.fixtures(ctx, q)
}

func (c *Client) NextFixtures(ctx context.Context, count int) ([]domain.Fixture, error) {
	q := c.leagueQuery()
	q.Set("next", strconv.Itoa(count))
	return c.fixtures(ctx, q)
}

func (c *Client) Standings(ctx context.Context) ([]domain.Standing, error) {
	var items []standingsItem
	if err := c.get(ctx, "/standings", c.leagueQuery(), &items); err != nil {
		return nil, err
	}
	if len(items) == 0 || len(items[0].League.Standings) == 0 {
		return nil, nil
	}

	rows := items[0].League.Standings[0]
	out := make([]domain.Standing, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Standing{
			Rank:           r.Rank,
			Team:           r.Team.Name,
			Played:         r.All.Played,
			Points:         r.Points,
			GoalDifference: r.GoalsDiff,
		})
	}
	return out, nil
}

func (c *Client) fixtures(ctx context.Context, q url.Values) ([]domain.Fixture, error) {
	var items []fixtureItem
	if err := c.get(ctx, "/fixtures", q, &items); err != nil {
		return nil, err
	}

	out := make([]domain.Fixture, 0, len(items))
	for _, it := range items {
		f := domain.Fixture{
			ID:        it.Fixture.ID,
			HomeTeam:  it.Teams.Home.Name,
			AwayTeam:  it.Teams.Away.Name,
			Venue:     it.Fixture.Venue.Name,
			Kickoff:   it.Fixture.Date,
			Status:    it.Fixture.Status.Short,
			HomeGoals: it.Goals.Home,
			AwayGoals: it.Goals.Away,
		}
		if it.Fixture.Status.Elapsed != nil {
			f.Elapsed = *it.Fixture.Status.Elapsed
		}
		out = append(out, f)
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, into any) error {
	if c.cfg.APIKey == "" {
		return ErrMissingKey
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("sportsapi: rate limit wait: %w", err)
	}

	endpoint := c.cfg.BaseURL + path + "?" + q.Encode()
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("sportsapi: build request: %w", err)
	}
	req.Header.Set(apiKeyHeader, c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sportsapi: GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("sportsapi: read %s: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sportsapi: GET %s: unexpected status %d", path, resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("sportsapi: decode %s: %w", path, err)
	}
	if msg := apiErrors(env.Errors); msg != "" {
		return fmt.Errorf("sportsapi: GET %s: %s", path, msg)
	}
	if len(env.Response) == 0 || bytes.Equal(env.Response, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(env.Response, into); err != nil {
		return fmt.Errorf("sportsapi: decode %s response: %w", path, err)
	}
	return nil
}

// apiErrors flattens the "errors" member, which the API sends as an empty
// array on success and as an object keyed by field otherwise.
func apiErrors(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var byField map[string]string
	if err := json.Unmarshal(raw, &byField); err != nil || len(byField) == 0 {
		return ""
	}
	var buf bytes.Buffer
	for k, v := range byField {
		if buf.Len() > 0 {
			buf.WriteString("; ")
		}
		buf.WriteString(k + ": " + v)
	}
	return buf.String()
}

var _ domain.SportsDataService = (*Client)(nil)
