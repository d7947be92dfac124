package sportsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const fixturesBody = `{
  "errors": [],
  "response": [
    {
      "fixture": {"id": 1, "date": "2024-08-17T14:00:00+00:00", "venue": {"name": "Emirates Stadium"}, "status": {"short": "NS", "elapsed": null}},
      "teams": {"home": {"name": "Arsenal"}, "away": {"name": "Wolves"}},
      "goals": {"home": null, "away": null}
    },
    {
      "fixture": {"id": 2, "date": "2024-08-17T11:30:00+00:00", "venue": {"name": "Portman Road"}, "status": {"short": "2H", "elapsed": 71}},
      "teams": {"home": {"name": "Ipswich"}, "away": {"name": "Liverpool"}},
      "goals": {"home": 0, "away": 2}
    }
  ]
}`

const standingsBody = `{
  "errors": [],
  "response": [{"league": {"standings": [[
    {"rank": 1, "points": 89, "goalsDiff": 62, "team": {"name": "Man City"}, "all": {"played": 38}},
    {"rank": 2, "points": 89, "goalsDiff": 45, "team": {"name": "Arsenal"}, "all": {"played": 38}}
  ]]}}]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		BaseURL:           srv.URL,
		APIKey:            "key-1",
		Season:            2024,
		RequestsPerMinute: 60000,
		RetryMax:          1,
		RetryWaitMin:      time.Millisecond,
		RetryWaitMax:      2 * time.Millisecond,
	}, zaptest.NewLogger(t))
}

func TestFixturesOn(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fixtures", r.URL.Path)
		assert.Equal(t, "key-1", r.Header.Get("x-apisports-key"))
		assert.Equal(t, "39", r.URL.Query().Get("league"))
		assert.Equal(t, "2024", r.URL.Query().Get("season"))
		assert.Equal(t, "2024-08-17", r.URL.Query().Get("date"))
		_, _ = w.Write([]byte(fixturesBody))
	})

	fixtures, err := c.FixturesOn(context.Background(), time.Date(2024, 8, 17, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, fixtures, 2)

	assert.Equal(t, "Arsenal", fixtures[0].HomeTeam)
	assert.Equal(t, "Emirates Stadium", fixtures[0].Venue)
	assert.Equal(t, "NS", fixtures[0].Status)
	assert.Nil(t, fixtures[0].HomeGoals)
	assert.True(t, fixtures[0].Kickoff.Equal(time.Date(2024, 8, 17, 14, 0, 0, 0, time.UTC)))

	assert.Equal(t, 71, fixtures[1].Elapsed)
	require.NotNil(t, fixtures[1].AwayGoals)
	assert.Equal(t, 2, *fixtures[1].AwayGoals)
}

func TestLiveAndNextQueries(t *testing.T) {
	var queries []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.RawQuery)
		_, _ = w.Write([]byte(`{"errors": [], "response": []}`))
	})

	live, err := c.LiveFixtures(context.Background())
	require.NoError(t, err)
	assert.Empty(t, live)

	_, err = c.NextFixtures(context.Background(), 10)
	require.NoError(t, err)

	require.Len(t, queries, 2)
	assert.Contains(t, queries[0], "live=all")
	assert.Contains(t, queries[1], "next=10")
}

func TestStandings(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/standings", r.URL.Path)
		_, _ = w.Write([]byte(standingsBody))
	})

	rows, err := c.Standings(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Man City", rows[0].Team)
	assert.Equal(t, 38, rows[0].Played)
	assert.Equal(t, 62, rows[0].GoalDifference)
	assert.Equal(t, 2, rows[1].Rank)
}

func TestAPIErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errors": {"token": "Error/Missing application key."}, "response": []}`))
	})
	_, err := c.Standings(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing application key")

	calls := 0
	c = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	})
	_, err = c.LiveFixtures(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 2, calls)

	c = NewClient(Config{}, nil)
	_, err = c.LiveFixtures(context.Background())
	assert.ErrorIs(t, err, ErrMissingKey)
}
