package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOddsClient(t *testing.T, handler http.HandlerFunc) *OddsAPIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewOddsAPIClient("test-key", "Cleveland Cavaliers", slog.New(slog.NewTextHandler(testWriter{t}, nil)))
	c.baseURL = srv.URL
	c.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }
	return c
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

func spreadsEvent(id, home, away, commence string, homePoint float64, books ...string) string {
	if len(books) == 0 {
		books = []string{"fanduel"}
	}
	bookJSON := ""
	for i, book := range books {
		if i > 0 {
			bookJSON += ","
		}
		bookJSON += fmt.Sprintf(`{
			"key": %q,
			"markets": [{
				"key": "spreads",
				"outcomes": [
					{"name": %q, "price": -110, "point": %g},
					{"name": %q, "price": -110, "point": %g}
				]
			}]
		}`, book, home, homePoint, away, -homePoint)
	}
	return fmt.Sprintf(`{
		"id": %q,
		"sport_key": "basketball_nba",
		"commence_time": %q,
		"home_team": %q,
		"away_team": %q,
		"bookmakers": [%s]
	}`, id, commence, home, away, bookJSON)
}

func TestNextFocusGame_PicksSoonestFutureFocusGame(t *testing.T) {
	body := "[" +
		spreadsEvent("past", "Cleveland Cavaliers", "Boston Celtics", "2026-02-20T00:00:00Z", -3.5) + "," +
		spreadsEvent("other", "New York Knicks", "Miami Heat", "2026-03-02T00:00:00Z", -2.0) + "," +
		spreadsEvent("later", "Cleveland Cavaliers", "Chicago Bulls", "2026-03-10T00:00:00Z", -7.0) + "," +
		spreadsEvent("next", "Cleveland Cavaliers", "Boston Celtics", "2026-03-05T19:00:00Z", -5.5) +
		"]"

	c := testOddsClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v4/sports/basketball_nba/odds", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))
		assert.Equal(t, "spreads", r.URL.Query().Get("markets"))
		fmt.Fprint(w, body)
	})

	game, err := c.NextFocusGame(context.Background())
	require.NoError(t, err)
	require.NotNil(t, game)
	assert.Equal(t, "next", game.ExternalID)
	assert.Equal(t, "Cleveland Cavaliers", game.HomeTeam)
	assert.Equal(t, "Boston Celtics", game.AwayTeam)
	require.NotNil(t, game.Spread)
	assert.Equal(t, -5.5, *game.Spread)
	assert.Equal(t, "fanduel", game.BookmakerKey)
}

func TestNextFocusGame_AwayGameStoresHomeSpread(t *testing.T) {
	// Focus team on the road as a 4-point favorite: the home team's point
	// is +4, and that is what gets stored.
	body := "[" + spreadsEvent("away", "Detroit Pistons", "Cleveland Cavaliers", "2026-03-04T00:00:00Z", 4.0) + "]"

	c := testOddsClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	})

	game, err := c.NextFocusGame(context.Background())
	require.NoError(t, err)
	require.NotNil(t, game)
	assert.Equal(t, "Detroit Pistons", game.HomeTeam)
	require.NotNil(t, game.Spread)
	assert.Equal(t, 4.0, *game.Spread)
}

func TestNextFocusGame_PrefersFanDuel(t *testing.T) {
	body := "[" + spreadsEvent("g1", "Cleveland Cavaliers", "Boston Celtics", "2026-03-05T00:00:00Z", -6.5,
		"draftkings", "fanduel", "betmgm") + "]"

	c := testOddsClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	})

	game, err := c.NextFocusGame(context.Background())
	require.NoError(t, err)
	require.NotNil(t, game)
	assert.Equal(t, "fanduel", game.BookmakerKey)
}

func TestNextFocusGame_FallsBackToFirstBookmaker(t *testing.T) {
	body := "[" + spreadsEvent("g1", "Cleveland Cavaliers", "Boston Celtics", "2026-03-05T00:00:00Z", -6.5,
		"draftkings", "betmgm") + "]"

	c := testOddsClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	})

	game, err := c.NextFocusGame(context.Background())
	require.NoError(t, err)
	require.NotNil(t, game)
	assert.Equal(t, "draftkings", game.BookmakerKey)
}

func TestNextFocusGame_NoFocusGames(t *testing.T) {
	body := "[" + spreadsEvent("other", "New York Knicks", "Miami Heat", "2026-03-02T00:00:00Z", -2.0) + "]"

	c := testOddsClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	})

	game, err := c.NextFocusGame(context.Background())
	require.NoError(t, err)
	assert.Nil(t, game)
}

func TestNextFocusGame_MissingSpreadsMarket(t *testing.T) {
	body := `[{
		"id": "g1",
		"commence_time": "2026-03-05T00:00:00Z",
		"home_team": "Cleveland Cavaliers",
		"away_team": "Boston Celtics",
		"bookmakers": [{"key": "fanduel", "markets": [{"key": "h2h", "outcomes": []}]}]
	}]`

	c := testOddsClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	})

	game, err := c.NextFocusGame(context.Background())
	require.NoError(t, err)
	assert.Nil(t, game)
}

func TestNextFocusGame_UpstreamError(t *testing.T) {
	c := testOddsClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.NextFocusGame(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestNextFocusGame_MissingAPIKey(t *testing.T) {
	c := NewOddsAPIClient("", "Cleveland Cavaliers", slog.Default())
	_, err := c.NextFocusGame(context.Background())
	require.Error(t, err)
}
