//go:build integration

package integration

import (
	"net/http"
	"testing"
	"time"

	"github.com/courtside/api/internal/domain"
	"github.com/courtside/api/test/integration/testutil"
)

func ptr(f float64) *float64 { return &f }

func TestAdminRefresh_UpsertsFromFeed(t *testing.T) {
	env := testutil.NewTestEnv(t)
	admin := env.AdminToken()

	env.Odds.Set(&domain.Game{
		ExternalID:   "feed-1",
		HomeTeam:     testutil.TestFocusTeam,
		AwayTeam:     "New York Knicks",
		StartTime:    time.Now().Add(48 * time.Hour),
		Spread:       ptr(-4.5),
		BookmakerKey: "fanduel",
		Status:       domain.GameStatusUpcoming,
	})

	resp := env.POST("/admin/games/refresh", nil, admin)
	testutil.AssertStatus(t, resp, http.StatusOK)

	var game struct {
		GameID string   `json:"gameId"`
		Spread *float64 `json:"spread"`
	}
	testutil.DecodeJSON(t, resp, &game)
	if game.GameID != "feed-1" || game.Spread == nil || *game.Spread != -4.5 {
		t.Fatalf("unexpected refreshed game: %+v", game)
	}

	// The refreshed game is now the public next game.
	resp = env.GET("/games/next", "")
	testutil.AssertStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	// Refreshing again with a moved line updates in place.
	env.Odds.Set(&domain.Game{
		ExternalID: "feed-1",
		HomeTeam:   testutil.TestFocusTeam,
		AwayTeam:   "New York Knicks",
		StartTime:  time.Now().Add(48 * time.Hour),
		Spread:     ptr(-6.5),
		Status:     domain.GameStatusUpcoming,
	})
	resp = env.POST("/admin/games/refresh", nil, admin)
	testutil.AssertStatus(t, resp, http.StatusOK)
	testutil.DecodeJSON(t, resp, &game)
	if *game.Spread != -6.5 {
		t.Fatalf("expected updated spread -6.5, got %v", *game.Spread)
	}
}

func TestAdminRefresh_EmptyFeed(t *testing.T) {
	env := testutil.NewTestEnv(t)
	admin := env.AdminToken()

	resp := env.POST("/admin/games/refresh", nil, admin)
	testutil.AssertStatus(t, resp, http.StatusNotFound)
}

func TestAdminSeedFake_CreatesBettableGame(t *testing.T) {
	env := testutil.NewTestEnv(t)
	admin := env.AdminToken()

	resp := env.POST("/admin/games/seed-fake", nil, admin)
	testutil.AssertStatus(t, resp, http.StatusCreated)

	var game struct {
		GameID string `json:"gameId"`
		Status string `json:"status"`
	}
	testutil.DecodeJSON(t, resp, &game)
	if game.Status != "upcoming" {
		t.Fatalf("expected upcoming game, got %s", game.Status)
	}

	token, _ := env.RegisterUser("seeded@example.com", "password123")
	env.PlaceBet(token, game.GameID, "home", 10)
}

func TestAdminSettle_UnknownGame(t *testing.T) {
	env := testutil.NewTestEnv(t)
	admin := env.AdminToken()

	resp := env.SettleGame(admin, "no-such-game", 100, 90)
	testutil.AssertStatus(t, resp, http.StatusNotFound)
}

func TestAdminSettle_SecondCallConflicts(t *testing.T) {
	env := testutil.NewTestEnv(t)
	admin := env.AdminToken()
	token, userID := env.RegisterUser("once@example.com", "password123")

	gameID := env.SeedGame(-5.5, time.Hour)
	env.PlaceBet(token, gameID, "home", 10)

	resp := env.SettleGame(admin, gameID, 110, 100)
	testutil.AssertStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	// Settling again must not double-award points.
	resp = env.SettleGame(admin, gameID, 110, 100)
	testutil.AssertStatus(t, resp, http.StatusConflict)
	resp.Body.Close()

	testutil.AssertPoints(t, env, userID, testutil.TestPointsPerWin)
}

func TestAdminSettle_MissingScores(t *testing.T) {
	env := testutil.NewTestEnv(t)
	admin := env.AdminToken()
	gameID := env.SeedGame(-5.5, time.Hour)

	resp := env.POST("/admin/games/"+gameID+"/settle", map[string]int{
		"finalHomeScore": 100,
	}, admin)
	testutil.AssertErrorCode(t, resp, "VALIDATION_ERROR")
}

func TestAdminReset_WipesDemoData(t *testing.T) {
	env := testutil.NewTestEnv(t)
	admin := env.AdminToken()
	token, _ := env.RegisterUser("wipe@example.com", "password123")

	gameID := env.SeedGame(-5.5, time.Hour)
	env.PlaceBet(token, gameID, "home", 10)

	resp := env.POST("/admin/reset", nil, admin)
	testutil.AssertStatus(t, resp, http.StatusOK)

	var result struct {
		Success bool `json:"success"`
	}
	testutil.DecodeJSON(t, resp, &result)
	if !result.Success {
		t.Fatal("expected success")
	}

	resp = env.GET("/games/next", "")
	testutil.AssertStatus(t, resp, http.StatusNotFound)
	resp.Body.Close()
}

func TestGamesNextSchedule(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.GET("/games/next-schedule", "")
	testutil.AssertStatus(t, resp, http.StatusNotFound)
	resp.Body.Close()
}
