//go:build integration

package integration

import (
	"net/http"
	"testing"
	"time"

	"github.com/courtside/api/test/integration/testutil"
)

// Full demo flow: register, seed a game, bet on it, settle it, check points.
func TestFullBettingFlow(t *testing.T) {
	env := testutil.NewTestEnv(t)

	token, userID := env.RegisterUser("bettor@example.com", "password123")
	admin := env.AdminToken()

	gameID := env.SeedGame(-5.5, time.Hour)
	bet := env.PlaceBet(token, gameID, "home", 50)

	if bet.Status != "pending" {
		t.Fatalf("expected pending bet, got %s", bet.Status)
	}
	if bet.Line == nil || *bet.Line != -5.5 {
		t.Fatalf("expected frozen line -5.5, got %v", bet.Line)
	}
	if bet.Odds != testutil.TestDefaultOdds {
		t.Fatalf("expected odds %d, got %d", testutil.TestDefaultOdds, bet.Odds)
	}

	// Home wins by 10: covers the -5.5 line.
	resp := env.SettleGame(admin, gameID, 110, 100)
	testutil.AssertStatus(t, resp, http.StatusOK)

	var result struct {
		Won    int `json:"won"`
		Lost   int `json:"lost"`
		Pushed int `json:"pushed"`
		Game   struct {
			Status         string `json:"status"`
			FinalHomeScore *int   `json:"finalHomeScore"`
		} `json:"game"`
	}
	testutil.DecodeJSON(t, resp, &result)

	if result.Won != 1 || result.Lost != 0 || result.Pushed != 0 {
		t.Fatalf("expected 1 win, got won=%d lost=%d pushed=%d", result.Won, result.Lost, result.Pushed)
	}
	if result.Game.Status != "final" {
		t.Fatalf("expected final game, got %s", result.Game.Status)
	}

	testutil.AssertBetStatus(t, env, bet.ID.String(), "won")
	testutil.AssertPoints(t, env, userID, testutil.TestPointsPerWin)

	// The points endpoint agrees with the ledger.
	resp = env.GET("/points/me", token)
	testutil.AssertStatus(t, resp, http.StatusOK)
	var points struct {
		TotalPoints int64 `json:"totalPoints"`
	}
	testutil.DecodeJSON(t, resp, &points)
	if points.TotalPoints != testutil.TestPointsPerWin {
		t.Errorf("expected %d points, got %d", testutil.TestPointsPerWin, points.TotalPoints)
	}
}

func TestSettlement_LosingAndPushBets(t *testing.T) {
	env := testutil.NewTestEnv(t)

	homeToken, homeUser := env.RegisterUser("home@example.com", "password123")
	awayToken, awayUser := env.RegisterUser("away@example.com", "password123")
	admin := env.AdminToken()

	// Whole-number line so an exact tie is reachable.
	gameID := env.SeedGame(-5, time.Hour)
	homeBet := env.PlaceBet(homeToken, gameID, "home", 25)
	awayBet := env.PlaceBet(awayToken, gameID, "away", 25)

	// Home wins by exactly 5: both sides push, nobody scores points.
	resp := env.SettleGame(admin, gameID, 105, 100)
	testutil.AssertStatus(t, resp, http.StatusOK)

	testutil.AssertBetStatus(t, env, homeBet.ID.String(), "push")
	testutil.AssertBetStatus(t, env, awayBet.ID.String(), "push")
	testutil.AssertPoints(t, env, homeUser, 0)
	testutil.AssertPoints(t, env, awayUser, 0)
}

func TestSettlement_FrozenLineSurvivesSpreadChange(t *testing.T) {
	env := testutil.NewTestEnv(t)

	token, userID := env.RegisterUser("frozen@example.com", "password123")
	admin := env.AdminToken()

	gameID := env.SeedGame(-5.5, time.Hour)
	bet := env.PlaceBet(token, gameID, "home", 10)

	// The market moves after placement; the bet keeps its original line.
	if _, err := env.Pool.Exec(t.Context(),
		"UPDATE games SET spread = -9.5 WHERE external_id = $1", gameID); err != nil {
		t.Fatalf("move spread: %v", err)
	}

	// Home wins by 7: covers -5.5, would not cover -9.5.
	resp := env.SettleGame(admin, gameID, 107, 100)
	testutil.AssertStatus(t, resp, http.StatusOK)

	testutil.AssertBetStatus(t, env, bet.ID.String(), "won")
	testutil.AssertPoints(t, env, userID, testutil.TestPointsPerWin)
}

func TestMyBets_ListsSettledAndPendingWithGame(t *testing.T) {
	env := testutil.NewTestEnv(t)

	token, _ := env.RegisterUser("lister@example.com", "password123")
	admin := env.AdminToken()

	first := env.SeedGame(-3.5, time.Hour)
	second := env.SeedGame(2.5, 2*time.Hour)
	env.PlaceBet(token, first, "home", 10)
	env.PlaceBet(token, second, "away", 20)

	resp := env.SettleGame(admin, first, 100, 99)
	testutil.AssertStatus(t, resp, http.StatusOK)

	resp = env.GET("/bets/me", token)
	testutil.AssertStatus(t, resp, http.StatusOK)

	var bets []struct {
		Status string  `json:"status"`
		Amount float64 `json:"amount"`
		Game   *struct {
			GameID string `json:"gameId"`
		} `json:"game"`
	}
	testutil.DecodeJSON(t, resp, &bets)

	if len(bets) != 2 {
		t.Fatalf("expected 2 bets, got %d", len(bets))
	}
	// Most recent first.
	if bets[0].Amount != 20 || bets[0].Status != "pending" {
		t.Errorf("expected the pending second bet first, got %+v", bets[0])
	}
	if bets[1].Status != "lost" {
		t.Errorf("expected first bet lost (won by 1 against -3.5), got %s", bets[1].Status)
	}
	for _, b := range bets {
		if b.Game == nil {
			t.Error("expected joined game on bet listing")
		}
	}
}
