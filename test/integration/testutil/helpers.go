//go:build integration

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/courtside/api/internal/auth"
	"github.com/courtside/api/internal/domain"
)

// RegisterUser creates a new account and returns the auth token and user ID.
func (env *TestEnv) RegisterUser(email, password string) (token string, userID string) {
	env.t.Helper()
	resp := env.POST("/auth/register", map[string]string{
		"email":    email,
		"password": password,
		"name":     "Test User",
	}, "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		env.t.Fatalf("RegisterUser: expected 201, got %d", resp.StatusCode)
	}

	var result struct {
		AccessToken string `json:"accessToken"`
		User        struct {
			ID uuid.UUID `json:"id"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		env.t.Fatalf("RegisterUser: decode: %v", err)
	}
	return result.AccessToken, result.User.ID.String()
}

// LoginUser authenticates an existing account and returns the auth token.
func (env *TestEnv) LoginUser(email, password string) string {
	env.t.Helper()
	resp := env.POST("/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		env.t.Fatalf("LoginUser: expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		env.t.Fatalf("LoginUser: decode: %v", err)
	}
	return result.AccessToken
}

// AdminToken mints an admin-realm token directly, bypassing login.
func (env *TestEnv) AdminToken() string {
	env.t.Helper()
	token, err := env.JWTMgr.GenerateToken(auth.RealmAdmin, uuid.New(), "ops@example.com")
	if err != nil {
		env.t.Fatalf("AdminToken: %v", err)
	}
	return token
}

// SeedGame inserts an upcoming game directly and returns its external id.
func (env *TestEnv) SeedGame(spread float64, startIn time.Duration) string {
	env.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	externalID := "test-" + uuid.NewString()
	_, err := env.Pool.Exec(ctx, `
		INSERT INTO games (external_id, home_team, away_team, start_time, spread, bookmaker_key, status)
		VALUES ($1, $2, $3, $4, $5, 'test', $6)`,
		externalID, TestFocusTeam, "Boston Celtics",
		time.Now().Add(startIn), spread, domain.GameStatusUpcoming)
	if err != nil {
		env.t.Fatalf("SeedGame: %v", err)
	}
	return externalID
}

// PlaceBet places a bet and fails the test unless it is accepted.
func (env *TestEnv) PlaceBet(token, gameID, side string, stake float64) domain.Bet {
	env.t.Helper()
	resp := env.POST("/bets", map[string]interface{}{
		"gameId": gameID,
		"side":   side,
		"amount": stake,
	}, token)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		env.t.Fatalf("PlaceBet: expected 201, got %d", resp.StatusCode)
	}

	var bet domain.Bet
	if err := json.NewDecoder(resp.Body).Decode(&bet); err != nil {
		env.t.Fatalf("PlaceBet: decode: %v", err)
	}
	return bet
}

// SettleGame settles a game via the admin endpoint and returns the response.
func (env *TestEnv) SettleGame(adminToken, gameID string, home, away int) *http.Response {
	env.t.Helper()
	return env.POST("/admin/games/"+gameID+"/settle", map[string]int{
		"finalHomeScore": home,
		"finalAwayScore": away,
	}, adminToken)
}

// GET performs a GET request with optional auth token.
func (env *TestEnv) GET(path, token string) *http.Response {
	env.t.Helper()
	req, err := http.NewRequest("GET", env.Server.URL+path, nil)
	if err != nil {
		env.t.Fatalf("GET %s: new request: %v", path, err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		env.t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

// POST performs a POST request with optional auth token.
func (env *TestEnv) POST(path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			env.t.Fatalf("POST %s: encode: %v", path, err)
		}
	}
	req, err := http.NewRequest("POST", env.Server.URL+path, &buf)
	if err != nil {
		env.t.Fatalf("POST %s: new request: %v", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		env.t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}
