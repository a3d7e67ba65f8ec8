//go:build integration

package testutil

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"
)

// DecodeJSON reads and decodes a JSON response body into dst.
func DecodeJSON(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
}

// AssertStatus checks that the response has the expected HTTP status code.
func AssertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Errorf("expected status %d, got %d", expected, resp.StatusCode)
	}
}

// AssertErrorCode checks that the response body contains the expected error code.
func AssertErrorCode(t *testing.T, resp *http.Response, expectedCode string) {
	t.Helper()
	var errResp struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	DecodeJSON(t, resp, &errResp)
	if errResp.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, errResp.Code, errResp.Message)
	}
}

// AssertPoints queries the points ledger and asserts the user's total.
func AssertPoints(t *testing.T, env *TestEnv, userID string, expected int64) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var total int64
	err := env.Pool.QueryRow(ctx,
		"SELECT COALESCE((SELECT total_points FROM points WHERE user_id = $1), 0)",
		userID).Scan(&total)
	if err != nil {
		t.Fatalf("AssertPoints: query: %v", err)
	}
	if total != expected {
		t.Errorf("points: expected %d, got %d", expected, total)
	}
}

// AssertBetStatus queries a bet row and asserts its status.
func AssertBetStatus(t *testing.T, env *TestEnv, betID, expected string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var status string
	err := env.Pool.QueryRow(ctx,
		"SELECT status FROM bets WHERE id = $1", betID).Scan(&status)
	if err != nil {
		t.Fatalf("AssertBetStatus: query: %v", err)
	}
	if status != expected {
		t.Errorf("bet status: expected %q, got %q", expected, status)
	}
}
