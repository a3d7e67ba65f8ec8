package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/courtside/api/internal/domain"
)

// ── Odds API wire types ──

type oddsEvent struct {
	ID           string          `json:"id"`
	SportKey     string          `json:"sport_key"`
	CommenceTime string          `json:"commence_time"`
	HomeTeam     string          `json:"home_team"`
	AwayTeam     string          `json:"away_team"`
	Bookmakers   []oddsBookmaker `json:"bookmakers"`
}

type oddsBookmaker struct {
	Key     string       `json:"key"`
	Title   string       `json:"title"`
	Markets []oddsMarket `json:"markets"`
}

type oddsMarket struct {
	Key      string        `json:"key"`
	Outcomes []oddsOutcome `json:"outcomes"`
}

type oddsOutcome struct {
	Name  string   `json:"name"`
	Price float64  `json:"price"`
	Point *float64 `json:"point,omitempty"`
}

const preferredBookmaker = "fanduel"

// OddsAPIClient fetches NBA spread data for one tracked team from The Odds API.
type OddsAPIClient struct {
	baseURL   string
	apiKey    string
	focusTeam string
	client    *http.Client
	logger    *slog.Logger
	now       func() time.Time
}

// NewOddsAPIClient creates an Odds API client for the given focus team.
func NewOddsAPIClient(apiKey, focusTeam string, logger *slog.Logger) *OddsAPIClient {
	return &OddsAPIClient{
		baseURL:   "https://api.the-odds-api.com",
		apiKey:    apiKey,
		focusTeam: focusTeam,
		client:    &http.Client{Timeout: 30 * time.Second},
		logger:    logger,
		now:       time.Now,
	}
}

// NextFocusGame returns the next future game involving the focus team as an
// upcoming Game record, or nil when the provider has none. The home team's
// spread point is captured, preferring the FanDuel book.
func (c *OddsAPIClient) NextFocusGame(ctx context.Context) (*domain.Game, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("odds api key is not configured")
	}

	path := fmt.Sprintf(
		"/v4/sports/basketball_nba/odds?regions=us&markets=spreads&oddsFormat=american&dateFormat=iso&apiKey=%s",
		c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("odds api request: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	c.logger.Debug("odds api request",
		"status", resp.StatusCode,
		"remaining", resp.Header.Get("x-requests-remaining"))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("odds api returned %d", resp.StatusCode)
	}

	var events []oddsEvent
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("decode odds events: %w", err)
	}

	next := c.pickNextFocusEvent(events)
	if next == nil {
		return nil, nil
	}
	return c.mapEvent(next)
}

// pickNextFocusEvent filters to strictly-future games involving the focus
// team and returns the soonest, or nil.
func (c *OddsAPIClient) pickNextFocusEvent(events []oddsEvent) *oddsEvent {
	now := c.now()

	var candidates []oddsEvent
	for _, e := range events {
		if e.HomeTeam != c.focusTeam && e.AwayTeam != c.focusTeam {
			continue
		}
		commence, err := time.Parse(time.RFC3339, e.CommenceTime)
		if err != nil || !commence.After(now) {
			continue
		}
		candidates = append(candidates, e)
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].CommenceTime < candidates[j].CommenceTime
	})
	return &candidates[0]
}

// mapEvent converts an Odds API event into an upcoming Game. The stored
// spread is the home team's handicap (negative favors home), so settlement
// works identically whether the focus team is home or away.
func (c *OddsAPIClient) mapEvent(event *oddsEvent) (*domain.Game, error) {
	startTime, err := time.Parse(time.RFC3339, event.CommenceTime)
	if err != nil {
		return nil, fmt.Errorf("parse commence_time: %w", err)
	}

	book := pickBookmaker(event.Bookmakers)
	if book == nil {
		return nil, nil
	}

	var spreads *oddsMarket
	for i := range book.Markets {
		if book.Markets[i].Key == "spreads" {
			spreads = &book.Markets[i]
			break
		}
	}
	if spreads == nil {
		return nil, nil
	}

	var homePoint *float64
	for _, outcome := range spreads.Outcomes {
		if outcome.Name == event.HomeTeam && outcome.Point != nil {
			p := *outcome.Point
			homePoint = &p
			break
		}
	}
	if homePoint == nil {
		return nil, nil
	}

	return &domain.Game{
		ExternalID:   event.ID,
		HomeTeam:     event.HomeTeam,
		AwayTeam:     event.AwayTeam,
		StartTime:    startTime,
		Spread:       homePoint,
		BookmakerKey: book.Key,
		Status:       domain.GameStatusUpcoming,
	}, nil
}

// pickBookmaker prefers FanDuel, falling back to the first book with data.
func pickBookmaker(books []oddsBookmaker) *oddsBookmaker {
	for i := range books {
		if books[i].Key == preferredBookmaker {
			return &books[i]
		}
	}
	if len(books) > 0 {
		return &books[0]
	}
	return nil
}
