package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"
)

// ScheduledGame is a lightweight upcoming-schedule entry, independent of the
// odds feed. It carries no spread.
type ScheduledGame struct {
	HomeTeam  string    `json:"homeTeam"`
	AwayTeam  string    `json:"awayTeam"`
	StartTime time.Time `json:"startTime"`
	Status    string    `json:"status"`
}

// ── ESPN wire types ──

type espnSchedule struct {
	Events []espnEvent `json:"events"`
}

type espnEvent struct {
	Date         string           `json:"date"`
	Competitions []espnCompetition `json:"competitions"`
}

type espnCompetition struct {
	Competitors []espnCompetitor `json:"competitors"`
	Status      espnStatus       `json:"status"`
}

type espnCompetitor struct {
	HomeAway string   `json:"homeAway"`
	Team     espnTeam `json:"team"`
}

type espnTeam struct {
	DisplayName string `json:"displayName"`
}

type espnStatus struct {
	Type espnStatusType `json:"type"`
}

type espnStatusType struct {
	State string `json:"state"`
}

// ScheduleClient resolves the focus team's next scheduled games, preferring
// the public ESPN schedule feed and falling back to a static slate when the
// feed is unavailable.
type ScheduleClient struct {
	baseURL   string
	teamSlug  string
	focusTeam string
	client    *http.Client
	logger    *slog.Logger
	now       func() time.Time
}

// NewScheduleClient creates a schedule client. teamSlug is the ESPN team
// abbreviation, e.g. "cle".
func NewScheduleClient(teamSlug, focusTeam string, logger *slog.Logger) *ScheduleClient {
	return &ScheduleClient{
		baseURL:   "https://site.api.espn.com",
		teamSlug:  teamSlug,
		focusTeam: focusTeam,
		client:    &http.Client{Timeout: 15 * time.Second},
		logger:    logger,
		now:       time.Now,
	}
}

// UpcomingSchedule returns the focus team's next scheduled games, soonest
// first, capped at limit. A feed failure degrades to the static fallback
// slate rather than an error.
func (c *ScheduleClient) UpcomingSchedule(ctx context.Context, limit int) ([]ScheduledGame, error) {
	games, err := c.fetchESPN(ctx)
	if err != nil {
		c.logger.Warn("espn schedule fetch failed, using fallback slate", "error", err)
		games = c.fallbackSlate()
	}
	if len(games) == 0 {
		games = c.fallbackSlate()
	}

	sort.Slice(games, func(i, j int) bool { return games[i].StartTime.Before(games[j].StartTime) })
	if limit > 0 && len(games) > limit {
		games = games[:limit]
	}
	return games, nil
}

func (c *ScheduleClient) fetchESPN(ctx context.Context) ([]ScheduledGame, error) {
	url := fmt.Sprintf("%s/apis/site/v2/sports/basketball/nba/teams/%s/schedule", c.baseURL, c.teamSlug)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("espn schedule returned %d", resp.StatusCode)
	}

	var schedule espnSchedule
	if err := json.NewDecoder(resp.Body).Decode(&schedule); err != nil {
		return nil, fmt.Errorf("decode espn schedule: %w", err)
	}

	now := c.now()
	var games []ScheduledGame
	for _, event := range schedule.Events {
		startTime, err := time.Parse("2006-01-02T15:04Z", event.Date)
		if err != nil {
			startTime, err = time.Parse(time.RFC3339, event.Date)
			if err != nil {
				continue
			}
		}
		if !startTime.After(now) {
			continue
		}
		if len(event.Competitions) == 0 {
			continue
		}
		comp := event.Competitions[0]
		if comp.Status.Type.State != "" && comp.Status.Type.State != "pre" {
			continue
		}

		var home, away string
		for _, competitor := range comp.Competitors {
			switch competitor.HomeAway {
			case "home":
				home = competitor.Team.DisplayName
			case "away":
				away = competitor.Team.DisplayName
			}
		}
		if home == "" || away == "" {
			continue
		}
		games = append(games, ScheduledGame{
			HomeTeam:  home,
			AwayTeam:  away,
			StartTime: startTime,
			Status:    "scheduled",
		})
	}
	return games, nil
}

// fallbackSlate synthesizes a short run of future home games so the demo
// keeps working when the schedule feed is down or off-season.
func (c *ScheduleClient) fallbackSlate() []ScheduledGame {
	opponents := []string{
		"Boston Celtics",
		"New York Knicks",
		"Milwaukee Bucks",
		"Chicago Bulls",
		"Detroit Pistons",
	}
	base := c.now().Add(24 * time.Hour).Truncate(time.Hour)
	games := make([]ScheduledGame, 0, len(opponents))
	for i, opponent := range opponents {
		games = append(games, ScheduledGame{
			HomeTeam:  c.focusTeam,
			AwayTeam:  opponent,
			StartTime: base.Add(time.Duration(i*2) * 24 * time.Hour),
			Status:    "scheduled",
		})
	}
	return games
}
