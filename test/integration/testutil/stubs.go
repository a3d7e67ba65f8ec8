//go:build integration

package testutil

import (
	"context"
	"sync"

	"github.com/courtside/api/internal/domain"
	"github.com/courtside/api/internal/provider"
)

// StubOdds is an in-memory OddsSource. Set Game to control what the refresh
// and seed endpoints find; leave it nil to simulate an empty feed.
type StubOdds struct {
	mu   sync.Mutex
	Game *domain.Game
	Err  error
}

func (s *StubOdds) NextFocusGame(ctx context.Context) (*domain.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Game == nil {
		return nil, nil
	}
	copied := *s.Game
	return &copied, nil
}

// Set swaps the stubbed game.
func (s *StubOdds) Set(game *domain.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Game = game
}

// StubSchedule is an in-memory ScheduleSource.
type StubSchedule struct {
	mu    sync.Mutex
	Games []provider.ScheduledGame
}

func (s *StubSchedule) UpcomingSchedule(ctx context.Context, limit int) ([]provider.ScheduledGame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit > 0 && len(s.Games) > limit {
		return s.Games[:limit], nil
	}
	return s.Games, nil
}

// Set swaps the stubbed schedule.
func (s *StubSchedule) Set(games []provider.ScheduledGame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Games = games
}
