package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/courtside/api/internal/domain"
	"github.com/courtside/api/internal/provider"
	"github.com/courtside/api/internal/repository"
)

// OddsSource resolves the next bettable game from an external odds feed.
type OddsSource interface {
	NextFocusGame(ctx context.Context) (*domain.Game, error)
}

// ScheduleSource resolves the focus team's upcoming schedule.
type ScheduleSource interface {
	UpcomingSchedule(ctx context.Context, limit int) ([]provider.ScheduledGame, error)
}

// GameService manages the game catalog: serving the next bettable game,
// refreshing it from the odds feed, and the demo seeding paths.
type GameService struct {
	pool      *pgxpool.Pool
	games     repository.GameRepository
	outbox    repository.OutboxRepository
	odds      OddsSource
	schedule  ScheduleSource
	focusTeam string
	logger    *slog.Logger
	now       func() time.Time
}

// NewGameService creates a GameService.
func NewGameService(
	pool *pgxpool.Pool,
	games repository.GameRepository,
	outbox repository.OutboxRepository,
	odds OddsSource,
	schedule ScheduleSource,
	focusTeam string,
	logger *slog.Logger,
) *GameService {
	return &GameService{
		pool:      pool,
		games:     games,
		outbox:    outbox,
		odds:      odds,
		schedule:  schedule,
		focusTeam: focusTeam,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock overrides the service clock, for tests.
func (s *GameService) WithClock(now func() time.Time) *GameService {
	s.now = now
	return s
}

// NextGame returns the soonest stored upcoming game that has not started yet.
func (s *GameService) NextGame(ctx context.Context) (*domain.Game, error) {
	game, err := s.games.FindNextUpcoming(ctx, s.pool, s.now())
	if err != nil {
		return nil, domain.ErrInternal("find next game", err)
	}
	if game == nil {
		return nil, domain.ErrNotFoundMsg("no upcoming game found")
	}
	return game, nil
}

// NextSchedule returns the focus team's upcoming schedule from the schedule
// feed (spread-free, purely informational).
func (s *GameService) NextSchedule(ctx context.Context, limit int) ([]provider.ScheduledGame, error) {
	games, err := s.schedule.UpcomingSchedule(ctx, limit)
	if err != nil {
		return nil, domain.ErrInternal("fetch schedule", err)
	}
	if len(games) == 0 {
		return nil, domain.ErrNotFoundMsg("no scheduled games found")
	}
	return games, nil
}

// RefreshNextGame fetches the next focus-team game from the odds feed and
// upserts it. Returns ErrNotFound when the feed has no future game.
func (s *GameService) RefreshNextGame(ctx context.Context) (*domain.Game, error) {
	fetched, err := s.odds.NextFocusGame(ctx)
	if err != nil {
		return nil, domain.ErrInternal("fetch odds", err)
	}
	if fetched == nil {
		return nil, domain.ErrNotFoundMsg(fmt.Sprintf("no upcoming game found for %s", s.focusTeam))
	}
	return s.storeGame(ctx, fetched)
}

// SeedFakeGame inserts a synthetic upcoming game so the demo works without
// an odds feed or API key.
func (s *GameService) SeedFakeGame(ctx context.Context) (*domain.Game, error) {
	spread := -5.5
	game := &domain.Game{
		ExternalID:   "fake-" + uuid.NewString(),
		HomeTeam:     s.focusTeam,
		AwayTeam:     "Boston Celtics",
		StartTime:    s.now().Add(24 * time.Hour),
		Spread:       &spread,
		BookmakerKey: "demo",
		Status:       domain.GameStatusUpcoming,
	}
	return s.storeGame(ctx, game)
}

// storeGame upserts the game and stages a game.upserted event in one
// transaction.
func (s *GameService) storeGame(ctx context.Context, game *domain.Game) (*domain.Game, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	stored, err := s.games.Upsert(ctx, tx, game)
	if err != nil {
		return nil, domain.ErrInternal("upsert game", err)
	}
	if err := s.outbox.Insert(ctx, tx, domain.NewGameUpsertedEvent(stored)); err != nil {
		return nil, domain.ErrInternal("stage event", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	s.logger.Info("game stored",
		"external_id", stored.ExternalID,
		"home_team", stored.HomeTeam,
		"away_team", stored.AwayTeam,
		"spread", stored.Spread,
		"start_time", stored.StartTime,
	)
	return stored, nil
}

// ResetDemoData wipes games, bets, and points. Demo convenience only.
func (s *GameService) ResetDemoData(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `TRUNCATE bets, points, games`)
	if err != nil {
		return domain.ErrInternal("reset demo data", err)
	}
	s.logger.Warn("demo data reset")
	return nil
}

// StartAutoRefresh runs RefreshNextGame on a ticker until ctx is cancelled.
// Feed errors are logged and do not stop the loop.
func (s *GameService) StartAutoRefresh(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		s.logger.Info("odds auto-refresh started", "interval", interval)
		for {
			select {
			case <-ctx.Done():
				s.logger.Info("odds auto-refresh stopped")
				return
			case <-ticker.C:
				if _, err := s.RefreshNextGame(ctx); err != nil {
					s.logger.Warn("odds auto-refresh failed", "error", err)
				}
			}
		}
	}()
}
