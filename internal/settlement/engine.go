package settlement

import (
	"context"
	"log/slog"
	"time"

	"github.com/courtside/api/internal/domain"
	"github.com/courtside/api/internal/infra"
	"github.com/courtside/api/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Engine settles games: it scores every pending bet against its frozen line,
// transitions bet and game state, and awards the win bonus through the points
// ledger. All writes for one settlement happen in a single transaction, so a
// failure part-way leaves the game upcoming and retryable.
type Engine struct {
	pool         *pgxpool.Pool
	games        repository.GameRepository
	bets         repository.BetRepository
	points       repository.PointsRepository
	outbox       repository.OutboxRepository
	pointsPerWin int64
	logger       *slog.Logger
	now          func() time.Time
}

// NewEngine creates a settlement engine. pointsPerWin is the bonus credited
// for each winning bet.
func NewEngine(
	pool *pgxpool.Pool,
	games repository.GameRepository,
	bets repository.BetRepository,
	points repository.PointsRepository,
	outbox repository.OutboxRepository,
	pointsPerWin int64,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		pool:         pool,
		games:        games,
		bets:         bets,
		points:       points,
		outbox:       outbox,
		pointsPerWin: pointsPerWin,
		logger:       logger,
		now:          time.Now,
	}
}

// WithClock overrides the engine's time source. Used by tests.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Result summarizes one settlement call.
type Result struct {
	Game        *domain.Game `json:"game"`
	UpdatedBets []domain.Bet `json:"updatedBets"`
	Won         int          `json:"won"`
	Lost        int          `json:"lost"`
	Pushed      int          `json:"pushed"`
}

// SettleGame finalizes a game and resolves all its pending bets.
//
// The operation is one-shot per game: the game row is locked FOR UPDATE and
// must still be upcoming, so the first caller to commit wins and every later
// call fails with a conflict instead of re-scoring bets. Bets are scored
// against their frozen lines, winners are credited the point bonus exactly
// once (keyed by the pending→won transition inside this transaction), and the
// game is flipped to final with the scores recorded.
func (e *Engine) SettleGame(ctx context.Context, externalGameID string, finalHomeScore, finalAwayScore int) (*Result, error) {
	tx, err := e.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin settlement tx", err)
	}
	defer tx.Rollback(ctx)

	game, err := e.games.LockByExternalID(ctx, tx, externalGameID)
	if err != nil {
		return nil, domain.ErrInternal("lock game", err)
	}
	if game == nil {
		return nil, domain.ErrNotFound("game", externalGameID)
	}
	if game.Status != domain.GameStatusUpcoming {
		return nil, domain.ErrConflict("only upcoming games can be settled")
	}

	pending, err := e.bets.ListPendingForGame(ctx, tx, game.ID)
	if err != nil {
		return nil, domain.ErrInternal("list pending bets", err)
	}

	scored := ScoreBets(game, pending, finalHomeScore, finalAwayScore)
	settledAt := e.now()

	result := &Result{UpdatedBets: make([]domain.Bet, 0, len(scored))}
	for _, s := range scored {
		bet := s.Bet

		if err := e.bets.MarkSettled(ctx, tx, bet.ID, s.Outcome, settledAt); err != nil {
			return nil, domain.ErrInternal("settle bet", err)
		}
		bet.Status = s.Outcome
		bet.SettledAt = &settledAt

		switch s.Outcome {
		case domain.BetStatusWon:
			result.Won++
			newTotal, err := e.points.AddPoints(ctx, tx, bet.UserID, e.pointsPerWin)
			if err != nil {
				return nil, domain.ErrInternal("award points", err)
			}
			if err := e.outbox.Insert(ctx, tx, domain.NewPointsAwardedEvent(bet.UserID, e.pointsPerWin, newTotal, bet.ID)); err != nil {
				return nil, domain.ErrInternal("stage points event", err)
			}
		case domain.BetStatusPush:
			result.Pushed++
		default:
			result.Lost++
		}

		if err := e.outbox.Insert(ctx, tx, domain.NewBetSettledEvent(&bet)); err != nil {
			return nil, domain.ErrInternal("stage bet event", err)
		}
		result.UpdatedBets = append(result.UpdatedBets, bet)
	}

	finalGame, err := e.games.Finalize(ctx, tx, game.ID, finalHomeScore, finalAwayScore)
	if err != nil {
		if appErr, ok := err.(*domain.AppError); ok {
			return nil, appErr
		}
		return nil, domain.ErrInternal("finalize game", err)
	}
	if err := e.outbox.Insert(ctx, tx, domain.NewGameSettledEvent(finalGame)); err != nil {
		return nil, domain.ErrInternal("stage game event", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit settlement", err)
	}

	infra.SettlementsTotal.Inc()
	infra.PointsAwardedTotal.Add(float64(int64(result.Won) * e.pointsPerWin))

	e.logger.Info("game settled",
		"game_id", finalGame.ExternalID,
		"final_home", finalHomeScore,
		"final_away", finalAwayScore,
		"bets", len(result.UpdatedBets),
		"won", result.Won,
		"lost", result.Lost,
		"pushed", result.Pushed,
	)

	result.Game = finalGame
	return result, nil
}
