package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/courtside/api/internal/domain"
	"github.com/courtside/api/internal/infra"
	"github.com/courtside/api/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BetService handles bet placement and listing.
type BetService struct {
	pool        *pgxpool.Pool
	games       repository.GameRepository
	bets        repository.BetRepository
	outbox      repository.OutboxRepository
	defaultOdds int
	logger      *slog.Logger
	now         func() time.Time
}

// NewBetService creates a BetService. defaultOdds is the placeholder American
// odds stamped on every bet.
func NewBetService(
	pool *pgxpool.Pool,
	games repository.GameRepository,
	bets repository.BetRepository,
	outbox repository.OutboxRepository,
	defaultOdds int,
	logger *slog.Logger,
) *BetService {
	return &BetService{
		pool:        pool,
		games:       games,
		bets:        bets,
		outbox:      outbox,
		defaultOdds: defaultOdds,
		logger:      logger,
		now:         time.Now,
	}
}

// PlaceBetInput holds the bet placement request.
type PlaceBetInput struct {
	GameID string  `json:"gameId"`
	Side   string  `json:"side"`
	Stake  float64 `json:"amount"`
}

// PlaceBet validates and creates a bet for the user on the given game.
//
// Preconditions are checked in order, each failing with a distinct error:
// user id present, game exists, side valid, stake positive, game still
// upcoming, no prior bet by this user on the game. The created bet freezes
// the game's current spread as its line; later spread changes never affect it.
func (s *BetService) PlaceBet(ctx context.Context, userID string, input PlaceBetInput) (*domain.Bet, error) {
	if userID == "" {
		return nil, domain.ErrValidation("userId is required")
	}
	if input.GameID == "" {
		return nil, domain.ErrValidation("gameId is required")
	}

	game, err := s.games.FindByExternalID(ctx, s.pool, input.GameID)
	if err != nil {
		return nil, domain.ErrInternal("find game", err)
	}
	if game == nil {
		return nil, domain.ErrNotFound("game", input.GameID)
	}

	side, err := domain.ParseBetSide(input.Side)
	if err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	if err := domain.ValidateStake(input.Stake); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	if !game.AcceptsBets() {
		return nil, domain.ErrConflict("cannot place a bet on a non-upcoming game")
	}

	exists, err := s.bets.ExistsForUserAndGame(ctx, s.pool, userID, game.ID)
	if err != nil {
		return nil, domain.ErrInternal("check existing bet", err)
	}
	if exists {
		return nil, domain.ErrConflict("user already has a bet on this game")
	}

	line := game.CurrentSpread()
	bet := &domain.Bet{
		ID:        uuid.New(),
		UserID:    userID,
		GameID:    game.ID,
		Stake:     input.Stake,
		Side:      side,
		Line:      &line,
		Odds:      s.defaultOdds,
		Status:    domain.BetStatusPending,
		CreatedAt: s.now(),
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	if err := s.bets.Insert(ctx, tx, bet); err != nil {
		// The unique (user_id, game_id) index closes the check-then-insert
		// race between two simultaneous placements.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrConflict("user already has a bet on this game")
		}
		return nil, domain.ErrInternal("insert bet", err)
	}
	if err := s.outbox.Insert(ctx, tx, domain.NewBetPlacedEvent(bet)); err != nil {
		return nil, domain.ErrInternal("stage bet event", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	infra.BetsPlacedTotal.Inc()
	s.logger.Info("bet placed",
		"bet_id", bet.ID,
		"user_id", userID,
		"game_id", game.ExternalID,
		"side", side,
		"stake", input.Stake,
		"line", line,
	)

	return bet, nil
}

// ListUserBets returns the user's bets, most recent first, each joined with
// its game's details.
func (s *BetService) ListUserBets(ctx context.Context, userID string) ([]domain.BetWithGame, error) {
	bets, err := s.bets.ListByUserWithGames(ctx, s.pool, userID)
	if err != nil {
		return nil, domain.ErrInternal("list bets", err)
	}
	return bets, nil
}
