package repository

import (
	"context"
	"time"

	"github.com/courtside/api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX abstracts pgx.Tx and pgxpool.Pool so repositories work with both.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// GameRepository provides access to the games table.
type GameRepository interface {
	// FindByExternalID returns a game by its provider event id, or nil.
	FindByExternalID(ctx context.Context, db DBTX, externalID string) (*domain.Game, error)

	// FindByID returns a game by internal id, or nil.
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Game, error)

	// FindNextUpcoming returns the soonest upcoming game starting after now, or nil.
	FindNextUpcoming(ctx context.Context, db DBTX, now time.Time) (*domain.Game, error)

	// LockByExternalID acquires a row-level lock (SELECT FOR UPDATE) on the game.
	// Settlement uses this as its single-use gate against concurrent callers.
	LockByExternalID(ctx context.Context, tx pgx.Tx, externalID string) (*domain.Game, error)

	// Upsert inserts or refreshes a game keyed by external id, returning the
	// stored row. A settled game's status is never downgraded.
	Upsert(ctx context.Context, db DBTX, game *domain.Game) (*domain.Game, error)

	// Finalize flips an upcoming game to final and records the score. The
	// update is conditional on status; zero rows means the gate was lost.
	Finalize(ctx context.Context, tx pgx.Tx, id uuid.UUID, finalHomeScore, finalAwayScore int) (*domain.Game, error)
}

// BetRepository provides access to the bets table.
type BetRepository interface {
	// Insert creates a new bet. A unique (user_id, game_id) index backs the
	// one-bet-per-user-per-game invariant; violations surface as pg 23505.
	Insert(ctx context.Context, db DBTX, bet *domain.Bet) error

	// ExistsForUserAndGame reports whether the user already has a bet on the game.
	ExistsForUserAndGame(ctx context.Context, db DBTX, userID string, gameID uuid.UUID) (bool, error)

	// ListPendingForGame returns all pending bets on a game.
	ListPendingForGame(ctx context.Context, db DBTX, gameID uuid.UUID) ([]domain.Bet, error)

	// MarkSettled sets a bet's terminal status and settlement timestamp.
	MarkSettled(ctx context.Context, db DBTX, betID uuid.UUID, status domain.BetStatus, settledAt time.Time) error

	// ListByUserWithGames returns a user's bets, most recent first, with each
	// bet's game joined in.
	ListByUserWithGames(ctx context.Context, db DBTX, userID string) ([]domain.BetWithGame, error)
}

// PointsRepository provides access to the points ledger.
type PointsRepository interface {
	// AddPoints atomically upserts-and-increments the user's total and
	// returns the new total.
	AddPoints(ctx context.Context, db DBTX, userID string, amount int64) (int64, error)

	// GetPoints returns the user's total, 0 when no entry exists.
	GetPoints(ctx context.Context, db DBTX, userID string) (int64, error)
}

// OutboxRow is a stored outbox event with its sequence id.
type OutboxRow struct {
	SeqID int64
	domain.OutboxDraft
}

// OutboxRepository provides access to the event_outbox table.
type OutboxRepository interface {
	// Insert writes an outbox event (within the same transaction as the state change).
	Insert(ctx context.Context, db DBTX, draft domain.OutboxDraft) error

	// FetchUnpublished returns unpublished events in occurrence order.
	FetchUnpublished(ctx context.Context, db DBTX, limit int) ([]OutboxRow, error)

	// MarkPublished stamps events as published.
	MarkPublished(ctx context.Context, db DBTX, ids []int64) error
}

// AuthUserRepository provides access to auth_users.
type AuthUserRepository interface {
	FindByEmail(ctx context.Context, db DBTX, email string) (*domain.AuthUser, error)
	Create(ctx context.Context, db DBTX, user *domain.AuthUser) error
}
