package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/courtside/api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const betColumns = `id, user_id, game_id, stake, side, line, odds, status, settled_at, created_at`

type betRepo struct{}

// NewBetRepository returns a pgx-backed BetRepository.
func NewBetRepository() BetRepository {
	return &betRepo{}
}

func (r *betRepo) Insert(ctx context.Context, db DBTX, bet *domain.Bet) error {
	_, err := db.Exec(ctx, `
		INSERT INTO bets (id, user_id, game_id, stake, side, line, odds, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		bet.ID, bet.UserID, bet.GameID, bet.Stake, bet.Side, bet.Line,
		bet.Odds, bet.Status, bet.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert bet: %w", err)
	}
	return nil
}

func (r *betRepo) ExistsForUserAndGame(ctx context.Context, db DBTX, userID string, gameID uuid.UUID) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM bets WHERE user_id = $1 AND game_id = $2)`,
		userID, gameID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check existing bet: %w", err)
	}
	return exists, nil
}

func (r *betRepo) ListPendingForGame(ctx context.Context, db DBTX, gameID uuid.UUID) ([]domain.Bet, error) {
	rows, err := db.Query(ctx, `
		SELECT `+betColumns+` FROM bets
		WHERE game_id = $1 AND status = 'pending'
		ORDER BY created_at ASC`, gameID)
	if err != nil {
		return nil, fmt.Errorf("query pending bets: %w", err)
	}
	defer rows.Close()

	var bets []domain.Bet
	for rows.Next() {
		var b domain.Bet
		if err := scanBet(rows, &b); err != nil {
			return nil, err
		}
		bets = append(bets, b)
	}
	return bets, rows.Err()
}

func (r *betRepo) MarkSettled(ctx context.Context, db DBTX, betID uuid.UUID, status domain.BetStatus, settledAt time.Time) error {
	tag, err := db.Exec(ctx, `
		UPDATE bets SET status = $2, settled_at = $3
		WHERE id = $1 AND status = 'pending'`,
		betID, status, settledAt)
	if err != nil {
		return fmt.Errorf("mark bet settled: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("bet %s not pending", betID)
	}
	return nil
}

func (r *betRepo) ListByUserWithGames(ctx context.Context, db DBTX, userID string) ([]domain.BetWithGame, error) {
	rows, err := db.Query(ctx, `
		SELECT b.id, b.user_id, b.game_id, b.stake, b.side, b.line, b.odds,
		       b.status, b.settled_at, b.created_at,
		       g.id, g.external_id, g.home_team, g.away_team, g.start_time, g.spread,
		       g.bookmaker_key, g.status, g.home_score, g.away_score,
		       g.final_home_score, g.final_away_score, g.created_at, g.updated_at
		FROM bets b
		JOIN games g ON g.id = b.game_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query user bets: %w", err)
	}
	defer rows.Close()

	var bets []domain.BetWithGame
	for rows.Next() {
		var b domain.BetWithGame
		var g domain.Game
		err := rows.Scan(
			&b.ID, &b.UserID, &b.GameID, &b.Stake, &b.Side, &b.Line, &b.Odds,
			&b.Status, &b.SettledAt, &b.CreatedAt,
			&g.ID, &g.ExternalID, &g.HomeTeam, &g.AwayTeam, &g.StartTime, &g.Spread,
			&g.BookmakerKey, &g.Status, &g.HomeScore, &g.AwayScore,
			&g.FinalHomeScore, &g.FinalAwayScore, &g.CreatedAt, &g.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan user bet: %w", err)
		}
		b.Game = &g
		bets = append(bets, b)
	}
	return bets, rows.Err()
}

func scanBet(row pgx.Row, b *domain.Bet) error {
	err := row.Scan(
		&b.ID, &b.UserID, &b.GameID, &b.Stake, &b.Side, &b.Line,
		&b.Odds, &b.Status, &b.SettledAt, &b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("scan bet: %w", err)
	}
	return nil
}
