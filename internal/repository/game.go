package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/courtside/api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const gameColumns = `id, external_id, home_team, away_team, start_time, spread,
	bookmaker_key, status, home_score, away_score, final_home_score, final_away_score,
	created_at, updated_at`

type gameRepo struct{}

// NewGameRepository returns a pgx-backed GameRepository.
func NewGameRepository() GameRepository {
	return &gameRepo{}
}

func (r *gameRepo) FindByExternalID(ctx context.Context, db DBTX, externalID string) (*domain.Game, error) {
	row := db.QueryRow(ctx,
		`SELECT `+gameColumns+` FROM games WHERE external_id = $1`, externalID)
	return scanGame(row)
}

func (r *gameRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Game, error) {
	row := db.QueryRow(ctx,
		`SELECT `+gameColumns+` FROM games WHERE id = $1`, id)
	return scanGame(row)
}

func (r *gameRepo) FindNextUpcoming(ctx context.Context, db DBTX, now time.Time) (*domain.Game, error) {
	row := db.QueryRow(ctx, `
		SELECT `+gameColumns+` FROM games
		WHERE status = 'upcoming' AND start_time > $1
		ORDER BY start_time ASC
		LIMIT 1`, now)
	return scanGame(row)
}

func (r *gameRepo) LockByExternalID(ctx context.Context, tx pgx.Tx, externalID string) (*domain.Game, error) {
	row := tx.QueryRow(ctx,
		`SELECT `+gameColumns+` FROM games WHERE external_id = $1 FOR UPDATE`, externalID)
	return scanGame(row)
}

func (r *gameRepo) Upsert(ctx context.Context, db DBTX, game *domain.Game) (*domain.Game, error) {
	row := db.QueryRow(ctx, `
		INSERT INTO games (id, external_id, home_team, away_team, start_time, spread, bookmaker_key, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (external_id) DO UPDATE SET
			home_team = EXCLUDED.home_team,
			away_team = EXCLUDED.away_team,
			start_time = EXCLUDED.start_time,
			spread = EXCLUDED.spread,
			bookmaker_key = EXCLUDED.bookmaker_key,
			status = CASE
				WHEN games.status = 'final' THEN games.status
				ELSE EXCLUDED.status
			END,
			updated_at = now()
		RETURNING `+gameColumns,
		uuid.New(), game.ExternalID, game.HomeTeam, game.AwayTeam,
		game.StartTime, game.Spread, game.BookmakerKey, game.Status)
	stored, err := scanGame(row)
	if err != nil {
		return nil, fmt.Errorf("upsert game: %w", err)
	}
	return stored, nil
}

func (r *gameRepo) Finalize(ctx context.Context, tx pgx.Tx, id uuid.UUID, finalHomeScore, finalAwayScore int) (*domain.Game, error) {
	row := tx.QueryRow(ctx, `
		UPDATE games SET
			status = 'final',
			final_home_score = $2,
			final_away_score = $3,
			updated_at = now()
		WHERE id = $1 AND status = 'upcoming'
		RETURNING `+gameColumns, id, finalHomeScore, finalAwayScore)
	game, err := scanGame(row)
	if err != nil {
		return nil, fmt.Errorf("finalize game: %w", err)
	}
	if game == nil {
		return nil, domain.ErrConflict("only upcoming games can be settled")
	}
	return game, nil
}

func scanGame(row pgx.Row) (*domain.Game, error) {
	var g domain.Game
	err := row.Scan(
		&g.ID, &g.ExternalID, &g.HomeTeam, &g.AwayTeam, &g.StartTime, &g.Spread,
		&g.BookmakerKey, &g.Status, &g.HomeScore, &g.AwayScore,
		&g.FinalHomeScore, &g.FinalAwayScore, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan game: %w", err)
	}
	return &g, nil
}
