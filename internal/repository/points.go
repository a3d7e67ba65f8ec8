package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type pointsRepo struct{}

// NewPointsRepository returns a pgx-backed PointsRepository.
func NewPointsRepository() PointsRepository {
	return &pointsRepo{}
}

// AddPoints performs the find-or-create-then-add as a single upsert so that
// concurrent settlements never lose an increment.
func (r *pointsRepo) AddPoints(ctx context.Context, db DBTX, userID string, amount int64) (int64, error) {
	var total int64
	err := db.QueryRow(ctx, `
		INSERT INTO points (user_id, total_points)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET
			total_points = points.total_points + EXCLUDED.total_points,
			updated_at = now()
		RETURNING total_points`,
		userID, amount).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("add points: %w", err)
	}
	return total, nil
}

func (r *pointsRepo) GetPoints(ctx context.Context, db DBTX, userID string) (int64, error) {
	var total int64
	err := db.QueryRow(ctx,
		`SELECT total_points FROM points WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("get points: %w", err)
	}
	return total, nil
}
