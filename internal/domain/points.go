package domain

import "time"

// PointsEntry is a user's running loyalty point total. One row per user,
// mutated only by atomic upsert-increment, so the total never decreases.
type PointsEntry struct {
	UserID      string    `json:"userId"`
	TotalPoints int64     `json:"totalPoints"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
