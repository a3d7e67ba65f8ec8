package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType enumerates all domain event types.
type EventType string

const (
	EventUserCreated   EventType = "user.created"
	EventGameUpserted  EventType = "game.upserted"
	EventGameSettled   EventType = "game.settled"
	EventBetPlaced     EventType = "bet.placed"
	EventBetSettled    EventType = "bet.settled"
	EventPointsAwarded EventType = "points.awarded"
)

// AggregateType enumerates the aggregate root types for outbox events.
type AggregateType string

const (
	AggregateUser   AggregateType = "user"
	AggregateGame   AggregateType = "game"
	AggregateBet    AggregateType = "bet"
	AggregatePoints AggregateType = "points"
)

// OutboxDraft is an event staged for publication. It is inserted into the
// outbox table in the same transaction as the state change it describes.
type OutboxDraft struct {
	EventID       uuid.UUID       `json:"event_id"`
	AggregateType AggregateType   `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EventType     EventType       `json:"event_type"`
	Payload       json.RawMessage `json:"payload"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// NewBetPlacedEvent creates the event emitted when a bet is accepted.
func NewBetPlacedEvent(bet *Bet) OutboxDraft {
	payload, _ := json.Marshal(bet)
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateBet,
		AggregateID:   bet.ID.String(),
		EventType:     EventBetPlaced,
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}

// NewBetSettledEvent creates the event emitted when a bet reaches a terminal
// status during settlement.
func NewBetSettledEvent(bet *Bet) OutboxDraft {
	payload, _ := json.Marshal(bet)
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateBet,
		AggregateID:   bet.ID.String(),
		EventType:     EventBetSettled,
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}

// NewUserCreatedEvent creates the event emitted on account registration.
func NewUserCreatedEvent(user *AuthUser) OutboxDraft {
	payload, _ := json.Marshal(map[string]interface{}{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"role":    user.Role,
	})
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateUser,
		AggregateID:   user.ID.String(),
		EventType:     EventUserCreated,
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}

// NewGameUpsertedEvent creates the event emitted when a game is created or
// refreshed from the odds feed.
func NewGameUpsertedEvent(game *Game) OutboxDraft {
	payload, _ := json.Marshal(game)
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateGame,
		AggregateID:   game.ExternalID,
		EventType:     EventGameUpserted,
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}

// NewGameSettledEvent creates the event emitted when a game is finalized.
func NewGameSettledEvent(game *Game) OutboxDraft {
	payload, _ := json.Marshal(game)
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateGame,
		AggregateID:   game.ExternalID,
		EventType:     EventGameSettled,
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}

// NewPointsAwardedEvent creates the event emitted for each winning-bet bonus.
func NewPointsAwardedEvent(userID string, amount, newTotal int64, betID uuid.UUID) OutboxDraft {
	payload, _ := json.Marshal(map[string]interface{}{
		"user_id":   userID,
		"amount":    amount,
		"new_total": newTotal,
		"bet_id":    betID.String(),
	})
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregatePoints,
		AggregateID:   userID,
		EventType:     EventPointsAwarded,
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}
