package domain

import (
	"time"

	"github.com/google/uuid"
)

// BetSide identifies which team the bettor backs.
type BetSide string

const (
	BetSideHome BetSide = "home"
	BetSideAway BetSide = "away"
)

// BetStatus tracks a bet's lifecycle. A bet is created pending and
// transitions exactly once to won, lost or push during settlement.
// Refunded is reserved for cancellation paths.
type BetStatus string

const (
	BetStatusPending  BetStatus = "pending"
	BetStatusWon      BetStatus = "won"
	BetStatusLost     BetStatus = "lost"
	BetStatusPush     BetStatus = "push"
	BetStatusRefunded BetStatus = "refunded"
)

// Bet represents a placed spread bet. Line is the game's home-team spread
// frozen at placement time; settlement always scores against it, never
// against the game's current spread.
type Bet struct {
	ID        uuid.UUID  `json:"id"`
	UserID    string     `json:"userId"`
	GameID    uuid.UUID  `json:"gameId"`
	Stake     float64    `json:"amount"`
	Side      BetSide    `json:"side"`
	Line      *float64   `json:"line,omitempty"`
	Odds      int        `json:"odds"`
	Status    BetStatus  `json:"status"`
	SettledAt *time.Time `json:"settledAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Settled reports whether the bet has reached a terminal status.
func (b *Bet) Settled() bool {
	return b.Status != BetStatusPending
}

// EffectiveLine returns the frozen line, falling back to the game's current
// spread for legacy bets stored without one.
func (b *Bet) EffectiveLine(game *Game) float64 {
	if b.Line != nil {
		return *b.Line
	}
	return game.CurrentSpread()
}

// BetWithGame is a bet joined with its game's details, as returned by the
// bet-history listing.
type BetWithGame struct {
	Bet
	Game *Game `json:"game,omitempty"`
}
