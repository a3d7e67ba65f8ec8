package domain

import (
	"time"

	"github.com/google/uuid"
)

// GameStatus tracks a game's lifecycle.
type GameStatus string

const (
	GameStatusUpcoming  GameStatus = "upcoming"
	GameStatusLive      GameStatus = "live"
	GameStatusCompleted GameStatus = "completed"
	GameStatusFinal     GameStatus = "final"
)

// Game represents one tracked game. ExternalID is the odds provider's event
// id and is distinct from the internal storage identity.
type Game struct {
	ID             uuid.UUID  `json:"id"`
	ExternalID     string     `json:"gameId"`
	HomeTeam       string     `json:"homeTeam"`
	AwayTeam       string     `json:"awayTeam"`
	StartTime      time.Time  `json:"startTime"`
	Spread         *float64   `json:"spread,omitempty"` // home-team handicap; negative favors home
	BookmakerKey   string     `json:"bookmakerKey,omitempty"`
	Status         GameStatus `json:"status"`
	HomeScore      *int       `json:"homeScore,omitempty"`
	AwayScore      *int       `json:"awayScore,omitempty"`
	FinalHomeScore *int       `json:"finalHomeScore,omitempty"`
	FinalAwayScore *int       `json:"finalAwayScore,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// AcceptsBets reports whether new bets may be placed on the game.
func (g *Game) AcceptsBets() bool {
	return g.Status == GameStatusUpcoming
}

// CurrentSpread returns the stored spread, or 0 when unset.
func (g *Game) CurrentSpread() float64 {
	if g.Spread == nil {
		return 0
	}
	return *g.Spread
}
