package settlement

import (
	"github.com/courtside/api/internal/domain"
)

// ScoredBet pairs a pending bet with its computed outcome.
type ScoredBet struct {
	Bet     domain.Bet
	Outcome domain.BetStatus
}

// ScoreBets computes the outcome for every pending bet on a game given the
// final score. Each bet is scored against its own frozen line; the game's
// current spread is used only when a bet carries no line. Pure function: no
// I/O, deterministic for fixed inputs.
func ScoreBets(game *domain.Game, bets []domain.Bet, finalHomeScore, finalAwayScore int) []ScoredBet {
	scored := make([]ScoredBet, 0, len(bets))
	for _, bet := range bets {
		if bet.Status != domain.BetStatusPending {
			continue
		}
		line := bet.EffectiveLine(game)
		scored = append(scored, ScoredBet{
			Bet:     bet,
			Outcome: domain.ComputeOutcome(bet.Side, line, finalHomeScore, finalAwayScore),
		})
	}
	return scored
}
