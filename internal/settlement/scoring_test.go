package settlement

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtside/api/internal/domain"
)

func ptr(f float64) *float64 { return &f }

func testGame(spread float64) *domain.Game {
	return &domain.Game{
		ID:         uuid.New(),
		ExternalID: "ext-1",
		HomeTeam:   "Cleveland Cavaliers",
		AwayTeam:   "Boston Celtics",
		Spread:     ptr(spread),
		Status:     domain.GameStatusUpcoming,
	}
}

func pendingBet(side domain.BetSide, line *float64) domain.Bet {
	return domain.Bet{
		ID:     uuid.New(),
		UserID: uuid.NewString(),
		Side:   side,
		Line:   line,
		Status: domain.BetStatusPending,
	}
}

func TestScoreBets_FrozenLineWinsOverCurrentSpread(t *testing.T) {
	// Game spread has since moved to -9.5, but the bet froze -5.5 at
	// placement. Home wins by 7: covers the frozen line, not the current one.
	game := testGame(-9.5)
	bets := []domain.Bet{pendingBet(domain.BetSideHome, ptr(-5.5))}

	scored := ScoreBets(game, bets, 107, 100)
	require.Len(t, scored, 1)
	assert.Equal(t, domain.BetStatusWon, scored[0].Outcome)
}

func TestScoreBets_NilLineFallsBackToGameSpread(t *testing.T) {
	game := testGame(-5.5)
	bets := []domain.Bet{pendingBet(domain.BetSideHome, nil)}

	scored := ScoreBets(game, bets, 110, 100)
	require.Len(t, scored, 1)
	assert.Equal(t, domain.BetStatusWon, scored[0].Outcome)
}

func TestScoreBets_SkipsSettledBets(t *testing.T) {
	game := testGame(-5.5)
	settled := pendingBet(domain.BetSideHome, ptr(-5.5))
	settled.Status = domain.BetStatusWon

	scored := ScoreBets(game, []domain.Bet{settled}, 110, 100)
	assert.Empty(t, scored)
}

func TestScoreBets_MixedSidesAndOutcomes(t *testing.T) {
	// Home wins 105-100 against a -5 line: home side pushes, away side
	// pushes, a home bet frozen at -3.5 covers, and one frozen at -6.5 loses.
	game := testGame(-5)
	bets := []domain.Bet{
		pendingBet(domain.BetSideHome, ptr(-5)),
		pendingBet(domain.BetSideAway, ptr(-5)),
		pendingBet(domain.BetSideHome, ptr(-3.5)),
		pendingBet(domain.BetSideHome, ptr(-6.5)),
	}

	scored := ScoreBets(game, bets, 105, 100)
	require.Len(t, scored, 4)
	assert.Equal(t, domain.BetStatusPush, scored[0].Outcome)
	assert.Equal(t, domain.BetStatusPush, scored[1].Outcome)
	assert.Equal(t, domain.BetStatusWon, scored[2].Outcome)
	assert.Equal(t, domain.BetStatusLost, scored[3].Outcome)
}

func TestScoreBets_EmptyInput(t *testing.T) {
	scored := ScoreBets(testGame(-5.5), nil, 100, 90)
	assert.Empty(t, scored)
}
