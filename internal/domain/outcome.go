package domain

// Outcome is the result of scoring one bet against a final score.
type Outcome = BetStatus

// ComputeOutcome scores a spread bet. line is the home-team spread as frozen
// on the bet (negative favors home). The bettor's margin is homeMargin for a
// home bet and its negation for an away bet; the bettor's line is likewise
// negated for the away side. The bet wins when the bettor's margin beats the
// handicap, pushes on an exact tie, and loses otherwise.
//
// The push boundary is strict: margin+line > 0 wins, == 0 pushes. An exact
// tie is only reachable on whole-number lines, but the rule holds regardless.
func ComputeOutcome(side BetSide, line float64, finalHomeScore, finalAwayScore int) Outcome {
	margin := float64(finalHomeScore - finalAwayScore)
	if side == BetSideAway {
		margin = -margin
		line = -line
	}

	switch {
	case margin+line > 0:
		return BetStatusWon
	case margin+line == 0:
		return BetStatusPush
	default:
		return BetStatusLost
	}
}
