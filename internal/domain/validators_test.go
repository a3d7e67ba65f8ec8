package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("user@example.com"))
	assert.NoError(t, ValidateEmail("a.b+c@sub.domain.io"))

	for _, bad := range []string{"", "not-an-email", "@example.com", "user@", "user @example.com"} {
		assert.Error(t, ValidateEmail(bad), bad)
	}
}

func TestParseBetSide(t *testing.T) {
	side, err := ParseBetSide("home")
	require.NoError(t, err)
	assert.Equal(t, BetSideHome, side)

	side, err = ParseBetSide("away")
	require.NoError(t, err)
	assert.Equal(t, BetSideAway, side)

	for _, bad := range []string{"", "HOME", "over", "draw"} {
		_, err := ParseBetSide(bad)
		require.Error(t, err, bad)
		assert.Contains(t, err.Error(), `"home" or "away"`)
	}
}

func TestValidateStake(t *testing.T) {
	assert.NoError(t, ValidateStake(50))
	assert.NoError(t, ValidateStake(0.01))

	for _, bad := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		assert.Error(t, ValidateStake(bad))
	}
}
