package infra

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 3001, cfg.APIPort)
	assert.Equal(t, 9102, cfg.MetricsPort)
	assert.Equal(t, -110, cfg.DefaultOdds)
	assert.Equal(t, int64(100), cfg.PointsPerWin)
	assert.Equal(t, "Cleveland Cavaliers", cfg.FocusTeamName)
	assert.Equal(t, 15*time.Minute, cfg.OddsRefreshInterval)
	assert.False(t, cfg.OddsAutoRefresh)
	assert.False(t, cfg.KafkaEnabled)
	assert.False(t, cfg.DevSeedEnabled)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("BET_DEFAULT_ODDS", "-105")
	t.Setenv("POINTS_PER_WIN", "250")
	t.Setenv("FOCUS_TEAM_NAME", "Boston Celtics")
	t.Setenv("ODDS_REFRESH_INTERVAL", "1m")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, -105, cfg.DefaultOdds)
	assert.Equal(t, int64(250), cfg.PointsPerWin)
	assert.Equal(t, "Boston Celtics", cfg.FocusTeamName)
	assert.Equal(t, time.Minute, cfg.OddsRefreshInterval)
}

func TestConfigValidate_RejectsDefaultSecret(t *testing.T) {
	cfg := &Config{JWTSecret: "change-me-in-production"}
	assert.Error(t, cfg.Validate())
}

func TestConfigValidate_RejectsShortSecret(t *testing.T) {
	cfg := &Config{JWTSecret: "short"}
	assert.Error(t, cfg.Validate())
}

func TestConfigValidate_AcceptsStrongSecret(t *testing.T) {
	cfg := &Config{JWTSecret: "0123456789abcdef0123456789abcdef"}
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate_InsecureBypass(t *testing.T) {
	cfg := &Config{JWTSecret: "change-me-in-production", AllowInsecureDefaults: true}
	assert.NoError(t, cfg.Validate())
}

func TestConfigDSN(t *testing.T) {
	cfg := &Config{
		PGHost: "db", PGPort: 5433, PGUser: "u", PGPassword: "p", PGDatabase: "courtside",
	}
	assert.Equal(t, "postgres://u:p@db:5433/courtside?sslmode=disable", cfg.DSN())

	cfg.DatabaseURL = "postgres://full/url"
	assert.Equal(t, "postgres://full/url", cfg.DSN())
}
