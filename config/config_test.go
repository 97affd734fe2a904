package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 14, cfg.Planner.SprintDays)
	assert.Equal(t, "sprint", cfg.Planner.Mode)
	assert.Equal(t, "primary", cfg.Calendar.CalendarID)
	assert.Equal(t, "0 0 2 * * *", cfg.Cron.ProgressSpec)
	require.NoError(t, cfg.Validate())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PLANNER_SPRINT_DAYS", "7")
	t.Setenv("PLANNER_SPAN", "shared")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("APP_ENV", "Production")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 7, cfg.Planner.SprintDays)
	assert.Equal(t, "shared", cfg.Planner.Span)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.True(t, cfg.IsProduction())
}

func TestRedisActive(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.Redis.Active())

	t.Setenv("REDIS_ENABLED", "false")
	cfg, err = FromEnv()
	require.NoError(t, err)
	assert.False(t, cfg.Redis.Active())

	off := RedisConfig{Enabled: true, Addr: " "}
	assert.False(t, off.Active())
}

func TestFromEnv_BadInt(t *testing.T) {
	t.Setenv("DB_PORT", "abc")

	_, err := FromEnv()
	assert.ErrorContains(t, err, "parse database config")
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := FromEnv()
		require.NoError(t, err)
		return cfg
	}

	cfg := base()
	cfg.Planner.SprintDays = 0
	assert.ErrorContains(t, cfg.Validate(), "PLANNER_SPRINT_DAYS")

	cfg = base()
	cfg.Firebase.Enabled = true
	assert.ErrorContains(t, cfg.Validate(), "FIREBASE_CREDENTIALS_PATH")

	cfg = base()
	cfg.Calendar.Enabled = true
	assert.ErrorContains(t, cfg.Validate(), "GCAL_CREDENTIALS_PATH")

	cfg = base()
	cfg.Server.Port = ""
	assert.ErrorContains(t, cfg.Validate(), "PORT is required")
}

func TestOrigins(t *testing.T) {
	s := ServerConfig{CORSOrigins: " http://a.test, ,http://b.test "}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, s.Origins())
}
