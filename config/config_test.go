package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://crm@db:5432/crm")

	cfg := Load()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "postgres://crm@db:5432/crm", cfg.SQL.URL, "raw SQL reuses the database URL")
	assert.Empty(t, cfg.Redis.URL)
	assert.Equal(t, 12, cfg.Scheduler.MaxCatchUp)
	assert.Equal(t, 10*time.Minute, cfg.Scheduler.LockTTL)
	assert.True(t, cfg.Scheduler.Enabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SQL_DATABASE_URL", "postgres://reports@replica:5432/crm")
	t.Setenv("SCHEDULER_ENABLED", "false")
	t.Setenv("SCHEDULER_LOCK_TTL", "90s")
	t.Setenv("RECURRING_MAX_CATCH_UP", "not-a-number")

	cfg := Load()

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "postgres://reports@replica:5432/crm", cfg.SQL.URL)
	assert.False(t, cfg.Scheduler.Enabled)
	assert.Equal(t, 90*time.Second, cfg.Scheduler.LockTTL)
	assert.Equal(t, 12, cfg.Scheduler.MaxCatchUp, "malformed values keep the default")
}
