package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NVIDIA_API_KEY", "")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")

	cfg := Load()

	assert.Equal(t, "8000", cfg.App.Port)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
	assert.Empty(t, cfg.Keys.Nvidia)
	assert.Equal(t, "nvidia", cfg.Ai.LLMProvider)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgresql://u:p@db:5432/notes")
	t.Setenv("DB_CONN_MAX_LIFETIME", "15m")
	t.Setenv("NVIDIA_API_KEY", "nvapi-test")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("GO_ENV", "production")

	cfg := Load()

	assert.Equal(t, "postgresql://u:p@db:5432/notes", cfg.Database.Connection)
	assert.Equal(t, 15*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, "nvapi-test", cfg.Keys.Nvidia)
	assert.True(t, cfg.Otel.Enabled)
	assert.True(t, cfg.IsProduction())
}
