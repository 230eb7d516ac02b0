package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/ats-resume-scorer/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "data/skills.csv", cfg.SkillsCSVPath)
	assert.InDelta(t, 0.5, cfg.ScoreSimWeight, 0.001)
	assert.InDelta(t, 0.5, cfg.ScoreStrictness, 0.001)
	assert.Equal(t, 15, cfg.ScoreTopMissing)
	assert.Equal(t, int64(256), cfg.MaxBodyKB)
	assert.Equal(t, 30*time.Second, cfg.ServerShutdownTimeout)
	assert.True(t, cfg.IsDev())
	assert.False(t, cfg.IsProd())
	assert.False(t, cfg.EmbeddingsEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("SCORE_STRICTNESS", "0.3")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProd())
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.True(t, cfg.EmbeddingsEnabled())
	assert.InDelta(t, 0.3, cfg.ScoreStrictness, 0.001)
}

func TestLoad_InvalidStrictness(t *testing.T) {
	t.Setenv("SCORE_STRICTNESS", "1.5")
	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SCORE_STRICTNESS")
}

func TestGetEmbedBackoffConfig(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	cfg, err := config.Load()
	require.NoError(t, err)
	maxElapsed, initial, maxInterval, mult := cfg.GetEmbedBackoffConfig()
	assert.Equal(t, 5*time.Second, maxElapsed)
	assert.Equal(t, 100*time.Millisecond, initial)
	assert.Equal(t, time.Second, maxInterval)
	assert.InDelta(t, 2.0, mult, 0.001)
}
