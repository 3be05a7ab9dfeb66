package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(8188), cfg.HTTP.Port)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 5, cfg.Practice.SampleSize)
	assert.Equal(t, 85.0, cfg.Practice.PassThreshold)
	assert.Equal(t, 100, cfg.Practice.MaxGuessLength)
	assert.Equal(t, 1000, cfg.Translator.MaxSourceLength)
	assert.Equal(t, 5, cfg.Ledger.PageSize)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.Equal(t, 200*time.Millisecond, cfg.Retry.InitialInterval)
	assert.Equal(t, 10*time.Second, cfg.Translator.Timeout)
	assert.Equal(t, "/media", cfg.Speech.PublicBaseURL)
	assert.True(t, cfg.Tagger.JapaneseEnabled)
	assert.Equal(t, 24*time.Hour, cfg.Maintenance.AudioSweepGrace)
}

func TestNewConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PRACTICE_SAMPLE_SIZE", "3")
	t.Setenv("PRACTICE_PASS_THRESHOLD", "90")
	t.Setenv("LEDGER_PAGE_SIZE", "10")
	t.Setenv("TRANSLATOR_TIMEOUT", "1s")
	t.Setenv("LOG_FORMAT", "json")

	cfg := NewConfig()

	assert.Equal(t, 3, cfg.Practice.SampleSize)
	assert.Equal(t, 90.0, cfg.Practice.PassThreshold)
	assert.Equal(t, 10, cfg.Ledger.PageSize)
	assert.Equal(t, time.Second, cfg.Translator.Timeout)
	assert.Equal(t, "json", cfg.Log.Format)
}
