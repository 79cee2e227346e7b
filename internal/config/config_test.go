package config

import (
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/siterisk/internal/cache"
	"github.com/alexanderramin/siterisk/internal/predictor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	// Keep a developer's .env from leaking into the defaults.
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("HOME", "/home/site")
	t.Setenv("SITERISK_DB", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/home/site", ".siterisk", "siterisk.db"), cfg.DBPath)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.Equal(t, predictor.DefaultConfig().WorkerEncoding, cfg.Predictor.WorkerEncoding)
	assert.Equal(t, predictor.VocabModel, cfg.Predictor.WeatherVocab)
	assert.Empty(t, cfg.Predictor.Endpoint)
	assert.Equal(t, cache.DefaultTTL, cfg.CacheTTL)
	assert.Equal(t, 36.0, cfg.Weather.Latitude)
	assert.Empty(t, cfg.RedisURL)
	assert.True(t, cfg.RescoreOnEdit)
}

func TestLoad_Overrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("SITERISK_DB", "/tmp/site.db")
	t.Setenv("SITERISK_LOG_LEVEL", "DEBUG")
	t.Setenv("SITERISK_TZ", "Asia/Seoul")
	t.Setenv("SITERISK_MODEL_ENDPOINT", "http://model:8080")
	t.Setenv("SITERISK_MODEL_TIMEOUT_MS", "2500")
	t.Setenv("SITERISK_MODEL_WORKER_ENCODING", "int")
	t.Setenv("SITERISK_MODEL_WEATHER_VOCAB", "canonical")
	t.Setenv("SITERISK_BREAKER_FAILURES", "7")
	t.Setenv("SITERISK_BREAKER_TIMEOUT", "90s")
	t.Setenv("SITERISK_WEATHER_KEY", "k")
	t.Setenv("SITERISK_SITE_LAT", "37.56")
	t.Setenv("SITERISK_SITE_LON", "126.97")
	t.Setenv("SITERISK_REDIS_URL", "redis://localhost:6379/2")
	t.Setenv("SITERISK_CACHE_TTL", "2h")
	t.Setenv("SITERISK_RESCORE_ON_EDIT", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/site.db", cfg.DBPath)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "Asia/Seoul", cfg.Location.String())
	assert.Equal(t, "http://model:8080", cfg.Predictor.Endpoint)
	assert.Equal(t, 2500, cfg.Predictor.TimeoutMs)
	assert.Equal(t, predictor.EncodeWorkersInt, cfg.Predictor.WorkerEncoding)
	assert.Equal(t, predictor.VocabCanonical, cfg.Predictor.WeatherVocab)
	assert.Equal(t, uint32(7), cfg.Predictor.BreakerFailures)
	assert.Equal(t, 90*time.Second, cfg.Predictor.BreakerTimeout)
	assert.Equal(t, "k", cfg.Weather.APIKey)
	assert.Equal(t, 37.56, cfg.Weather.Latitude)
	assert.Equal(t, 126.97, cfg.Weather.Longitude)
	assert.Equal(t, "redis://localhost:6379/2", cfg.RedisURL)
	assert.Equal(t, 2*time.Hour, cfg.CacheTTL)
	assert.False(t, cfg.RescoreOnEdit)
}

func TestLoad_InvalidValuesKeepDefaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("SITERISK_DB", "/tmp/site.db")
	t.Setenv("SITERISK_MODEL_TIMEOUT_MS", "soon")
	t.Setenv("SITERISK_MODEL_WORKER_ENCODING", "roman")
	t.Setenv("SITERISK_BREAKER_FAILURES", "-2")

	cfg, err := Load()
	require.NoError(t, err)
	def := predictor.DefaultConfig()
	assert.Equal(t, def.TimeoutMs, cfg.Predictor.TimeoutMs)
	assert.Equal(t, def.WorkerEncoding, cfg.Predictor.WorkerEncoding)
	assert.Equal(t, def.BreakerFailures, cfg.Predictor.BreakerFailures)
}

func TestLoad_UnknownTimeZone(t *testing.T) {
	chdirTemp(t)
	t.Setenv("SITERISK_DB", "/tmp/site.db")
	t.Setenv("SITERISK_TZ", "Mars/Olympus")

	_, err := Load()
	assert.Error(t, err)
}
