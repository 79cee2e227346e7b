// Package config loads siterisk settings from the environment, with an
// optional .env file in the working directory.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/siterisk/internal/cache"
	"github.com/alexanderramin/siterisk/internal/predictor"
	"github.com/alexanderramin/siterisk/internal/weather"
	"github.com/joho/godotenv"
)

// Config holds every runtime setting.
type Config struct {
	DBPath   string
	LogLevel slog.Level
	Location *time.Location

	Predictor predictor.Config
	Weather   weather.Config

	RedisURL string
	CacheTTL time.Duration

	// RescoreOnEdit re-runs the predictor after material task edits.
	RescoreOnEdit bool
}

// Load reads .env (if present) and then the environment. Unset or
// unparseable values keep their defaults; an unknown time zone is an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbPath := getEnv("SITERISK_DB", "")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".siterisk", "siterisk.db")
	}

	loc := time.Local
	if name := getEnv("SITERISK_TZ", ""); name != "" {
		l, err := time.LoadLocation(name)
		if err != nil {
			return nil, fmt.Errorf("loading time zone %q: %w", name, err)
		}
		loc = l
	}

	pred := predictor.DefaultConfig()
	pred.Endpoint = getEnv("SITERISK_MODEL_ENDPOINT", pred.Endpoint)
	pred.TimeoutMs = getIntEnv("SITERISK_MODEL_TIMEOUT_MS", pred.TimeoutMs)
	switch predictor.WorkerEncoding(getEnv("SITERISK_MODEL_WORKER_ENCODING", "")) {
	case predictor.EncodeWorkersInt:
		pred.WorkerEncoding = predictor.EncodeWorkersInt
	case predictor.EncodeWorkersBucket:
		pred.WorkerEncoding = predictor.EncodeWorkersBucket
	}
	switch predictor.WeatherVocabulary(getEnv("SITERISK_MODEL_WEATHER_VOCAB", "")) {
	case predictor.VocabCanonical:
		pred.WeatherVocab = predictor.VocabCanonical
	case predictor.VocabModel:
		pred.WeatherVocab = predictor.VocabModel
	}
	if n := getIntEnv("SITERISK_BREAKER_FAILURES", int(pred.BreakerFailures)); n > 0 {
		pred.BreakerFailures = uint32(n)
	}
	pred.BreakerTimeout = getDurationEnv("SITERISK_BREAKER_TIMEOUT", pred.BreakerTimeout)

	wx := weather.DefaultConfig()
	wx.URL = getEnv("SITERISK_WEATHER_URL", wx.URL)
	wx.APIKey = getEnv("SITERISK_WEATHER_KEY", "")
	wx.Latitude = getFloatEnv("SITERISK_SITE_LAT", wx.Latitude)
	wx.Longitude = getFloatEnv("SITERISK_SITE_LON", wx.Longitude)

	return &Config{
		DBPath:    dbPath,
		LogLevel:  parseLevel(getEnv("SITERISK_LOG_LEVEL", "warn")),
		Location:  loc,
		Predictor: pred,
		Weather:   wx,
		RedisURL:  getEnv("SITERISK_REDIS_URL", ""),
		CacheTTL:  getDurationEnv("SITERISK_CACHE_TTL", cache.DefaultTTL),

		RescoreOnEdit: getBoolEnv("SITERISK_RESCORE_ON_EDIT", true),
	}, nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
