package predictor

import (
	"context"
	"errors"
	"log/slog"
)

// CallEvent records metadata about a single model invocation.
type CallEvent struct {
	TaskID    string
	LatencyMs int64
	Success   bool
	Score     int
	ErrorCode string
}

// Observer receives events about model calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes call events to a structured logger.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer that logs events to logger.
func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	level := slog.LevelDebug
	if !event.Success {
		level = slog.LevelWarn
	}
	o.logger.Log(context.Background(), level, "model call",
		"task_id", event.TaskID,
		"latency_ms", event.LatencyMs,
		"success", event.Success,
		"score", event.Score,
		"error_code", event.ErrorCode,
	)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrModelUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrScoreNotFound):
		return "SCORE_NOT_FOUND"
	case errors.Is(err, ErrInferenceFailed):
		return "INFERENCE_FAILED"
	default:
		return "UNKNOWN"
	}
}
