// Package predictor obtains a base risk score for a task from an opaque
// trained model and normalizes it onto the 0..100 scale.
package predictor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/alexanderramin/siterisk/internal/domain"
	"github.com/sony/gobreaker/v2"
)

// Predictor scores tasks with a Model behind a circuit breaker. It does not
// retry; a failed prediction is returned to the caller.
type Predictor struct {
	model    Model
	cfg      Config
	breaker  *gobreaker.CircuitBreaker[FeatureSet]
	observer Observer
	logger   *slog.Logger
}

// New creates a Predictor. A nil model makes every Score call fail with
// ErrModelUnavailable.
func New(model Model, cfg Config, observer Observer, logger *slog.Logger) *Predictor {
	if observer == nil {
		observer = NoopObserver{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = DefaultConfig().BreakerFailures
	}

	p := &Predictor{model: model, cfg: cfg, observer: observer, logger: logger}
	p.breaker = gobreaker.NewCircuitBreaker[FeatureSet](gobreaker.Settings{
		Name:        "risk-model",
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful:  countsAsHealthy,
		OnStateChange: func(name string, from, to gobreaker.State) {
			p.logger.Info("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})
	return p
}

// Available reports whether a model is loaded and the breaker is not open.
func (p *Predictor) Available() bool {
	return p.model != nil && p.breaker.State() != gobreaker.StateOpen
}

// Score predicts the base risk score for a task in the given environment.
func (p *Predictor) Score(ctx context.Context, task domain.ConstructionTask, env domain.Environment) (int, error) {
	start := time.Now()
	score, err := p.score(ctx, task, env)
	p.observer.OnCallComplete(CallEvent{
		TaskID:    task.ID,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
		Score:     score,
		ErrorCode: errorCode(err),
	})
	return score, err
}

func (p *Predictor) score(ctx context.Context, task domain.ConstructionTask, env domain.Environment) (int, error) {
	if p.model == nil {
		return 0, fmt.Errorf("%w: no model loaded", ErrModelUnavailable)
	}

	in := BuildInput(task, env, p.cfg.WorkerEncoding, p.cfg.WeatherVocab)
	features, err := p.breaker.Execute(func() (FeatureSet, error) {
		return p.model.Predict(ctx, in)
	})
	if err != nil {
		return 0, classify(err)
	}

	raw, err := ResolveScore(features, p.cfg.scoreKeys())
	if err != nil {
		return 0, err
	}
	return Normalize(raw)
}

// countsAsHealthy keeps inference failures out of the breaker. Only an
// unreachable model may open it.
func countsAsHealthy(err error) bool {
	return err == nil || !(errors.Is(err, ErrModelUnavailable) || isConnectionError(err))
}

func classify(err error) error {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	case errors.Is(err, ErrModelUnavailable), errors.Is(err, ErrInferenceFailed):
		return err
	case isConnectionError(err):
		return fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	default:
		return fmt.Errorf("%w: %v", ErrInferenceFailed, err)
	}
}

// ResolveScore returns the first feature present in keys, in order.
func ResolveScore(features FeatureSet, keys []string) (float64, error) {
	for _, k := range keys {
		if v, ok := features[k]; ok {
			return v, nil
		}
	}
	return 0, &ScoreNotFoundError{Available: features.Names()}
}

// Normalize maps a raw model output onto an integer score in [0,100].
// Values in [0,1] are treated as fractions, so exactly 1 becomes 100.
func Normalize(raw float64) (int, error) {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0, fmt.Errorf("%w: non-finite score %v", ErrInferenceFailed, raw)
	}
	if raw >= 0 && raw <= 1 {
		raw *= 100
	}
	score := int(math.Round(raw))
	if score < domain.MinScore {
		return domain.MinScore, nil
	}
	if score > domain.MaxScore {
		return domain.MaxScore, nil
	}
	return score, nil
}
