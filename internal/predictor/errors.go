package predictor

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrModelUnavailable indicates the model could not be loaded or reached.
	ErrModelUnavailable = errors.New("risk model unavailable")

	// ErrScoreNotFound indicates none of the known score names was present
	// in the model output.
	ErrScoreNotFound = errors.New("risk score not found in model output")

	// ErrInferenceFailed indicates the model ran but its output was unusable.
	ErrInferenceFailed = errors.New("risk inference failed")
)

// ScoreNotFoundError carries the feature names the model did return.
type ScoreNotFoundError struct {
	Available []string
}

func (e *ScoreNotFoundError) Error() string {
	if len(e.Available) == 0 {
		return ErrScoreNotFound.Error() + " (model returned no features)"
	}
	return fmt.Sprintf("%s (available: %s)", ErrScoreNotFound, strings.Join(e.Available, ", "))
}

func (e *ScoreNotFoundError) Is(target error) bool {
	return target == ErrScoreNotFound
}
