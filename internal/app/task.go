package app

import (
	"time"

	"github.com/alexanderramin/siterisk/internal/domain"
)

// TaskDraft is the user input for a new task. Score, when set, is a manual
// base risk score and bypasses the predictor.
type TaskDraft struct {
	Category     string
	Subcategory  string
	Process      string
	ProgressRate int
	Workers      int
	StartTime    time.Time
	Score        *int
}

// NewTaskDraft returns a draft starting now with a one-person crew.
func NewTaskDraft(now time.Time) TaskDraft {
	return TaskDraft{
		Workers:   domain.MinWorkers,
		StartTime: now,
	}
}

type EditErrorCode string

const (
	EditErrRescoreFailed EditErrorCode = "RESCORE_FAILED"
	EditErrNoChanges     EditErrorCode = "NO_CHANGES"
)

// EditResult reports what an edit persisted. When re-scoring a material edit
// fails the edit is still saved and RescoreErr carries the cause.
type EditResult struct {
	Task       *domain.ConstructionTask
	Changed    []string
	Rescored   bool
	RescoreErr error
	Code       EditErrorCode
}

// Saved reports whether the edit wrote anything.
func (r *EditResult) Saved() bool {
	return len(r.Changed) > 0
}
