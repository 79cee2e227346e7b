package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidTask is wrapped by every task invariant violation.
var ErrInvalidTask = errors.New("invalid task")

const (
	MinScore    = 0
	MaxScore    = 100
	MinProgress = 0
	MaxProgress = 100
	MinWorkers  = 1
)

// ConstructionTask is one unit of site work together with its base risk score.
type ConstructionTask struct {
	ID           string
	Category     string // large classification, e.g. 건축물
	Subcategory  string // medium classification, e.g. 공동주택
	Process      string
	ProgressRate int
	Workers      int
	StartTime    time.Time
	RiskScore    int

	// NeedsRescore marks a task whose material fields changed after the last
	// successful prediction.
	NeedsRescore bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ConstructionType returns the "{large}/{medium}" string the predictor expects.
func (t *ConstructionTask) ConstructionType() string {
	return t.Category + "/" + t.Subcategory
}

// WorkProcess classifies the free-form process name.
func (t *ConstructionTask) WorkProcess() WorkProcess {
	return ClassifyProcess(t.Process)
}

// Validate checks the record invariants. The risk score is validated too, so
// callers must attach a score before persisting.
func (t *ConstructionTask) Validate() error {
	if strings.TrimSpace(t.Category) == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidTask)
	}
	if strings.TrimSpace(t.Subcategory) == "" {
		return fmt.Errorf("%w: subcategory is required", ErrInvalidTask)
	}
	if strings.TrimSpace(t.Process) == "" {
		return fmt.Errorf("%w: process is required", ErrInvalidTask)
	}
	if t.ProgressRate < MinProgress || t.ProgressRate > MaxProgress {
		return fmt.Errorf("%w: progress rate %d outside [%d,%d]", ErrInvalidTask, t.ProgressRate, MinProgress, MaxProgress)
	}
	if t.Workers < MinWorkers {
		return fmt.Errorf("%w: workers must be at least %d, got %d", ErrInvalidTask, MinWorkers, t.Workers)
	}
	if t.StartTime.IsZero() {
		return fmt.Errorf("%w: start time is required", ErrInvalidTask)
	}
	if t.RiskScore < MinScore || t.RiskScore > MaxScore {
		return fmt.Errorf("%w: risk score %d outside [%d,%d]", ErrInvalidTask, t.RiskScore, MinScore, MaxScore)
	}
	return nil
}

// ApplyPatch writes every field present in p onto the task and bumps UpdatedAt.
func (t *ConstructionTask) ApplyPatch(p TaskPatch, now time.Time) {
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Subcategory != nil {
		t.Subcategory = *p.Subcategory
	}
	if p.Process != nil {
		t.Process = *p.Process
	}
	if p.ProgressRate != nil {
		t.ProgressRate = *p.ProgressRate
	}
	if p.Workers != nil {
		t.Workers = *p.Workers
	}
	if p.StartTime != nil {
		t.StartTime = *p.StartTime
	}
	if p.RiskScore != nil {
		t.RiskScore = *p.RiskScore
	}
	if p.NeedsRescore != nil {
		t.NeedsRescore = *p.NeedsRescore
	}
	t.UpdatedAt = now
}

// ShortID returns the first 8 characters of the ID for display.
func (t *ConstructionTask) ShortID() string {
	if len(t.ID) >= 8 {
		return t.ID[:8]
	}
	return t.ID
}
