package testutil

import (
	"time"

	"github.com/alexanderramin/siterisk/internal/domain"
	"github.com/google/uuid"
)

// FixedNow is the reference clock used across package tests.
var FixedNow = time.Date(2025, 7, 15, 9, 0, 0, 0, time.UTC)

// TaskOption customizes a fixture task.
type TaskOption func(*domain.ConstructionTask)

func WithID(id string) TaskOption {
	return func(t *domain.ConstructionTask) {
		t.ID = id
	}
}

func WithClassification(category, subcategory string) TaskOption {
	return func(t *domain.ConstructionTask) {
		t.Category = category
		t.Subcategory = subcategory
	}
}

func WithProcess(p string) TaskOption {
	return func(t *domain.ConstructionTask) {
		t.Process = p
	}
}

func WithWorkers(n int) TaskOption {
	return func(t *domain.ConstructionTask) {
		t.Workers = n
	}
}

func WithProgress(rate int) TaskOption {
	return func(t *domain.ConstructionTask) {
		t.ProgressRate = rate
	}
}

func WithStartTime(at time.Time) TaskOption {
	return func(t *domain.ConstructionTask) {
		t.StartTime = at
	}
}

func WithRiskScore(score int) TaskOption {
	return func(t *domain.ConstructionTask) {
		t.RiskScore = score
	}
}

func WithNeedsRescore() TaskOption {
	return func(t *domain.ConstructionTask) {
		t.NeedsRescore = true
	}
}

// NewTestTask returns a valid welding task on a residential building site.
func NewTestTask(opts ...TaskOption) *domain.ConstructionTask {
	t := &domain.ConstructionTask{
		ID:           uuid.New().String(),
		Category:     "건축물",
		Subcategory:  "공동주택",
		Process:      "welding",
		ProgressRate: 50,
		Workers:      10,
		StartTime:    FixedNow,
		RiskScore:    40,
		CreatedAt:    FixedNow,
		UpdatedAt:    FixedNow,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}
