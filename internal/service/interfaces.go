package service

import (
	"context"
	"time"

	"github.com/alexanderramin/siterisk/internal/contract"
	"github.com/alexanderramin/siterisk/internal/domain"
)

type TaskService interface {
	Create(ctx context.Context, draft contract.TaskDraft) (*domain.ConstructionTask, error)
	Get(ctx context.Context, id string) (*domain.ConstructionTask, error)
	// Resolve accepts a full id or a unique prefix of one.
	Resolve(ctx context.Context, idOrPrefix string) (*domain.ConstructionTask, error)
	List(ctx context.Context, by domain.SortCriterion) ([]*domain.ConstructionTask, error)
	Edit(ctx context.Context, id string, edit domain.TaskEdit) (*contract.EditResult, error)
	Rescore(ctx context.Context, id string) (*domain.ConstructionTask, error)
	Delete(ctx context.Context, id string) error
}

type RiskService interface {
	Assess(ctx context.Context, req contract.AssessRequest) (*contract.TaskRiskView, error)
	Today(ctx context.Context, now time.Time) (*contract.TodaySummary, error)
}

type ResetService interface {
	// CheckAndReset clears every task once per local calendar day and
	// reports whether it did.
	CheckAndReset(ctx context.Context, now time.Time) (bool, error)
	// ResetNow clears every task unconditionally and returns how many
	// were removed.
	ResetNow(ctx context.Context, now time.Time) (int, error)
}

// Scorer produces a base risk score for a task. *predictor.Predictor
// satisfies it.
type Scorer interface {
	Score(ctx context.Context, task domain.ConstructionTask, env domain.Environment) (int, error)
}

// EnvironmentSource reports site conditions at a point in time.
// *weather.Client satisfies it.
type EnvironmentSource interface {
	Current(ctx context.Context, at time.Time) (domain.Environment, error)
}
