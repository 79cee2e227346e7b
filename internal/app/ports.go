package app

import (
	"context"
	"time"

	"github.com/alexanderramin/siterisk/internal/domain"
)

type CreateTaskUseCase interface {
	Create(ctx context.Context, draft TaskDraft) (*domain.ConstructionTask, error)
}

type EditTaskUseCase interface {
	Edit(ctx context.Context, id string, edit domain.TaskEdit) (*EditResult, error)
}

type AssessUseCase interface {
	Assess(ctx context.Context, req AssessRequest) (*TaskRiskView, error)
}

type TodayUseCase interface {
	Today(ctx context.Context, now time.Time) (*TodaySummary, error)
}

type DailyResetUseCase interface {
	CheckAndReset(ctx context.Context, now time.Time) (bool, error)
}
