package app

import (
	"time"

	"github.com/alexanderramin/siterisk/internal/domain"
	"github.com/alexanderramin/siterisk/internal/risk"
)

type AssessRequest struct {
	TaskID string
	Now    *time.Time
	// Month overrides the month derived from Now.
	Month time.Month
}

func NewAssessRequest(taskID string) AssessRequest {
	return AssessRequest{TaskID: taskID}
}

// TaskRiskView is the full risk picture for one task.
type TaskRiskView struct {
	Task      *domain.ConstructionTask
	Month     time.Month
	Curve     []domain.HourlyRiskPoint
	Window    risk.Window
	Peak      domain.HourlyRiskPoint
	Trough    domain.HourlyRiskPoint
	Process   domain.WorkProcess
	Checklist []domain.ChecklistItem
	CacheHit  bool
}

// TodayTopN is how many tasks the daily summary highlights.
const TodayTopN = 3

// TodaySummary aggregates all tasks recorded since the last reset.
type TodaySummary struct {
	GeneratedAt  time.Time
	Total        int
	AverageScore float64
	CountLow     int
	CountMedium  int
	CountHigh    int
	NeedsRescore int
	Top          []*domain.ConstructionTask
}
