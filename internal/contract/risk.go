package contract

import "github.com/alexanderramin/siterisk/internal/app"

type AssessRequest = app.AssessRequest

func NewAssessRequest(taskID string) AssessRequest {
	return app.NewAssessRequest(taskID)
}

type TaskRiskView = app.TaskRiskView

const TodayTopN = app.TodayTopN

type TodaySummary = app.TodaySummary
