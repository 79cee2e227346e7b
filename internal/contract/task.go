package contract

import (
	"time"

	"github.com/alexanderramin/siterisk/internal/app"
)

type TaskDraft = app.TaskDraft

func NewTaskDraft(now time.Time) TaskDraft {
	return app.NewTaskDraft(now)
}

type EditErrorCode = app.EditErrorCode

const (
	EditErrRescoreFailed EditErrorCode = app.EditErrRescoreFailed
	EditErrNoChanges     EditErrorCode = app.EditErrNoChanges
)

type EditResult = app.EditResult
