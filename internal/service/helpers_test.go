package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/siterisk/internal/contract"
	"github.com/alexanderramin/siterisk/internal/domain"
	"github.com/alexanderramin/siterisk/internal/repository"
	"github.com/alexanderramin/siterisk/internal/testutil"
)

type stubScorer struct {
	score   int
	err     error
	calls   int
	lastEnv domain.Environment
	seen    []domain.ConstructionTask
}

func (s *stubScorer) Score(_ context.Context, task domain.ConstructionTask, env domain.Environment) (int, error) {
	s.calls++
	s.lastEnv = env
	s.seen = append(s.seen, task)
	if s.err != nil {
		return 0, s.err
	}
	return s.score, nil
}

type stubEnvironment struct {
	env domain.Environment
	err error
}

func (s stubEnvironment) Current(context.Context, time.Time) (domain.Environment, error) {
	return s.env, s.err
}

// recordingEnvironment remembers every time it was asked about.
type recordingEnvironment struct {
	asked []time.Time
}

func (r *recordingEnvironment) Current(_ context.Context, at time.Time) (domain.Environment, error) {
	r.asked = append(r.asked, at)
	return domain.DefaultEnvironment(), nil
}

type recordingUseCaseObserver struct {
	events []UseCaseEvent
}

func (r *recordingUseCaseObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.events = append(r.events, e)
}

func newTaskSvc(t *testing.T, scorer Scorer, opts ...TaskServiceOption) (TaskService, *repository.SQLiteTaskRepo) {
	t.Helper()
	repo := repository.NewSQLiteTaskRepo(testutil.NewTestDB(t))
	opts = append([]TaskServiceOption{
		WithClock(func() time.Time { return testutil.FixedNow }),
		WithLocation(time.UTC),
	}, opts...)
	return NewTaskService(repo, scorer, nil, opts...), repo
}

func weldingDraft() contract.TaskDraft {
	d := contract.NewTaskDraft(time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC))
	d.Category = "건축물"
	d.Subcategory = "공동주택"
	d.Process = "welding"
	d.ProgressRate = 50
	d.Workers = 10
	return d
}

var errBoom = errors.New("boom")
