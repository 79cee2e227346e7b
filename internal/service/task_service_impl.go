package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alexanderramin/siterisk/internal/contract"
	"github.com/alexanderramin/siterisk/internal/domain"
	"github.com/alexanderramin/siterisk/internal/repository"
	"github.com/alexanderramin/siterisk/internal/weather"
	"github.com/google/uuid"
)

var (
	ErrAmbiguousID = errors.New("ambiguous task id")
	ErrEmptyID     = errors.New("task id is required")
)

type taskService struct {
	tasks         repository.TaskRepo
	scorer        Scorer
	env           EnvironmentSource
	logger        *slog.Logger
	observer      UseCaseObserver
	rescoreOnEdit bool
	loc           *time.Location
	now           func() time.Time
}

// TaskServiceOption customizes a task service.
type TaskServiceOption func(*taskService)

// WithRescoreOnEdit controls whether material edits re-run the predictor.
// It is on by default.
func WithRescoreOnEdit(enabled bool) TaskServiceOption {
	return func(s *taskService) { s.rescoreOnEdit = enabled }
}

// WithEnvironment sets the site-conditions source. Without one every
// prediction uses domain.DefaultEnvironment.
func WithEnvironment(env EnvironmentSource) TaskServiceOption {
	return func(s *taskService) { s.env = env }
}

// WithObserver reports each use case to obs.
func WithObserver(obs UseCaseObserver) TaskServiceOption {
	return func(s *taskService) { s.observer = useCaseObserverOrNoop([]UseCaseObserver{obs}) }
}

// WithLocation sets the site time zone. Start times are read back from the
// store in UTC, and the model and weather source both expect site-local
// clock times. Defaults to time.Local.
func WithLocation(loc *time.Location) TaskServiceOption {
	return func(s *taskService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) TaskServiceOption {
	return func(s *taskService) { s.now = now }
}

func NewTaskService(tasks repository.TaskRepo, scorer Scorer, logger *slog.Logger, opts ...TaskServiceOption) TaskService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &taskService{
		tasks:         tasks,
		scorer:        scorer,
		logger:        logger,
		observer:      NoopUseCaseObserver{},
		rescoreOnEdit: true,
		loc:           time.Local,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *taskService) Create(ctx context.Context, draft contract.TaskDraft) (task *domain.ConstructionTask, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"process": draft.Process, "manual_score": draft.Score != nil}
	defer observe(ctx, s.observer, "create-task", startedAt, fields, &err)

	large, err := domain.ValidateClassification(draft.Category, draft.Subcategory)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	task = &domain.ConstructionTask{
		ID:           uuid.New().String(),
		Category:     large,
		Subcategory:  draft.Subcategory,
		Process:      strings.TrimSpace(draft.Process),
		ProgressRate: draft.ProgressRate,
		Workers:      draft.Workers,
		StartTime:    draft.StartTime,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err = task.Validate(); err != nil {
		return nil, err
	}

	if draft.Score != nil {
		task.RiskScore = *draft.Score
		if err = task.Validate(); err != nil {
			return nil, err
		}
	} else {
		var score int
		score, err = s.score(ctx, *task)
		if err != nil {
			return nil, fmt.Errorf("scoring task: %w", err)
		}
		task.RiskScore = score
	}
	fields["risk_score"] = task.RiskScore

	if err = s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) Get(ctx context.Context, id string) (*domain.ConstructionTask, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) Resolve(ctx context.Context, idOrPrefix string) (*domain.ConstructionTask, error) {
	prefix := strings.TrimSpace(idOrPrefix)
	if prefix == "" {
		return nil, ErrEmptyID
	}
	if t, err := s.tasks.GetByID(ctx, prefix); err == nil {
		return t, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	matches, err := s.tasks.FindByIDPrefix(ctx, prefix)
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("task %s: %w", prefix, repository.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i, m := range matches {
			ids[i] = m.ShortID()
		}
		return nil, fmt.Errorf("%w: %q matches %s", ErrAmbiguousID, prefix, strings.Join(ids, ", "))
	}
}

func (s *taskService) List(ctx context.Context, by domain.SortCriterion) ([]*domain.ConstructionTask, error) {
	return s.tasks.ListSorted(ctx, by)
}

func (s *taskService) Edit(ctx context.Context, id string, edit domain.TaskEdit) (result *contract.EditResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"task_id": id}
	defer observe(ctx, s.observer, "edit-task", startedAt, fields, &err)

	current, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if edit.Category != nil || edit.Subcategory != nil {
		category := valueOr(edit.Category, current.Category)
		subcategory := valueOr(edit.Subcategory, current.Subcategory)
		var large string
		large, err = domain.ValidateClassification(category, subcategory)
		if err != nil {
			return nil, err
		}
		if edit.Category != nil {
			edit.Category = &large
		}
	}
	if edit.Process != nil {
		trimmed := strings.TrimSpace(*edit.Process)
		edit.Process = &trimmed
	}

	patch := domain.Diff(*current, edit)
	if patch.IsEmpty() {
		return &contract.EditResult{Task: current, Code: contract.EditErrNoChanges}, nil
	}

	now := s.now().UTC()
	updated := *current
	updated.ApplyPatch(patch, now)
	if err = updated.Validate(); err != nil {
		return nil, err
	}

	result = &contract.EditResult{Changed: patch.Fields()}
	fields["changed"] = strings.Join(result.Changed, ",")

	if patch.IsMaterial() && s.rescoreOnEdit {
		score, scoreErr := s.score(ctx, updated)
		if scoreErr != nil {
			s.logger.WarnContext(ctx, "rescore failed, flagging task", "task_id", id, "error", scoreErr)
			patch = patch.WithNeedsRescore()
			result.RescoreErr = scoreErr
			result.Code = contract.EditErrRescoreFailed
		} else {
			patch = patch.WithScore(score)
			result.Rescored = true
		}
		updated.ApplyPatch(patch, now)
	} else if patch.IsMaterial() {
		patch = patch.WithNeedsRescore()
		updated.ApplyPatch(patch, now)
	}

	if err = s.tasks.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	result.Task = &updated
	return result, nil
}

func (s *taskService) Rescore(ctx context.Context, id string) (task *domain.ConstructionTask, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"task_id": id}
	defer observe(ctx, s.observer, "rescore-task", startedAt, fields, &err)

	task, err = s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	score, err := s.score(ctx, *task)
	if err != nil {
		return nil, fmt.Errorf("scoring task: %w", err)
	}

	patch := domain.TaskPatch{}.WithScore(score)
	if err = s.tasks.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	task.ApplyPatch(patch, s.now().UTC())
	fields["risk_score"] = score
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}

// score runs the predictor with the start time on the site clock, so a task
// gets the same input whether it was just drafted or re-read from the store.
func (s *taskService) score(ctx context.Context, task domain.ConstructionTask) (int, error) {
	task.StartTime = task.StartTime.In(s.loc)
	return s.scorer.Score(ctx, task, s.environment(ctx, task.StartTime))
}

// environment falls back to the default conditions whenever the weather
// source is missing or fails.
func (s *taskService) environment(ctx context.Context, at time.Time) domain.Environment {
	if s.env == nil {
		return domain.DefaultEnvironment()
	}
	env, err := s.env.Current(ctx, at)
	if err != nil {
		if !errors.Is(err, weather.ErrNotConfigured) {
			s.logger.WarnContext(ctx, "weather lookup failed, using defaults", "error", err)
		}
		return domain.DefaultEnvironment()
	}
	return env
}

func valueOr[T any](p *T, fallback T) T {
	if p != nil {
		return *p
	}
	return fallback
}
