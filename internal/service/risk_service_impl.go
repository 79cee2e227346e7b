package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/siterisk/internal/cache"
	"github.com/alexanderramin/siterisk/internal/contract"
	"github.com/alexanderramin/siterisk/internal/domain"
	"github.com/alexanderramin/siterisk/internal/repository"
	"github.com/alexanderramin/siterisk/internal/risk"
)

type riskService struct {
	tasks    repository.TaskRepo
	curves   cache.CurveCache
	loc      *time.Location
	logger   *slog.Logger
	observer UseCaseObserver
}

// NewRiskService builds curves through curves (an in-memory cache when nil).
// loc decides which calendar month a request falls in.
func NewRiskService(
	tasks repository.TaskRepo,
	curves cache.CurveCache,
	loc *time.Location,
	logger *slog.Logger,
	observers ...UseCaseObserver,
) RiskService {
	if curves == nil {
		curves = cache.NewMemoryCache(cache.DefaultTTL)
	}
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &riskService{
		tasks:    tasks,
		curves:   curves,
		loc:      loc,
		logger:   logger,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *riskService) Assess(ctx context.Context, req contract.AssessRequest) (view *contract.TaskRiskView, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"task_id": req.TaskID}
	defer observe(ctx, s.observer, "assess-risk", startedAt, fields, &err)

	task, err := s.tasks.GetByID(ctx, req.TaskID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if req.Now != nil {
		now = *req.Now
	}
	month := req.Month
	if month < time.January || month > time.December {
		month = risk.MonthOf(now.In(s.loc))
	}

	curve, hit := s.curve(ctx, risk.InputFor(*task, task.RiskScore, month))
	fields["cache_hit"] = hit

	peak, _ := risk.Peak(curve)
	trough, _ := risk.Trough(curve)
	process := task.WorkProcess()

	return &contract.TaskRiskView{
		Task:      task,
		Month:     month,
		Curve:     curve,
		Window:    risk.RecommendWindow(*task, curve),
		Peak:      peak,
		Trough:    trough,
		Process:   process,
		Checklist: process.Checklist(),
		CacheHit:  hit,
	}, nil
}

// curve serves from the cache when it can. Cache failures fall through to a
// fresh computation.
func (s *riskService) curve(ctx context.Context, in risk.CurveInput) ([]domain.HourlyRiskPoint, bool) {
	key := cache.Key(in)
	cached, ok, err := s.curves.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "curve cache read failed", "key", key, "error", err)
	}
	if ok && len(cached) == risk.HoursPerDay {
		return cached, true
	}

	curve := risk.Curve(in)
	if err := s.curves.Set(ctx, key, curve); err != nil {
		s.logger.WarnContext(ctx, "curve cache write failed", "key", key, "error", err)
	}
	return curve, false
}

func (s *riskService) Today(ctx context.Context, now time.Time) (*contract.TodaySummary, error) {
	tasks, err := s.tasks.ListSorted(ctx, domain.SortByRiskDesc)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}

	summary := &contract.TodaySummary{GeneratedAt: now, Total: len(tasks)}
	total := 0
	for _, t := range tasks {
		total += t.RiskScore
		switch domain.RiskLevelFromScore(t.RiskScore) {
		case domain.RiskLow:
			summary.CountLow++
		case domain.RiskMedium:
			summary.CountMedium++
		default:
			summary.CountHigh++
		}
		if t.NeedsRescore {
			summary.NeedsRescore++
		}
	}
	if len(tasks) > 0 {
		summary.AverageScore = float64(total) / float64(len(tasks))
	}
	summary.Top = tasks[:min(contract.TodayTopN, len(tasks))]
	return summary, nil
}
