package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/siterisk/internal/db"
	"github.com/alexanderramin/siterisk/internal/repository"
)

type resetService struct {
	uow      db.UnitOfWork
	loc      *time.Location
	observer UseCaseObserver
}

// NewResetService clears the task store at local midnight in loc.
func NewResetService(uow db.UnitOfWork, loc *time.Location, observers ...UseCaseObserver) ResetService {
	if loc == nil {
		loc = time.Local
	}
	return &resetService{uow: uow, loc: loc, observer: useCaseObserverOrNoop(observers)}
}

// startOfDay returns local midnight of the day containing t.
func startOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

func (s *resetService) CheckAndReset(ctx context.Context, now time.Time) (reset bool, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		if reset || err != nil {
			observe(ctx, s.observer, "daily-reset", startedAt, fields, &err)
		}
	}()

	midnight := startOfDay(now, s.loc)
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		state := repository.NewSQLiteStateRepo(tx)
		last, err := state.GetTime(ctx, repository.KeyLastReset)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			// First activation: nothing recorded yet, start the clock.
			return state.SetTime(ctx, repository.KeyLastReset, now.In(s.loc))
		case err != nil:
			return err
		case !last.Before(midnight):
			return nil
		}

		n, err := repository.NewSQLiteTaskRepo(tx).DeleteAll(ctx)
		if err != nil {
			return err
		}
		if err := state.SetTime(ctx, repository.KeyLastReset, now.In(s.loc)); err != nil {
			return err
		}
		reset = true
		fields["deleted"] = n
		fields["last_reset"] = last.Format(time.RFC3339)
		return nil
	})
	if err != nil {
		reset = false
		return false, fmt.Errorf("daily reset: %w", err)
	}
	return reset, nil
}

func (s *resetService) ResetNow(ctx context.Context, now time.Time) (deleted int, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"manual": true}
	defer observe(ctx, s.observer, "reset", startedAt, fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		n, err := repository.NewSQLiteTaskRepo(tx).DeleteAll(ctx)
		if err != nil {
			return err
		}
		deleted = n
		return repository.NewSQLiteStateRepo(tx).SetTime(ctx, repository.KeyLastReset, now.In(s.loc))
	})
	if err != nil {
		return 0, fmt.Errorf("resetting tasks: %w", err)
	}
	fields["deleted"] = deleted
	return deleted, nil
}
