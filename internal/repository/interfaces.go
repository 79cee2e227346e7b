package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/siterisk/internal/domain"
)

// ErrNotFound is wrapped by every lookup that matches no row.
var ErrNotFound = errors.New("not found")

type TaskRepo interface {
	Create(ctx context.Context, t *domain.ConstructionTask) error
	GetByID(ctx context.Context, id string) (*domain.ConstructionTask, error)
	// FindByIDPrefix returns every task whose id starts with prefix.
	FindByIDPrefix(ctx context.Context, prefix string) ([]*domain.ConstructionTask, error)
	// Update writes only the columns set in the patch.
	Update(ctx context.Context, id string, p domain.TaskPatch) error
	Delete(ctx context.Context, id string) error
	ListSorted(ctx context.Context, by domain.SortCriterion) ([]*domain.ConstructionTask, error)
	DeleteAll(ctx context.Context) (int, error)
}

// StateRepo stores small pieces of application state by key.
type StateRepo interface {
	GetTime(ctx context.Context, key string) (time.Time, error)
	SetTime(ctx context.Context, key string, t time.Time) error
}

// KeyLastReset records when the task list was last cleared.
const KeyLastReset = "last_reset"
