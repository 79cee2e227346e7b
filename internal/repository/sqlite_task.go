package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/siterisk/internal/db"
	"github.com/alexanderramin/siterisk/internal/domain"
)

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

const taskColumns = `id, category, subcategory, process, progress_rate, workers,
	start_time, risk_score, needs_rescore, created_at, updated_at`

// orderClauses breaks every tie on start time, then id, so listings are stable.
var orderClauses = map[domain.SortCriterion]string{
	domain.SortByStartTime: `start_time ASC, id ASC`,
	domain.SortByRiskDesc:  `risk_score DESC, start_time ASC, id ASC`,
	domain.SortByRiskAsc:   `risk_score ASC, start_time ASC, id ASC`,
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.ConstructionTask) error {
	query := `INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Category,
		t.Subcategory,
		t.Process,
		t.ProgressRate,
		t.Workers,
		formatTime(t.StartTime),
		t.RiskScore,
		boolToInt(t.NeedsRescore),
		formatTime(t.CreatedAt),
		formatTime(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.ConstructionTask, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	t, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return t, nil
}

func (r *SQLiteTaskRepo) FindByIDPrefix(ctx context.Context, prefix string) ([]*domain.ConstructionTask, error) {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(prefix))
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id LIKE ? ESCAPE '\' ORDER BY id`
	return r.query(ctx, "finding tasks by prefix", query, escaped+"%")
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, id string, p domain.TaskPatch) error {
	sets, args := patchAssignments(p)
	if len(sets) == 0 {
		_, err := r.GetByID(ctx, id)
		return err
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, nowUTC(), id)
	query := `UPDATE tasks SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return requireAffected(res, id)
}

// patchAssignments builds "column = ?" pairs for the fields present in p.
func patchAssignments(p domain.TaskPatch) ([]string, []any) {
	var sets []string
	var args []any
	add := func(column string, v any) {
		sets = append(sets, column+" = ?")
		args = append(args, v)
	}
	if p.Category != nil {
		add("category", *p.Category)
	}
	if p.Subcategory != nil {
		add("subcategory", *p.Subcategory)
	}
	if p.Process != nil {
		add("process", *p.Process)
	}
	if p.ProgressRate != nil {
		add("progress_rate", *p.ProgressRate)
	}
	if p.Workers != nil {
		add("workers", *p.Workers)
	}
	if p.StartTime != nil {
		add("start_time", formatTime(*p.StartTime))
	}
	if p.RiskScore != nil {
		add("risk_score", *p.RiskScore)
	}
	if p.NeedsRescore != nil {
		add("needs_rescore", boolToInt(*p.NeedsRescore))
	}
	return sets, args
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return requireAffected(res, id)
}

func (r *SQLiteTaskRepo) ListSorted(ctx context.Context, by domain.SortCriterion) ([]*domain.ConstructionTask, error) {
	if by == "" {
		by = domain.SortByStartTime
	}
	order, ok := orderClauses[by]
	if !ok {
		return nil, fmt.Errorf("unknown sort criterion %q", by)
	}
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY ` + order
	return r.query(ctx, "listing tasks", query)
}

func (r *SQLiteTaskRepo) DeleteAll(ctx context.Context) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks`)
	if err != nil {
		return 0, fmt.Errorf("deleting all tasks: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted tasks: %w", err)
	}
	return int(n), nil
}

func (r *SQLiteTaskRepo) query(ctx context.Context, op, query string, args ...any) ([]*domain.ConstructionTask, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var tasks []*domain.ConstructionTask
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask reads one row in taskColumns order. sql.ErrNoRows is returned
// unwrapped so callers can map it to ErrNotFound.
func scanTask(row rowScanner) (*domain.ConstructionTask, error) {
	var t domain.ConstructionTask
	var startStr, createdStr, updatedStr string
	var score sql.NullInt64
	var needsRescore int

	err := row.Scan(
		&t.ID, &t.Category, &t.Subcategory, &t.Process,
		&t.ProgressRate, &t.Workers,
		&startStr, &score, &needsRescore,
		&createdStr, &updatedStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	t.RiskScore = nullableIntValue(score)
	t.NeedsRescore = intToBool(needsRescore)

	var parseErr error
	if t.StartTime, parseErr = parseTime(startStr); parseErr != nil {
		return nil, fmt.Errorf("parsing start_time: %w", parseErr)
	}
	if t.CreatedAt, parseErr = parseTime(createdStr); parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	if t.UpdatedAt, parseErr = parseTime(updatedStr); parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &t, nil
}

func requireAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return nil
}
