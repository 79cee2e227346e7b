package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/siterisk/internal/db"
)

// SQLiteStateRepo implements StateRepo on the app_state table.
type SQLiteStateRepo struct {
	db db.DBTX
}

// NewSQLiteStateRepo creates a new SQLiteStateRepo.
func NewSQLiteStateRepo(conn db.DBTX) *SQLiteStateRepo {
	return &SQLiteStateRepo{db: conn}
}

func (r *SQLiteStateRepo) GetTime(ctx context.Context, key string) (time.Time, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM app_state WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, fmt.Errorf("state %s: %w", key, ErrNotFound)
		}
		return time.Time{}, fmt.Errorf("reading state %s: %w", key, err)
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing state %s: %w", key, err)
	}
	return t, nil
}

// SetTime stores t with its zone offset so local-day comparisons survive a
// round trip.
func (r *SQLiteStateRepo) SetTime(ctx context.Context, key string, t time.Time) error {
	query := `INSERT INTO app_state (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, key, t.Format(time.RFC3339), nowUTC()); err != nil {
		return fmt.Errorf("writing state %s: %w", key, err)
	}
	return nil
}
