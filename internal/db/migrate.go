package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies the schema. Every statement is safe to re-run.
func Migrate(conn *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := conn.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillUnscored(conn); err != nil {
		return fmt.Errorf("backfilling unscored tasks: %w", err)
	}
	return nil
}

// migrateBackfillUnscored flags rows saved before risk_score was mandatory so
// they are picked up by a rescore instead of showing a zero score as real.
func migrateBackfillUnscored(conn *sql.DB) error {
	_, err := conn.Exec(`UPDATE tasks SET risk_score = 0, needs_rescore = 1 WHERE risk_score IS NULL`)
	return err
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS tasks (
		id            TEXT PRIMARY KEY,
		category      TEXT NOT NULL,
		subcategory   TEXT NOT NULL,
		process       TEXT NOT NULL,
		progress_rate INTEGER NOT NULL CHECK(progress_rate BETWEEN 0 AND 100),
		workers       INTEGER NOT NULL CHECK(workers >= 1),
		start_time    TEXT NOT NULL,
		risk_score    INTEGER CHECK(risk_score IS NULL OR risk_score BETWEEN 0 AND 100),
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,
	`ALTER TABLE tasks ADD COLUMN needs_rescore INTEGER NOT NULL DEFAULT 0`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_start_time ON tasks(start_time)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_risk_score ON tasks(risk_score)`,
	`CREATE TABLE IF NOT EXISTS app_state (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
}
