package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func columns(t *testing.T, conn *sql.DB, table string) []string {
	t.Helper()
	rows, err := conn.Query(`PRAGMA table_info(` + table + `)`)
	require.NoError(t, err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var cid, notNull, pk int
		var name, typ string
		var dflt sql.NullString
		require.NoError(t, rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	return names
}

func TestMigrate_Idempotent(t *testing.T) {
	conn := openTestDB(t)
	require.NoError(t, Migrate(conn))
	require.NoError(t, Migrate(conn))
}

func TestMigrate_CreatesTablesAndIndexes(t *testing.T) {
	conn := openTestDB(t)

	for _, table := range []string{"tasks", "app_state"} {
		var name string
		err := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}
	for _, idx := range []string{"idx_tasks_start_time", "idx_tasks_risk_score"} {
		var name string
		err := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}

	assert.Equal(t, []string{
		"id", "category", "subcategory", "process", "progress_rate", "workers",
		"start_time", "risk_score", "created_at", "updated_at", "needs_rescore",
	}, columns(t, conn, "tasks"))
}

func TestMigrate_MemoryJournalMode(t *testing.T) {
	// WAL only applies to file databases; :memory: keeps reporting "memory".
	conn := openTestDB(t)

	var mode string
	require.NoError(t, conn.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "memory", mode)
}

func TestMigrate_TaskCheckConstraints(t *testing.T) {
	conn := openTestDB(t)
	insert := `INSERT INTO tasks (id, category, subcategory, process, progress_rate, workers, start_time, risk_score, created_at, updated_at)
		VALUES (?, '도로', '도로', 'welding', ?, ?, '2025-07-15T08:00:00Z', ?, '2025-07-15T00:00:00Z', '2025-07-15T00:00:00Z')`

	_, err := conn.Exec(insert, "ok", 50, 3, 40)
	require.NoError(t, err)

	_, err = conn.Exec(insert, "bad-progress", 101, 3, 40)
	assert.Error(t, err)
	_, err = conn.Exec(insert, "bad-workers", 50, 0, 40)
	assert.Error(t, err)
	_, err = conn.Exec(insert, "bad-score", 50, 3, 140)
	assert.Error(t, err)
}

func TestMigrate_FileDatabaseUsesWAL(t *testing.T) {
	path := t.TempDir() + "/nested/siterisk.db"
	conn, err := OpenDB(path)
	require.NoError(t, err)
	defer conn.Close()

	var mode string
	require.NoError(t, conn.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
}

// TestMigrate_UpgradeFromUnscoredSchema opens a database written before
// needs_rescore existed and risk_score was always set.
func TestMigrate_UpgradeFromUnscoredSchema(t *testing.T) {
	conn, err := sql.Open("sqlite", MemoryPath)
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	_, err = conn.Exec(`CREATE TABLE tasks (
		id            TEXT PRIMARY KEY,
		category      TEXT NOT NULL,
		subcategory   TEXT NOT NULL,
		process       TEXT NOT NULL,
		progress_rate INTEGER NOT NULL,
		workers       INTEGER NOT NULL,
		start_time    TEXT NOT NULL,
		risk_score    INTEGER,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`)
	require.NoError(t, err)
	_, err = conn.Exec(`INSERT INTO tasks VALUES
		('scored',   '도로', '도로', 'welding', 10, 4, '2025-07-15T08:00:00Z', 55,   '2025-07-15T00:00:00Z', '2025-07-15T00:00:00Z'),
		('unscored', '도로', '도로', 'welding', 10, 4, '2025-07-15T09:00:00Z', NULL, '2025-07-15T00:00:00Z', '2025-07-15T00:00:00Z')`)
	require.NoError(t, err)

	require.NoError(t, Migrate(conn))

	var score, flag int
	require.NoError(t, conn.QueryRow(`SELECT risk_score, needs_rescore FROM tasks WHERE id = 'scored'`).Scan(&score, &flag))
	assert.Equal(t, 55, score)
	assert.Equal(t, 0, flag)

	require.NoError(t, conn.QueryRow(`SELECT risk_score, needs_rescore FROM tasks WHERE id = 'unscored'`).Scan(&score, &flag))
	assert.Equal(t, 0, score)
	assert.Equal(t, 1, flag, "legacy rows without a score are queued for rescoring")
}
