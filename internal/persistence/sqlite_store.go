package persistence

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/squash/subtidy/internal/dedupe"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// SQLiteStore persists run history: which directories were canonicalized
// when, and which files each run removed.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &SQLiteStore{db: db}
	if err := store.init(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "PRAGMA journal_mode = WAL;"); err != nil {
		return fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "PRAGMA busy_timeout = 5000;"); err != nil {
		return fmt.Errorf("set busy timeout: %w", err)
	}
	// Bootstrap schema_migrations table so we can track applied versions.
	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	entries, err := migrationFiles.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		version := migrationVersion(entry.Name())
		if version <= 0 {
			continue
		}
		var exists int
		if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations WHERE version = ?`, version).Scan(&exists); err != nil {
			return fmt.Errorf("check migration %s: %w", entry.Name(), err)
		}
		if exists > 0 {
			continue
		}
		content, err := migrationFiles.ReadFile(filepath.Join("migrations", entry.Name()))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		if _, err := s.db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", entry.Name(), err)
		}
		if _, err := s.db.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (?)`, version); err != nil {
			return fmt.Errorf("record migration %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// migrationVersion extracts the leading integer from a migration filename (e.g. "001_init.sql" → 1).
func migrationVersion(name string) int {
	for i, c := range name {
		if c < '0' || c > '9' {
			if i == 0 {
				return 0
			}
			n, _ := strconv.Atoi(name[:i])
			return n
		}
	}
	n, _ := strconv.Atoi(name)
	return n
}

// RecordRun stores a finished run and its removals in one transaction.
// Returns the generated run ID.
func (s *SQLiteStore) RecordRun(ctx context.Context, run Run, outcome dedupe.Outcome) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO runs (id, directory, started_at, finished_at, forced_removed, exact_removed, near_removed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Directory,
		run.StartedAt,
		run.FinishedAt,
		len(outcome.ForcedRemoved),
		len(outcome.ExactRemoved),
		len(outcome.NearRemoved),
	); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	insert := func(paths []string, reason string) error {
		for _, path := range paths {
			if _, err := tx.ExecContext(
				ctx,
				`INSERT INTO removed_files (run_id, path, reason) VALUES (?, ?, ?)`,
				run.ID, path, reason,
			); err != nil {
				return fmt.Errorf("insert removal: %w", err)
			}
		}
		return nil
	}
	if err := insert(outcome.ForcedRemoved, ReasonForced); err != nil {
		return "", err
	}
	if err := insert(outcome.ExactRemoved, ReasonExact); err != nil {
		return "", err
	}
	if err := insert(outcome.NearRemoved, ReasonNear); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return run.ID, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, directory, started_at, finished_at, forced_removed, exact_removed, near_removed
		 FROM runs
		 ORDER BY started_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ret := make([]Run, 0)
	for rows.Next() {
		var run Run
		if err := rows.Scan(
			&run.ID,
			&run.Directory,
			&run.StartedAt,
			&run.FinishedAt,
			&run.ForcedRemoved,
			&run.ExactRemoved,
			&run.NearRemoved,
		); err != nil {
			return nil, err
		}
		ret = append(ret, run)
	}
	return ret, rows.Err()
}

// RunRemovals returns every file a run removed, in insertion order.
func (s *SQLiteStore) RunRemovals(ctx context.Context, runID string) ([]Removal, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT run_id, path, reason FROM removed_files WHERE run_id = ? ORDER BY rowid ASC`,
		runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ret := make([]Removal, 0)
	for rows.Next() {
		var r Removal
		if err := rows.Scan(&r.RunID, &r.Path, &r.Reason); err != nil {
			return nil, err
		}
		ret = append(ret, r)
	}
	return ret, rows.Err()
}
