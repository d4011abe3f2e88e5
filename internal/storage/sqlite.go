package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/giovanaluizapereira/planner-2026/internal"
)

// SQLiteStorage is a single-file embedded backend, handy for local runs
// without a postgres instance.
type SQLiteStorage struct {
	db     *sql.DB
	logger internal.Logger
}

func NewSQLiteStorage(path string, logger internal.Logger) (*SQLiteStorage, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		logger.Errorf("failed to open sqlite: %v", err)
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		logger.Errorf("failed to ping sqlite: %v", err)
		return nil, err
	}
	s := &SQLiteStorage{db: db, logger: logger}
	if err := s.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStorage) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS planner_runs (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		user_data TEXT NOT NULL,
		total_xp INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_planner_runs_user ON planner_runs(user_id, created_at DESC);`)
	if err != nil {
		s.logger.Errorf("failed to migrate sqlite schema: %v", err)
	}
	return err
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// --- RunRepository ---

func (s *SQLiteStorage) SaveRun(ctx context.Context, run *internal.Run) error {
	userData, err := json.Marshal(run.UserData)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO planner_runs (id, user_id, user_data, total_xp, created_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.UserID, string(userData), run.TotalXP, run.CreatedAt)
	if err != nil {
		s.logger.Errorf("failed to insert run: %v", err)
		return err
	}
	return nil
}

func (s *SQLiteStorage) LatestRun(ctx context.Context, userID string) (*internal.Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, user_data, total_xp, created_at FROM planner_runs WHERE user_id = ? ORDER BY created_at DESC LIMIT 1`,
		userID)
	var r internal.Run
	var userData string
	if err := row.Scan(&r.ID, &r.UserID, &userData, &r.TotalXP, &r.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoRun
		}
		s.logger.Errorf("failed to query latest run: %v", err)
		return nil, err
	}
	cats, err := internal.UnmarshalCategories([]byte(userData))
	if err != nil {
		s.logger.Errorf("failed to decode run user_data: %v", err)
		return nil, err
	}
	r.UserData = cats
	return &r, nil
}

func (s *SQLiteStorage) DeleteRuns(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM planner_runs WHERE user_id = ?`, userID)
	if err != nil {
		s.logger.Errorf("failed to delete runs: %v", err)
	}
	return err
}

// --- Compile-time assertion ---
var _ RunRepository = (*SQLiteStorage)(nil)
